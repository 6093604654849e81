package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

const usageText = `ScribeFlow - document to visualization pipeline

Usage:
  scribeflow <command> [flags]

Commands:
  broker    Compile manifest/style into payloads, deliver sequentially, write review.html
  analyze   Extract a document to markdown and produce manifest/style artifacts
  draft     Expand markdown into a placeholder-annotated draft (optional PDF)

Global:
  -version  Print version information

Run "scribeflow <command> -h" for command flags.
`

func main() {
	// .env values never override explicit environment
	_ = godotenv.Load()

	common.LoadVersionFromFile()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "-version", "--version", "version":
		fmt.Printf("ScribeFlow version %s\n", common.GetVersion())
	case "broker":
		runBrokerCommand(os.Args[2:])
	case "analyze":
		runAnalyzeCommand(os.Args[2:])
	case "draft":
		runDraftCommand(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(1)
	}
}

// loadConfig resolves configuration in priority order: defaults, config
// files, environment. Fails hard on unreadable config.
func loadConfig(files configPaths) (*common.Config, arbor.ILogger) {
	// Auto-discover config file if not specified
	if len(files) == 0 {
		if _, err := os.Stat("scribeflow.toml"); err == nil {
			files = append(files, "scribeflow.toml")
		} else if _, err := os.Stat("deployments/local/scribeflow.toml"); err == nil {
			files = append(files, "deployments/local/scribeflow.toml")
		}
	}

	config, err := common.LoadFromFiles(files...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", files).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	return config, logger
}
