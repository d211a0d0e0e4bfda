package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	ConfigPath string `help:"Path to the config file"`
	LogLevel   string `default:"warn" help:"Log level"`

	Chat     ChatCmd     `cmd:"" help:"Talk to the assistant"`
	Sessions SessionsCmd `cmd:"" help:"Manage saved chat sessions"`
	Tasks    TasksCmd    `cmd:"" help:"Manage To-Do tasks directly"`
	Mail     MailCmd     `cmd:"" help:"Read and send mail directly"`
	Config   ConfigCmd   `cmd:"" help:"Inspect configuration"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("graphpilot"),
		kong.Description("Conversational assistant for Microsoft 365 tasks and mail"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
