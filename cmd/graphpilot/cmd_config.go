package main

import (
	"fmt"

	"github.com/vpittamp/graphpilot/src/config"
)

// ConfigCmd inspects the effective configuration.
type ConfigCmd struct {
	Check ConfigCheckCmd `cmd:"" default:"1" help:"Report missing or invalid configuration"`
}

// ConfigCheckCmd reports missing credentials before any chat turn is
// attempted, so a missing key is a persistent condition rather than a
// mid-turn failure.
type ConfigCheckCmd struct{}

func (c *ConfigCheckCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	missing := config.MissingKeys(cfg)
	for _, key := range missing {
		fmt.Printf("missing: %s\n", key)
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		fmt.Printf("invalid: %v\n", err)
		return nil
	}
	if len(missing) == 0 {
		fmt.Println("Configuration OK.")
	}
	return nil
}
