package main

import (
	"fmt"
	"os"

	"github.com/lox/entrybarrier/internal/config"
	"github.com/lox/entrybarrier/internal/fileutil"
)

// ConfigCmd groups configuration file helpers.
type ConfigCmd struct {
	Init  ConfigInitCmd  `cmd:"" help:"Write the default configuration"`
	Check ConfigCheckCmd `cmd:"" help:"Validate a configuration and print the resolved values"`
}

type ConfigInitCmd struct {
	Path  string `arg:"" optional:"" default:"entrybarrier.hcl" help:"Destination file"`
	Force bool   `help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run() error {
	exists, err := fileutil.Exists(c.Path)
	if err != nil {
		return err
	}
	if exists && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", c.Path)
	}
	if err := config.Write(c.Path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", c.Path)
	return nil
}

type ConfigCheckCmd struct {
	Path string `arg:"" optional:"" default:"entrybarrier.hcl" help:"Configuration file"`
}

func (c *ConfigCheckCmd) Run() error {
	cfg, err := config.Load(c.Path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}
	_, err = os.Stdout.Write(config.Encode(cfg))
	return err
}
