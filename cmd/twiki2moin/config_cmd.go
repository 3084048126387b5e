package main

import (
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/yamlutil"
)

// runConfig prints the configuration a convert run with the same
// arguments would use. The output is a valid config file.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags("config", args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags, positional, env)
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
