// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli implements the mpfdemo command.
package cli

import (
	"fmt"
	"strings"

	"github.com/db47h/bigfloat/internal/demo"
	"github.com/db47h/bigfloat/internal/log"
	"github.com/db47h/bigfloat/mpf"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding flags.
const EnvPrefix = "MPFDEMO"

// New returns the mpfdemo root command. Every flag can also be set with an
// environment variable named after the flag, like MPFDEMO_PREC, or in the
// configuration file given by --config.
func New() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "mpfdemo",
		Short: "mpfdemo prints a report of multiple precision computations.",
		Example: `mpfdemo --prec 1000 --digits 100
MPFDEMO_TERMS=100000 mpfdemo --notation sci`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}
	registerFlags(cmd.Flags())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// cannot fail: the flag set is not nil
	_ = v.BindPFlags(cmd.Flags())
	return cmd
}

func registerFlags(fs *pflag.FlagSet) {
	fs.Uint("prec", 500, "default precision in bits")
	fs.Int("terms", 1000000, "number of terms of the Leibniz series")
	fs.Int("digits", 50, "number of digits after the decimal point")
	fs.String("notation", "fixed", "output notation: fixed or sci")
	fs.String("log-level", "info", "log level: debug, info, warn, or error")
	fs.String("log-fmt", "tint", "log format: "+strings.Join(log.Formats, ", "))
	fs.String("config", "", "configuration file")
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	if cf := v.GetString("config"); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	l, err := log.Init(cmd.ErrOrStderr(), v.GetString("log-level"), v.GetString("log-fmt"))
	if err != nil {
		return err
	}
	cfg, err := config(v)
	if err != nil {
		return err
	}
	l.Debug("configuration", "prec", cfg.Prec, "terms", cfg.Terms, "digits", cfg.Digits)

	sections, err := demo.Run(cmd.Context(), l, cfg)
	if err != nil {
		return err
	}
	return demo.Write(cmd.OutOrStdout(), sections)
}

func config(v *viper.Viper) (demo.Config, error) {
	n, err := notation(v.GetString("notation"))
	if err != nil {
		return demo.Config{}, err
	}
	return demo.Config{
		Prec:     v.GetUint("prec"),
		Terms:    v.GetInt("terms"),
		Digits:   v.GetInt("digits"),
		Notation: n,
	}, nil
}

func notation(s string) (mpf.Notation, error) {
	switch strings.ToLower(s) {
	case "fixed", "f":
		return mpf.Fixed, nil
	case "sci", "scientific", "e":
		return mpf.Scientific, nil
	}
	return 0, fmt.Errorf("invalid notation %q: expected fixed or sci", s)
}
