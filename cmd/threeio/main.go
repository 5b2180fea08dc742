// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command threeio exports 3D scene files as three.js JSON documents.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"cogentcore.org/threeio/config"
	"cogentcore.org/threeio/logx"
	"cogentcore.org/threeio/scene"
	_ "cogentcore.org/threeio/scene/obj"
	"cogentcore.org/threeio/threejs"
	"github.com/spf13/cobra"
)

// Version is the version of the tool, set at build time with
// -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags are the command line options. The config options bound to
// flags override those of the config file only when set.
type flags struct {
	configFile  string
	output      string
	precision   int
	verbose     bool
	veryVerbose bool
	quiet       bool
	cfg         config.Config
}

// NewRootCmd returns the threeio command tree.
func NewRootCmd() *cobra.Command {
	fl := &flags{}
	fl.cfg.Defaults()
	root := &cobra.Command{
		Use:           "threeio",
		Short:         "Export 3D scenes as three.js JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(fl.veryVerbose, fl.verbose, fl.quiet)
			logx.SetDefaultLogger()
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&fl.verbose, "verbose", "v", false, "show info messages")
	pf.BoolVar(&fl.veryVerbose, "vv", false, "show debug messages")
	pf.BoolVarP(&fl.quiet, "quiet", "q", false, "only show errors")
	pf.StringVar(&fl.configFile, "config", "", "the TOML config file (default "+config.DefaultFile+")")

	exportCmd := &cobra.Command{
		Use:   "export <input>",
		Short: "Export a scene file (" + strings.Join(scene.Extensions(), ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := fl.config(cmd)
			if err != nil {
				return reportErr(cmd, err)
			}
			return reportErr(cmd, Export(c, args[0], fl.output))
		},
	}
	watchCmd := &cobra.Command{
		Use:   "watch <input>",
		Short: "Export a scene file whenever it changes, until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := fl.config(cmd)
			if err != nil {
				return reportErr(cmd, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return reportErr(cmd, Watch(ctx, c, args[0], fl.output))
		},
	}
	for _, cmd := range []*cobra.Command{exportCmd, watchCmd} {
		fl.addExportFlags(cmd)
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := fl.config(cmd)
			if err != nil {
				return reportErr(cmd, err)
			}
			return reportErr(cmd, c.Write(cmd.OutOrStdout()))
		},
	}
	fl.addExportFlags(configCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (format %s)\n", threejs.DefaultGenerator, Version, threejs.FormatVersion)
		},
	}

	root.AddCommand(exportCmd, watchCmd, configCmd, versionCmd)
	return root
}

func (fl *flags) addExportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	c := &fl.cfg
	f.StringVarP(&fl.output, "output", "o", "", "the output file (default: the input with a .json extension)")
	f.Var(&c.Geometry, "geometry", config.Desc("Geometry"))
	f.IntVar(&fl.precision, "precision", c.Precision, "limit numbers to this many fractional digits")
	f.BoolVar(&c.Pretty, "pretty", c.Pretty, config.Desc("Pretty"))
	f.BoolVar(&c.SaveNormals, "normals", c.SaveNormals, config.Desc("SaveNormals"))
	f.BoolVar(&c.SaveUVs, "uvs", c.SaveUVs, config.Desc("SaveUVs"))
	f.BoolVar(&c.SaveHidden, "hidden", c.SaveHidden, config.Desc("SaveHidden"))
	f.BoolVar(&c.EmbedImages, "embed", c.EmbedImages, config.Desc("EmbedImages"))
	f.BoolVar(&c.Gzip, "gzip", c.Gzip, config.Desc("Gzip"))
}

// config returns the config file values, overridden by
// the flags set on the given command.
func (fl *flags) config(cmd *cobra.Command) (*config.Config, error) {
	var c *config.Config
	var err error
	if fl.configFile != "" {
		c, err = config.Open(fl.configFile)
	} else {
		c, err = config.Default()
	}
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("geometry", func() { c.Geometry = fl.cfg.Geometry })
	set("precision", func() { c.UsePrecision, c.Precision = true, fl.precision })
	set("pretty", func() { c.Pretty = fl.cfg.Pretty })
	set("normals", func() { c.SaveNormals = fl.cfg.SaveNormals })
	set("uvs", func() { c.SaveUVs = fl.cfg.SaveUVs })
	set("hidden", func() { c.SaveHidden = fl.cfg.SaveHidden })
	set("embed", func() { c.EmbedImages = fl.cfg.EmbedImages })
	set("gzip", func() { c.Gzip = fl.cfg.Gzip })
	return c, c.Validate()
}

// reportErr prints a non-nil error to the error output of the command.
func reportErr(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "threeio:", err)
	}
	return err
}
