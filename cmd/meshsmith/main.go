// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

// Command meshsmith runs the asset generation pipeline. The external
// scheduler (cron or a watcher) invokes "meshsmith run" once per cycle;
// each invocation processes at most one pending asset.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/meshsmith/pkg/pipeline"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "meshsmith",
		Short:         "manifest-driven procedural 3D asset generation pipeline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c",
		pipeline.DefaultConfigFile, "configuration file")
	root.AddCommand(runCmd(), statusCmd(), reclaimCmd(), initConfigCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCmd processes the next pending asset against the configured MCP server
// and prints the structured run result as JSON.
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "select the next pending asset and run one authoring session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.LoadConfig(configPath)
			if err != nil {
				return err
			}

			bridge, err := pipeline.NewMCPBridge(cmd.Context(), cfg.Blender)
			if err != nil {
				return err
			}
			defer bridge.Close()

			p := pipeline.New(cfg, bridge)
			res, err := p.SelectAndRun(cmd.Context())
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

// statusCmd prints the aggregate progress and the next eligible asset.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "show queue progress and the next eligible asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.LoadConfig(configPath)
			if err != nil {
				return err
			}
			p := pipeline.New(cfg, nil)
			report, err := p.StatusReport()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

// reclaimCmd resets stale in_progress assets back to pending. This is the
// explicit operator recovery path for runs interrupted between the
// in_progress write and the final transition; nothing reclaims
// automatically.
func reclaimCmd() *cobra.Command {
	var olderThanMin int
	cmd := &cobra.Command{
		Use:   "reclaim",
		Short: "reset stale in_progress assets back to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.LoadConfig(configPath)
			if err != nil {
				return err
			}
			p := pipeline.New(cfg, nil)

			age := cfg.StaleAge()
			if olderThanMin > 0 {
				age = time.Duration(olderThanMin) * time.Minute
			}
			count, err := p.ReclaimStale(age)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reclaimed %d asset(s)\n", count)
			return nil
		},
	}
	cmd.Flags().IntVar(&olderThanMin, "older-than", 0,
		"age in minutes before an in_progress asset counts as stale (default from config)")
	return cmd
}

// initConfigCmd writes a default configuration.yaml.
func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.WriteDefaultConfig(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return nil
		},
	}
}
