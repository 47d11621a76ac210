// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"testpilot-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage testpilot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration as TOML, after merging defaults,
the config file, and TESTPILOT_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault()
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("Config file already exists: ")+path)
				return nil
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ Created ")+path)
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Edit it, then verify with ")+CmdStyle.Render("testpilot config show"))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
