package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshdayorg/vibe-check/internal/config"
)

const initConfigFile = "vibecheck.config.json"

var initType string

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a vibecheck.config.json in the project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		profile := initType
		if profile == "basic" {
			profile = "recommended"
		}
		if config.Profile(profile) == nil {
			return fmt.Errorf("unknown config type %q (available: basic, %s)", initType, strings.Join(config.ProfileNames(), ", "))
		}

		path := filepath.Join(dir, initConfigFile)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}

		cfg := config.Config{Extends: config.ProfilePrefix + profile}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s (extends %s%s)\n", colorSuccess("✓"), path, config.ProfilePrefix, profile)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initType, "type", "t", "basic", "config profile: basic, strict, next, supabase")
}
