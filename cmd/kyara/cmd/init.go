package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kyara/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize kyara configuration",
	Long: `Write a config.yaml with every setting at its default value into your
config directory. Edit it to point at another Jikan mirror, change the
page size, the explorer limits or the initial sort and filter.

Every setting can also be overridden with a KYARA_* environment variable,
e.g. KYARA_API_PER_PAGE=10.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	configDir, err := ensureConfigDir()
	if err != nil {
		return err
	}

	path := filepath.Join(configDir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	cfg := config.Default(configDir, getDataDir())
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized kyara configuration in %s\n\n", configDir)
	fmt.Fprintf(out, "  Created %s\n", config.FileName)
	fmt.Fprintf(out, "  Favorites database: %s\n", cfg.Storage.Path)
	fmt.Fprintf(out, "  Log file:           %s\n", cfg.Log.File)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'kyara' to open the interactive catalog")
	fmt.Fprintln(out, "  2. Run 'kyara search <name>' to find a character from the shell")

	return nil
}

func ensureConfigDir() (string, error) {
	dir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}
