// Package cmd contains all CLI commands for kyara.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/kyara/internal/config"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kyara",
	Short: "Browse anime characters from MyAnimeList",
	Long: `kyara is a terminal catalog of anime characters backed by the Jikan API
(an unofficial MyAnimeList API).

  - Page through the most popular characters or search them by name
  - Keep a list of favorite characters that survives restarts
  - Get anime recommendations built from your favorites

Running 'kyara' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/kyara)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "keep favorites in memory only")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("storage.ephemeral", rootCmd.PersistentFlags().Lookup("ephemeral"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	dataDir, err := config.GetDataDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding data directory:", err)
		os.Exit(1)
	}
	viper.Set("data_dir", dataDir)

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func getDataDir() string {
	return viper.GetString("data_dir")
}

// loadConfig reads config.yaml from the config directory, applying
// defaults and KYARA_* overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper(), getConfigDir(), getDataDir())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
