package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f3rmion/kyara/internal/clipboard"
	"github.com/f3rmion/kyara/internal/logging"
	"github.com/f3rmion/kyara/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive terminal UI.

Sections:
  1  Home        top characters, search with /
  2  Favoritos   your saved characters
  3  Explorar    anime recommended from your favorites
  4  Ajustes     effective configuration

Press ? inside the TUI for every key binding.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if _, err := ensureConfigDir(); err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewApp(cmd.Context(), a.ctrl, tui.Options{
		Config:    a.cfg,
		ConfigDir: getConfigDir(),
		Images:    a.client,
		Copy:      clipboard.Write,
		Locale:    a.locale,
		Logger:    logging.WithComponent("tui"),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
