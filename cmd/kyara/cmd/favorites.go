package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kyara/internal/jikan"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite characters",
	Long: `List, add or remove favorite characters. Favorites are stored in a
SQLite database under your data directory and shared with the TUI.`,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites in the order they were added",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a character to favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a character from favorites",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavoritesRemove,
}

var favoritesCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print how many favorites are saved",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesCount,
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesCountCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	recs := a.store.List(a.store.Load())
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No tienes personajes favoritos")
		return nil
	}

	chars := make([]jikan.Character, 0, len(recs))
	for _, r := range recs {
		chars = append(chars, r.Character())
	}
	printCharacters(out, chars, func(int) bool { return true }, a.locale)
	return a.store.Err()
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	m := a.store.Load()
	if a.store.IsFavorite(id, m) {
		rec, _ := m.Get(id)
		fmt.Fprintf(cmd.OutOrStdout(), "%s ya está en favoritos\n", rec.Name)
		return nil
	}

	c, err := a.client.FetchCharacterDetail(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("loading character %d: %w", id, err)
	}
	a.store.Add(*c, m)
	if err := a.store.Err(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Añadido a favoritos: %s\n", c.Name)
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	m := a.store.Load()
	rec, ok := m.Get(id)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "El personaje %d no está en favoritos\n", id)
		return nil
	}
	a.store.Remove(id, m)
	if err := a.store.Err(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Eliminado de favoritos: %s\n", rec.Name)
	return nil
}

func runFavoritesCount(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(cmd.OutOrStdout(), a.store.Count(a.store.Load()))
	return nil
}
