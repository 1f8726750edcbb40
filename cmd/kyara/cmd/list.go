package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/filter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most popular characters",
	Long: `List one page of characters from the Jikan API.

Example:
  kyara list
  kyara list --page 3 --sort name-asc
  kyara list --filter favorites-only`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search characters by name",
	Long: `Search characters by name. Multiple words are joined with spaces.

Example:
  kyara search naruto
  kyara search "monkey d luffy" --page 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a character's full details",
	Long: `Show everything known about one character: nicknames, anime and manga
appearances, voice actors and the description.

Example:
  kyara show 40`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)

	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().Int("page", 1, "page number")
		c.Flags().String("sort", "", "sort: default, name-asc, name-desc, favorites")
		c.Flags().String("filter", "", "filter: all, favorites-only, non-favorites")
	}
}

// viewFlags reads --sort and --filter.
func viewFlags(cmd *cobra.Command) (filter.SortMode, filter.FilterMode, error) {
	sortFlag, _ := cmd.Flags().GetString("sort")
	filterFlag, _ := cmd.Flags().GetString("filter")

	s, err := filter.ParseSortMode(sortFlag)
	if err != nil {
		return "", "", err
	}
	f, err := filter.ParseFilterMode(filterFlag)
	if err != nil {
		return "", "", err
	}
	return s, f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	return runListing(cmd, func(a *app) error {
		return a.ctrl.LoadPage(cmd.Context(), page)
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("search query is empty")
	}
	page, _ := cmd.Flags().GetInt("page")
	return runListing(cmd, func(a *app) error {
		if err := a.ctrl.Search(cmd.Context(), query); err != nil || page <= 1 {
			return err
		}
		return a.ctrl.SearchPage(cmd.Context(), page)
	})
}

// runListing applies the view flags, runs fetch and prints what the
// controller ended up displaying.
func runListing(cmd *cobra.Command, fetch func(a *app) error) error {
	sortMode, filterMode, err := viewFlags(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("sort") {
		a.ctrl.SetSort(sortMode)
	}
	if cmd.Flags().Changed("filter") {
		a.ctrl.SetFilter(filterMode)
	}

	fetchErr := fetch(a)
	st := a.ctrl.Snapshot()
	out := cmd.OutOrStdout()

	if !st.Message.IsZero() {
		printMessage(out, st.Message)
		if st.Message.Kind == catalog.ErrorMessage {
			return fetchErr
		}
		return nil
	}
	if fetchErr != nil {
		return fetchErr
	}

	printCharacters(out, st.Displayed, a.ctrl.IsFavorite, a.locale)
	printPageFooter(out, st)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.client.FetchCharacterDetail(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("loading character %d: %w", id, err)
	}
	printDetail(cmd.OutOrStdout(), c, a.ctrl.IsFavorite(id), a.locale)
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid character id %q", s)
	}
	return id, nil
}
