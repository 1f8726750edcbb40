package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Recommend anime from your favorite characters",
	Long: `Look up the first favorite characters, collect the anime they appear in
and print the details of each distinct anime. The number of characters
and anime consulted is set under 'explorer' in config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	recs := a.store.List(a.store.Load())
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No hay recomendaciones disponibles")
		fmt.Fprintln(out, "Agrega algunos personajes a tus favoritos con 'kyara favorites add <id>'.")
		return nil
	}

	fmt.Fprintf(out, "Buscando recomendaciones a partir de %d favoritos...\n\n", min(len(recs), a.cfg.Explorer.MaxCharacters))
	anime := a.explorer.Aggregate(cmd.Context(), recs)
	if len(anime) == 0 {
		fmt.Fprintln(out, "No hay recomendaciones disponibles")
		return cmd.Context().Err()
	}
	for i, an := range anime {
		printAnime(out, i, an)
		fmt.Fprintln(out)
	}
	return nil
}
