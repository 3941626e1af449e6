package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/mapper"
	"github.com/c360studio/ontograph/query"
	"github.com/c360studio/ontograph/registry"
)

// synonymsFor loads the per-ontology synonym table named by a registry
// entry. Entries without a synonym config get generic matching only.
func synonymsFor(entry registry.Entry) (map[string]string, error) {
	cfg, err := registry.LoadSynonyms(entry.Synonyms)
	if err != nil {
		return nil, err
	}
	return cfg.Merged(), nil
}

func searchCmd(a *app) *cobra.Command {
	var mf modelFlags
	var target string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank classes and properties against a free-text query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryText := args[0]
			model, entry, err := a.loadModel(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			synonyms, err := synonymsFor(entry)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			matches, err := query.NewService(model, synonyms).Search(queryText, query.Target(target))
			if err != nil {
				return fail(a.jsonOut, err)
			}
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}

			if a.jsonOut {
				return emitJSON(
					map[string]any{"query": queryText, "target": target},
					map[string]any{"matches": matches},
				)
			}

			if len(matches) == 0 {
				fmt.Printf("No matches for %q\n", queryText)
				return nil
			}
			fmt.Printf("Matches for %q (%d):\n", queryText, len(matches))
			for _, m := range matches {
				fmt.Printf("  %.2f  %s (%s) <%s>\n", m.Score, m.Entity.Label, m.Entity.Kind, m.Entity.IRI)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&target, "target", string(query.TargetBoth), "Search target: classes, properties, or both")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of matches to report (0 = all)")
	return cmd
}

func mapCmd(a *app) *cobra.Command {
	var mf modelFlags

	cmd := &cobra.Command{
		Use:   "map <term>...",
		Short: "Map natural-language terms to ontology entities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, entry, err := a.loadModel(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			synonyms, err := synonymsFor(entry)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			result, err := mapper.New(model, synonyms).Map(args)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(map[string]any{"terms": args}, result)
			}

			for _, m := range result.Matches {
				fmt.Printf("  %q -> %s (%s, confidence %.2f) <%s>\n",
					m.Term, m.Matched, m.Kind, m.Confidence, m.IRI)
			}
			for _, s := range result.Suggestions {
				fmt.Printf("  %s\n", s)
			}
			return nil
		},
	}

	mf.register(cmd)
	return cmd
}
