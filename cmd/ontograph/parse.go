package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/ontology/summary"
)

// parseCmd parses an OWL/XML source and reports what was found without
// persisting anything. Useful as a pre-flight check before summarize.
func parseCmd(a *app) *cobra.Command {
	var src string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse an OWL/XML document and report its contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.parseSource(cmd.Context(), src)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			results := map[string]any{
				"metadata": model.Metadata,
				"statistics": map[string]int{
					"num_classes":           len(model.Classes),
					"num_object_properties": len(model.ObjectProperties),
					"num_data_properties":   len(model.DataProperties),
				},
				"warnings": model.Warnings,
			}
			if a.jsonOut {
				return emitJSON(map[string]string{"source": src}, results)
			}

			fmt.Printf("Parsed %s\n", src)
			if model.Metadata.Name != "" {
				fmt.Printf("  Ontology: %s", model.Metadata.Name)
				if model.Metadata.Version != "" {
					fmt.Printf(" (version %s)", model.Metadata.Version)
				}
				fmt.Println()
			}
			fmt.Printf("  Classes: %d\n", len(model.Classes))
			fmt.Printf("  Object properties: %d\n", len(model.ObjectProperties))
			fmt.Printf("  Data properties: %d\n", len(model.DataProperties))
			printWarnings(model.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "source", "", "Path or URL of an OWL/XML document")
	cmd.MarkFlagRequired("source")
	return cmd
}

// summarizeCmd parses an OWL/XML source and writes its summary document,
// the persisted form every other command loads.
func summarizeCmd(a *app) *cobra.Command {
	var src, out string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Parse an OWL/XML document and write its summary JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.parseSource(cmd.Context(), src)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			doc := summary.Summarize(model)
			path := out
			if path == "" {
				path = summaryPathFor(src)
			}
			if err := summary.WriteFile(path, doc); err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(
					map[string]string{"source": src, "output": path},
					map[string]any{
						"summary_id": doc.Metadata.SummaryID,
						"statistics": doc.Statistics,
						"warnings":   doc.Warnings,
					},
				)
			}

			fmt.Printf("Wrote %s\n", path)
			fmt.Printf("  Classes: %d, object properties: %d, data properties: %d\n",
				doc.Statistics.NumClasses, doc.Statistics.NumObjectProperties, doc.Statistics.NumDataProperties)
			printWarnings(doc.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "source", "", "Path or URL of an OWL/XML document")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default <source stem>.summary.json)")
	cmd.MarkFlagRequired("source")
	return cmd
}

// summaryPathFor derives the default summary path from a source path or URL:
// cmso.owl becomes cmso.summary.json in the working directory.
func summaryPathFor(src string) string {
	base := filepath.Base(strings.TrimSuffix(src, "/"))
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = "ontology"
	}
	return stem + ".summary.json"
}

func printWarnings(warnings []ontology.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("  Warnings (%d):\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("    [%s] %s: %s\n", w.Kind, w.Subject, w.Detail)
	}
}
