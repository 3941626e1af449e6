package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/export"
	"github.com/c360studio/ontograph/ontology/summary"
	"github.com/c360studio/ontograph/watch"
)

func exportCmd(a *app) *cobra.Command {
	var mf modelFlags
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Re-serialize the ontology as Turtle, N-Triples, or JSON-LD",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, _, err := a.loadModel(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			output, err := export.NewRDFExporter(model).Export(export.Format(format))
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if out != "" {
				if err := os.WriteFile(out, []byte(output), 0o644); err != nil {
					return fail(a.jsonOut, fmt.Errorf("write %s: %w", out, err))
				}
				if a.jsonOut {
					return emitJSON(
						map[string]string{"format": format, "output": out},
						map[string]any{"bytes": len(output)},
					)
				}
				fmt.Printf("Wrote %s (%d bytes)\n", out, len(output))
				return nil
			}

			fmt.Print(output)
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(export.FormatTurtle), "Output format: turtle, ntriples, or jsonld")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default stdout)")
	return cmd
}

// watchCmd keeps a summary document in sync with its OWL/XML source,
// re-summarizing after each debounced change until interrupted.
func watchCmd(a *app) *cobra.Command {
	var src, out string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-summarize an OWL/XML file whenever it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := out
			if path == "" {
				path = summaryPathFor(src)
			}

			rebuild := func(changed string) error {
				model, err := a.parseSource(cmd.Context(), changed)
				if err != nil {
					return err
				}
				doc := summary.Summarize(model)
				if err := summary.WriteFile(path, doc); err != nil {
					return err
				}
				slog.Info("summary rebuilt", "source", changed, "output", path,
					"classes", doc.Statistics.NumClasses)
				return nil
			}

			// Build once up front so the summary exists before the first
			// change event.
			if err := rebuild(src); err != nil {
				return fail(a.jsonOut, err)
			}

			w := watch.New(src, a.cfg.Watch.DebounceDelay, slog.Default(), rebuild)
			if err := w.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
				return fail(a.jsonOut, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "source", "", "Path of an OWL/XML document to watch")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Summary output path (default <source stem>.summary.json)")
	cmd.MarkFlagRequired("source")
	return cmd
}
