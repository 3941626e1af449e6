package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/query"
	"github.com/c360studio/ontograph/vocabulary/rdfvoc"
)

func classCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Browse the class hierarchy",
	}
	cmd.AddCommand(
		classInfoCmd(a),
		classRootsCmd(a),
		classChildrenCmd(a),
		classAncestorsCmd(a),
		classDescendantsCmd(a),
	)
	return cmd
}

// classSummary is the compact class shape used in listings.
type classSummary struct {
	IRI         string `json:"iri"`
	LocalName   string `json:"local_name"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

func summarizeClass(c *ontology.Class) classSummary {
	return classSummary{IRI: c.IRI, LocalName: c.LocalName, Label: c.Label, Description: c.Description}
}

func classInfoCmd(a *app) *cobra.Command {
	var mf modelFlags
	var name string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show a class's parents, children, ancestors, and properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			svc := query.NewService(model, nil)
			cls, err := svc.FindClass(name)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			children, err := idx.Children(cls.IRI)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			ancestors, err := idx.Ancestors(cls.IRI)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			properties, err := idx.InheritedProperties(cls.IRI)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(
					map[string]string{"class": name},
					map[string]any{
						"class":                summarizeClass(cls),
						"parents":              cls.ParentIRIs(),
						"children":             children,
						"ancestors":            ancestors,
						"inherited_properties": properties,
					},
				)
			}

			fmt.Printf("%s <%s>\n", cls.Label, cls.IRI)
			if cls.Description != "" {
				fmt.Printf("  %s\n", cls.Description)
			}
			printIRIList("Parents", cls.ParentIRIs())
			printIRIList("Children", children)
			printIRIList("Ancestors", ancestors)
			printIRIList("Inherited properties", properties)
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Class IRI, local name, or label")
	cmd.MarkFlagRequired("name")
	return cmd
}

func classRootsCmd(a *app) *cobra.Command {
	var mf modelFlags

	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List root classes (classes with no declared parent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			roots := idx.Roots()
			if a.jsonOut {
				entries := make([]classSummary, 0, len(roots))
				for _, iri := range roots {
					entries = append(entries, summarizeClass(model.Classes[iri]))
				}
				return emitJSON(map[string]any{}, map[string]any{"roots": entries})
			}

			fmt.Printf("Root classes (%d):\n", len(roots))
			for _, iri := range roots {
				fmt.Printf("  %s <%s>\n", model.Classes[iri].Label, iri)
			}
			return nil
		},
	}

	mf.register(cmd)
	return cmd
}

func classChildrenCmd(a *app) *cobra.Command {
	var mf modelFlags
	var name string

	cmd := &cobra.Command{
		Use:   "children",
		Short: "List a class's direct subclasses",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			cls, err := query.NewService(model, nil).FindClass(name)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			children, err := idx.Children(cls.IRI)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(map[string]string{"class": name}, map[string]any{"children": children})
			}
			fmt.Printf("Children of %s (%d):\n", cls.Label, len(children))
			for _, iri := range children {
				fmt.Printf("  %s <%s>\n", model.Classes[iri].Label, iri)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Class IRI, local name, or label")
	cmd.MarkFlagRequired("name")
	return cmd
}

func classAncestorsCmd(a *app) *cobra.Command {
	var mf modelFlags
	var name string

	cmd := &cobra.Command{
		Use:   "ancestors",
		Short: "Show a class's ancestor path up to a root",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			cls, err := query.NewService(model, nil).FindClass(name)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			ancestors, err := idx.Ancestors(cls.IRI)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(map[string]string{"class": name}, map[string]any{"ancestors": ancestors})
			}
			fmt.Printf("Ancestors of %s (direct parent first):\n", cls.Label)
			for i, iri := range ancestors {
				label := iri
				if c, ok := model.Classes[iri]; ok {
					label = c.Label
				}
				fmt.Printf("  %d. %s <%s>\n", i+1, label, iri)
			}
			if len(ancestors) == 0 {
				fmt.Println("  (root class)")
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Class IRI, local name, or label")
	cmd.MarkFlagRequired("name")
	return cmd
}

func classDescendantsCmd(a *app) *cobra.Command {
	var mf modelFlags
	var name string

	cmd := &cobra.Command{
		Use:   "descendants",
		Short: "List the full transitive closure of a class's subclasses",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			cls, err := query.NewService(model, nil).FindClass(name)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			set, err := idx.Descendants(cls.IRI)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			descendants := make([]string, 0, len(set))
			for iri := range set {
				descendants = append(descendants, iri)
			}
			sort.Strings(descendants)

			if a.jsonOut {
				return emitJSON(map[string]string{"class": name}, map[string]any{"descendants": descendants})
			}
			fmt.Printf("Descendants of %s (%d):\n", cls.Label, len(descendants))
			for _, iri := range descendants {
				fmt.Printf("  %s <%s>\n", model.Classes[iri].Label, iri)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Class IRI, local name, or label")
	cmd.MarkFlagRequired("name")
	return cmd
}

func printIRIList(title string, iris []string) {
	fmt.Printf("  %s (%d):\n", title, len(iris))
	for _, iri := range iris {
		fmt.Printf("    %s <%s>\n", rdfvoc.LocalName(iri), iri)
	}
}
