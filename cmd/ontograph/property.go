package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/query"
	"github.com/c360studio/ontograph/vocabulary/rdfvoc"
)

func propertyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Look up properties and their domains and ranges",
	}
	cmd.AddCommand(
		propertyLookupCmd(a),
		propertyByClassCmd(a),
	)
	return cmd
}

func propertyLookupCmd(a *app) *cobra.Command {
	var mf modelFlags
	var name string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Show a property's kind, domain, and range",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, _, err := a.loadModel(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			info, err := query.NewService(model, nil).FindProperty(name)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(map[string]string{"property": name}, info)
			}

			switch info.Kind {
			case query.KindObjectProperty:
				p := info.Object
				fmt.Printf("%s <%s> (object property)\n", p.Label, p.IRI)
				if p.Description != "" {
					fmt.Printf("  %s\n", p.Description)
				}
				fmt.Printf("  Domain: %s\n", joinLocalNames(p.DomainIRIs()))
				fmt.Printf("  Range:  %s\n", joinLocalNames(p.RangeIRIs()))
			case query.KindDataProperty:
				p := info.Data
				fmt.Printf("%s <%s> (data property)\n", p.Label, p.IRI)
				if p.Description != "" {
					fmt.Printf("  %s\n", p.Description)
				}
				fmt.Printf("  Domain: %s\n", joinLocalNames(p.DomainIRIs()))
				fmt.Printf("  Range:  %s\n", p.Range)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Property IRI, local name, or label")
	cmd.MarkFlagRequired("name")
	return cmd
}

func propertyByClassCmd(a *app) *cobra.Command {
	var mf modelFlags
	var className string

	cmd := &cobra.Command{
		Use:   "by-class",
		Short: "List the properties a class carries, including inherited ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			cls, err := query.NewService(model, nil).FindClass(className)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			propIRIs, err := idx.InheritedProperties(cls.IRI)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			type entry struct {
				IRI    string `json:"iri"`
				Label  string `json:"label"`
				Kind   string `json:"kind"`
				Range  string `json:"range"`
				Direct bool   `json:"direct"`
			}
			entries := make([]entry, 0, len(propIRIs))
			for _, iri := range propIRIs {
				if p, ok := model.ObjectProperties[iri]; ok {
					entries = append(entries, entry{
						IRI:    iri,
						Label:  p.Label,
						Kind:   string(query.KindObjectProperty),
						Range:  joinLocalNames(p.RangeIRIs()),
						Direct: p.Domain[cls.IRI],
					})
					continue
				}
				if p, ok := model.DataProperties[iri]; ok {
					entries = append(entries, entry{
						IRI:    iri,
						Label:  p.Label,
						Kind:   string(query.KindDataProperty),
						Range:  string(p.Range),
						Direct: p.Domain[cls.IRI],
					})
				}
			}

			if a.jsonOut {
				return emitJSON(map[string]string{"class": className}, map[string]any{"properties": entries})
			}

			fmt.Printf("Properties of %s (%d):\n", cls.Label, len(entries))
			for _, e := range entries {
				origin := "inherited"
				if e.Direct {
					origin = "direct"
				}
				fmt.Printf("  %s (%s, %s) -> %s\n", e.Label, e.Kind, origin, e.Range)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&className, "class", "", "Class IRI, local name, or label")
	cmd.MarkFlagRequired("class")
	return cmd
}

func joinLocalNames(iris []string) string {
	if len(iris) == 0 {
		return "(any)"
	}
	names := make([]string, len(iris))
	for i, iri := range iris {
		names[i] = rdfvoc.LocalName(iri)
	}
	return strings.Join(names, ", ")
}
