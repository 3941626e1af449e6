package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/registry"
	"github.com/c360studio/ontograph/validate"
)

func validateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate annotations against the ontology",
	}
	cmd.AddCommand(
		validateSchemaCmd(a),
		validateRelationshipsCmd(a),
		validateCompletenessCmd(a),
	)
	return cmd
}

func validateSchemaCmd(a *app) *cobra.Command {
	var mf modelFlags
	var file string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Check that annotations use known classes and applicable properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}
			var annotations []validate.Annotation
			if err := readJSONFile(file, &annotations); err != nil {
				return fail(a.jsonOut, err)
			}

			result, err := validate.NewChecker(model, idx).CheckSchema(annotations)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(map[string]string{"file": file}, result)
			}

			if result.Valid {
				fmt.Println("Schema check passed")
			} else {
				fmt.Printf("Schema check failed (%d errors)\n", len(result.Errors))
			}
			for _, issue := range result.Errors {
				fmt.Printf("  error [%s] %s\n", issue.Kind, issue.Message)
			}
			for _, issue := range result.Warnings {
				fmt.Printf("  warning [%s] %s\n", issue.Kind, issue.Message)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file of annotations to check")
	cmd.MarkFlagRequired("file")
	return cmd
}

func validateRelationshipsCmd(a *app) *cobra.Command {
	var mf modelFlags
	var file, subject, property, object string

	cmd := &cobra.Command{
		Use:   "relationships",
		Short: "Check (subject, property, object) triples against domains and ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, _, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			var rels []validate.Relationship
			switch {
			case file != "":
				if err := readJSONFile(file, &rels); err != nil {
					return fail(a.jsonOut, err)
				}
			case property != "":
				rels = []validate.Relationship{{SubjectClass: subject, Property: property, ObjectClass: object}}
			default:
				return fail(a.jsonOut, fmt.Errorf("provide --file or --property"))
			}

			report, err := validate.NewChecker(model, idx).CheckRelationships(rels)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(map[string]any{"relationships": rels}, report)
			}

			for _, res := range report.Results {
				status := "ok"
				if !res.Valid {
					status = "invalid"
				}
				fmt.Printf("  %s --%s--> %s: %s\n", res.SubjectClass, res.Property, res.ObjectClass, status)
				for _, e := range res.Errors {
					fmt.Printf("    %s\n", e)
				}
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file of relationship triples")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject class for a single triple")
	cmd.Flags().StringVar(&property, "property", "", "Property for a single triple")
	cmd.Flags().StringVar(&object, "object", "", "Object class for a single triple")
	return cmd
}

func validateCompletenessCmd(a *app) *cobra.Command {
	var mf modelFlags
	var className, propertyList, constraintsPath string

	cmd := &cobra.Command{
		Use:   "completeness",
		Short: "Score provided properties against a class's tracked property set",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, idx, entry, err := a.loadIndexed(cmd.Context(), &mf)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			path := constraintsPath
			if path == "" {
				path = entry.Constraints
			}
			constraints, err := registry.LoadConstraints(path)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			provided := splitList(propertyList)
			result, err := validate.NewChecker(model, idx).CheckCompleteness(className, provided, constraints)
			if err != nil {
				return fail(a.jsonOut, err)
			}

			if a.jsonOut {
				return emitJSON(
					map[string]any{"class": className, "provided": provided},
					result,
				)
			}

			fmt.Printf("Completeness of %s: %.3f\n", result.ClassName, result.Score)
			printNameList("Required missing", result.RequiredMissing)
			printNameList("Recommended missing", result.RecommendedMissing)
			printNameList("Optional missing", result.OptionalMissing)
			printNameList("Unrecognized", result.Unrecognized)
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVar(&className, "class", "", "Class IRI, local name, or label")
	cmd.Flags().StringVar(&propertyList, "properties", "", "Comma-separated property names provided")
	cmd.Flags().StringVar(&constraintsPath, "constraints", "", "Constraint config path (default from the registry entry)")
	cmd.MarkFlagRequired("class")
	return cmd
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printNameList(title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Printf("  %s: %s\n", title, strings.Join(names, ", "))
}
