// Package validate checks annotations, relationships, and property
// completeness against an ontology. All checkers work off the summary-loaded
// model plus the hierarchy index, so subclass relationships are honored on
// both property domains and ranges.
package validate

import (
	"errors"
	"fmt"

	"github.com/c360studio/ontograph/hierarchy"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/query"
)

// Checker validates external annotations against one ontology.
type Checker struct {
	model *ontology.Model
	index *hierarchy.Index
	svc   *query.Service
}

// NewChecker builds a checker over a model and its hierarchy index.
func NewChecker(m *ontology.Model, idx *hierarchy.Index) *Checker {
	return &Checker{model: m, index: idx, svc: query.NewService(m, nil)}
}

// Annotation is an externally produced class/property assignment to check.
type Annotation struct {
	Class      string         `json:"class"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Issue is a single validation finding.
type Issue struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SchemaResult reports annotation validity.
type SchemaResult struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// CheckSchema validates that each annotation names a known class and known
// properties, and warns when a property is applied to a class outside its
// domain (including inherited domains).
func (c *Checker) CheckSchema(annotations []Annotation) (*SchemaResult, error) {
	if len(annotations) == 0 {
		return nil, fmt.Errorf("no annotations to check")
	}

	result := &SchemaResult{Valid: true}
	for _, ann := range annotations {
		if ann.Class == "" {
			continue
		}
		cls, err := c.svc.FindClass(ann.Class)
		if err != nil {
			var notFound *query.ClassNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
			result.Errors = append(result.Errors, Issue{
				Field:   ann.Class,
				Kind:    "unknown_class",
				Message: fmt.Sprintf("class %q not found in ontology", ann.Class),
			})
			continue
		}

		var applicable map[string]bool
		if props, err := c.index.InheritedProperties(cls.IRI); err == nil {
			applicable = ontology.SetFromSlice(props)
		}

		for propName := range ann.Properties {
			info, err := c.svc.FindProperty(propName)
			if err != nil {
				var notFound *query.PropertyNotFoundError
				if !errors.As(err, &notFound) {
					return nil, err
				}
				result.Errors = append(result.Errors, Issue{
					Field:   propName,
					Kind:    "unknown_property",
					Message: fmt.Sprintf("property %q not found in ontology", propName),
				})
				continue
			}
			propIRI := propertyIRI(info)
			if applicable != nil && !applicable[propIRI] {
				result.Warnings = append(result.Warnings, Issue{
					Field: propName,
					Kind:  "domain_mismatch",
					Message: fmt.Sprintf("property %q does not apply to class %q or its ancestors",
						propName, cls.Label),
				})
			}
		}
	}
	result.Valid = len(result.Errors) == 0
	return result, nil
}

func propertyIRI(info *query.PropertyInfo) string {
	if info.Object != nil {
		return info.Object.IRI
	}
	return info.Data.IRI
}
