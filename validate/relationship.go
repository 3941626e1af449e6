package validate

import (
	"errors"
	"fmt"

	"github.com/c360studio/ontograph/query"
)

// Relationship is a (subject, property, object) triple to validate against
// the ontology's domain and range declarations.
type Relationship struct {
	SubjectClass string `json:"subject_class"`
	Property     string `json:"property"`
	ObjectClass  string `json:"object_class"`
}

// RelationshipResult reports one triple's validity.
type RelationshipResult struct {
	Relationship
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// RelationshipReport aggregates per-triple results.
type RelationshipReport struct {
	Valid   bool                 `json:"valid"`
	Results []RelationshipResult `json:"results"`
	Errors  []string             `json:"errors,omitempty"`
}

// CheckRelationships validates each triple: the property must exist as an
// object property, the subject class must be in (or below) the property's
// domain, and the object class in (or below) its range. Union domains and
// ranges accept any member.
func (c *Checker) CheckRelationships(rels []Relationship) (*RelationshipReport, error) {
	if len(rels) == 0 {
		return nil, fmt.Errorf("no relationships to check")
	}

	report := &RelationshipReport{Valid: true}
	for _, rel := range rels {
		res := RelationshipResult{Relationship: rel}

		info, err := c.svc.FindProperty(rel.Property)
		if err != nil {
			var notFound *query.PropertyNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
			res.Errors = append(res.Errors,
				fmt.Sprintf("property %q not found in ontology", rel.Property))
		} else if info.Object == nil {
			res.Errors = append(res.Errors,
				fmt.Sprintf("property %q is a data property, not a relationship", rel.Property))
		} else {
			if rel.SubjectClass != "" && len(info.Object.Domain) > 0 {
				ok, err := c.compatible(rel.SubjectClass, info.Object.DomainIRIs())
				if err != nil {
					return nil, err
				}
				if !ok {
					res.Errors = append(res.Errors,
						fmt.Sprintf("subject %q is not compatible with the domain of %q",
							rel.SubjectClass, rel.Property))
				}
			}
			if rel.ObjectClass != "" && len(info.Object.Range) > 0 {
				ok, err := c.compatible(rel.ObjectClass, info.Object.RangeIRIs())
				if err != nil {
					return nil, err
				}
				if !ok {
					res.Errors = append(res.Errors,
						fmt.Sprintf("object %q is not compatible with the range of %q",
							rel.ObjectClass, rel.Property))
				}
			}
		}

		res.Valid = len(res.Errors) == 0
		report.Results = append(report.Results, res)
		report.Errors = append(report.Errors, res.Errors...)
	}
	report.Valid = len(report.Errors) == 0
	return report, nil
}

// compatible reports whether the named class is the same as, or a
// descendant of, any of the candidate class IRIs.
func (c *Checker) compatible(className string, candidates []string) (bool, error) {
	cls, err := c.svc.FindClass(className)
	if err != nil {
		var notFound *query.ClassNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	for _, candidate := range candidates {
		ok, err := c.index.IsSubclassOf(cls.IRI, candidate)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
