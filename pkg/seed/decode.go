package seed

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/validation"
)

type documentFile struct {
	Errors []string  `yaml:"errors"`
	Fields yaml.Node `yaml:"fields"`
}

type fieldFile struct {
	Value    *string  `yaml:"value"`
	Errors   []string `yaml:"errors"`
	Warnings []string `yaml:"warnings"`
	Validate ruleList `yaml:"validate"`
}

// ruleList accepts either a single scalar or a sequence of scalars.
type ruleList []string

func (l *ruleList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = ruleList{node.Value}
		return nil
	case yaml.SequenceNode:
		var out []string
		if err := node.Decode(&out); err != nil {
			return err
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected rule name or list of rule names", node.Line)
	}
}

// Decode parses a YAML (or JSON) seed document and resolves its rule
// references through catalog. Fields keep the order in which the document
// declares them, which is also the order field validators run in.
//
//	errors: []
//	fields:
//	  email:
//	    value: ada@example.com
//	    validate: [required, email]
//	  name:
//	    validate: "minLength:2"
func Decode(data []byte, catalog *validation.Catalog) (Declaration, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Declaration{}, nil
	}

	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Declaration{}, fmt.Errorf("seed: parse document: %w", err)
	}

	decl := Declaration{Errors: doc.Errors}

	fields := &doc.Fields
	switch fields.Kind {
	case 0:
		return decl, nil
	case yaml.MappingNode:
	default:
		if fields.Tag == "!!null" {
			return decl, nil
		}
		return Declaration{}, fmt.Errorf("seed: line %d: fields must be a mapping", fields.Line)
	}

	for i := 0; i+1 < len(fields.Content); i += 2 {
		keyNode, valueNode := fields.Content[i], fields.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)

		var raw fieldFile
		if valueNode.Tag != "!!null" {
			if err := valueNode.Decode(&raw); err != nil {
				return Declaration{}, fmt.Errorf("seed: field %q: %w", name, err)
			}
		}

		field := FieldDeclaration{
			Name:     name,
			Value:    raw.Value,
			Errors:   raw.Errors,
			Warnings: raw.Warnings,
		}
		for _, ref := range raw.Validate {
			v, err := catalog.Resolve(ref)
			if err != nil {
				return Declaration{}, fmt.Errorf("seed: field %q: %w", name, err)
			}
			field.Validate = append(field.Validate, v)
		}
		decl.Fields = append(decl.Fields, field)
	}

	return decl, nil
}
