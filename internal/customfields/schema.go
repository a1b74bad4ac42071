package customfields

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("customfields: schema invalid")
	ErrSchemaValidation = errors.New("customfields: validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// ValidationError lists the issues found while validating field values.
type ValidationError struct {
	Group  string
	Issues []ValidationIssue
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Group, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// JSONSchema describes the values a group accepts.
func (g Group) JSONSchema() map[string]any {
	properties := make(map[string]any, len(g.Fields))
	required := []string{}
	for _, field := range g.Fields {
		properties[field.Name] = fieldSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}
	schema := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func fieldSchema(field Field) map[string]any {
	switch normalizeType(field.Type) {
	case TypeNumber:
		return map[string]any{"type": "number"}
	case TypeTrueFalse:
		return map[string]any{"type": "boolean"}
	case TypeSelect:
		schema := map[string]any{"type": "string"}
		if len(field.Choices) > 0 {
			choices := make([]any, 0, len(field.Choices))
			for _, choice := range field.Choices {
				choices = append(choices, choice)
			}
			schema["enum"] = choices
		}
		return schema
	case TypeImage:
		return map[string]any{"type": "integer", "minimum": 1}
	case TypeJSON:
		return map[string]any{}
	default:
		return map[string]any{"type": "string"}
	}
}

func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

// toJSONValue normalizes Go values into the shapes produced by encoding/json
// so the schema validator sees numbers as json.Number.
func toJSONValue(v any) (any, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectIssues(err error) []ValidationIssue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []ValidationIssue{{Message: err.Error()}}
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}
