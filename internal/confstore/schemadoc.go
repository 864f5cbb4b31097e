package confstore

import (
	"fmt"

	"github.com/huangsam/compass/schema"
)

// FieldType represents the expected type of a record field.
type FieldType string

// All field types supported by document schemas.
const (
	StringField FieldType = "string"
	NumberField FieldType = "number"
	BoolField   FieldType = "bool"
	ListField   FieldType = "list"
	MapField    FieldType = "map"
	DateField   FieldType = "date" // ISO 8601, YYYY-MM-DD
)

// FieldSpec is the validation contract for one record field.
type FieldSpec struct {
	Type     FieldType
	Required bool
	Enum     []string // allowed values for string fields, empty means any
}

// DocSchema validates a document shaped as a top-level map of records keyed
// by record ID (the shape every portfolio document shares).
type DocSchema struct {
	RootKey string
	Fields  map[string]FieldSpec
}

// Validate returns every violation found in the document. An empty slice
// means the document is valid.
func (ds *DocSchema) Validate(doc Document) []string {
	raw, ok := doc[ds.RootKey]
	if !ok {
		return []string{fmt.Sprintf("missing required top-level key %q", ds.RootKey)}
	}
	records, ok := toDocument(raw)
	if !ok {
		return []string{fmt.Sprintf("top-level key %q must be a mapping of records", ds.RootKey)}
	}

	var violations []string
	for id, rec := range records {
		record, ok := toDocument(rec)
		if !ok {
			violations = append(violations, fmt.Sprintf("%s.%s: record must be a mapping", ds.RootKey, id))
			continue
		}
		violations = append(violations, ds.validateRecord(id, record)...)
	}
	return violations
}

// validateRecord checks one record against the field specs.
func (ds *DocSchema) validateRecord(id string, record Document) []string {
	var violations []string
	for name, spec := range ds.Fields {
		value, present := record[name]
		if !present || value == nil {
			if spec.Required {
				violations = append(violations, fmt.Sprintf("%s.%s: missing required field %q", ds.RootKey, id, name))
			}
			continue
		}
		if msg := checkFieldType(value, spec); msg != "" {
			violations = append(violations, fmt.Sprintf("%s.%s.%s: %s", ds.RootKey, id, name, msg))
		}
	}
	return violations
}

// checkFieldType returns a violation message, or empty when the value conforms.
func checkFieldType(value any, spec FieldSpec) string {
	switch spec.Type {
	case StringField:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected string, got %T", value)
		}
		if len(spec.Enum) > 0 && !containsString(spec.Enum, s) {
			return fmt.Sprintf("value %q not in allowed set %v", s, spec.Enum)
		}
	case NumberField:
		switch value.(type) {
		case int, int64, float64:
		default:
			return fmt.Sprintf("expected number, got %T", value)
		}
	case BoolField:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected bool, got %T", value)
		}
	case ListField:
		if _, ok := value.([]any); !ok {
			return fmt.Sprintf("expected list, got %T", value)
		}
	case MapField:
		if _, ok := toDocument(value); !ok {
			return fmt.Sprintf("expected mapping, got %T", value)
		}
	case DateField:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected date string, got %T", value)
		}
		if _, err := schema.ParseDate(s); err != nil {
			return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s)
		}
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// ProjectsSchema returns the validation contract for the projects document.
func ProjectsSchema() *DocSchema {
	return &DocSchema{
		RootKey: "projects",
		Fields: map[string]FieldSpec{
			"name":         {Type: StringField, Required: true},
			"status":       {Type: StringField, Required: true, Enum: []string{"planning", "active", "in_progress", "completed", "on_hold", "cancelled"}},
			"priority":     {Type: StringField, Required: true, Enum: []string{"critical", "high", "medium", "low"}},
			"owner":        {Type: StringField},
			"start_date":   {Type: DateField},
			"target_date":  {Type: DateField},
			"github_repos": {Type: ListField},
			"dependencies": {Type: ListField},
			"milestones":   {Type: ListField},
			"blockers":     {Type: ListField},
		},
	}
}

// TeamSchema returns the validation contract for the team roster document.
func TeamSchema() *DocSchema {
	return &DocSchema{
		RootKey: "team",
		Fields: map[string]FieldSpec{
			"name":  {Type: StringField, Required: true},
			"role":  {Type: StringField, Required: true},
			"email": {Type: StringField},
		},
	}
}

// StakeholdersSchema returns the validation contract for stakeholder profiles.
func StakeholdersSchema() *DocSchema {
	return &DocSchema{
		RootKey: "stakeholders",
		Fields: map[string]FieldSpec{
			"name":      {Type: StringField, Required: true},
			"role":      {Type: StringField},
			"interest":  {Type: StringField},
			"influence": {Type: StringField},
		},
	}
}
