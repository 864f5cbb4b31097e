package confstore

import (
	"fmt"
	"sort"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
	"gopkg.in/yaml.v3"
)

// RecordKind identifies one portfolio document and its top-level record map.
type RecordKind string

// All record kinds supported.
const (
	ProjectsKind     RecordKind = "projects"
	TeamKind         RecordKind = "team"
	StakeholdersKind RecordKind = "stakeholders"
)

// FileForKind returns the document filename for a record kind.
func FileForKind(kind RecordKind) string {
	return string(kind) + ".yaml"
}

// SchemaForKind returns the validation contract for a record kind.
func SchemaForKind(kind RecordKind) *DocSchema {
	switch kind {
	case TeamKind:
		return TeamSchema()
	case StakeholdersKind:
		return StakeholdersSchema()
	default:
		return ProjectsSchema()
	}
}

// GetRecord loads the whole document for kind and looks up one record by ID.
// A missing record yields *contract.NotFoundError carrying the ID.
func (s *Store) GetRecord(kind RecordKind, id string) (Document, error) {
	doc, err := s.Load(FileForKind(kind), SchemaForKind(kind), true)
	if err != nil {
		return nil, err
	}
	records, _ := toDocument(doc[string(kind)])
	raw, ok := records[id]
	if !ok {
		return nil, &contract.NotFoundError{Path: s.resolve(FileForKind(kind)), Key: id}
	}
	record, ok := toDocument(raw)
	if !ok {
		return nil, fmt.Errorf("record %q in %s is not a mapping", id, FileForKind(kind))
	}
	return record, nil
}

// GetAllRecords loads the document once and applies an optional allow-list
// filter per field. A record matches only if every filtered field's value is
// a member of the allowed set for that field.
func (s *Store) GetAllRecords(kind RecordKind, filters map[string][]string) (map[string]Document, error) {
	doc, err := s.Load(FileForKind(kind), SchemaForKind(kind), true)
	if err != nil {
		return nil, err
	}
	records, _ := toDocument(doc[string(kind)])

	result := make(map[string]Document, len(records))
	for id, raw := range records {
		record, ok := toDocument(raw)
		if !ok {
			continue
		}
		if matchesFilters(record, filters) {
			result[id] = record
		}
	}
	return result, nil
}

// matchesFilters applies per-field allow-lists to one record.
func matchesFilters(record Document, filters map[string][]string) bool {
	for field, allowed := range filters {
		value, ok := record[field].(string)
		if !ok || !containsString(allowed, value) {
			return false
		}
	}
	return true
}

// UpdateRecord deep-merges updates into one record via the generic Update.
func (s *Store) UpdateRecord(kind RecordKind, id string, updates Document) error {
	// Surface a record-level NotFoundError before mutating anything.
	if _, err := s.GetRecord(kind, id); err != nil {
		return err
	}
	payload := Document{
		string(kind): Document{
			id: updates,
		},
	}
	return s.Update(FileForKind(kind), payload, SchemaForKind(kind), true)
}

// GetProject returns one project record decoded into its typed form.
func (s *Store) GetProject(id string) (schema.Project, error) {
	record, err := s.GetRecord(ProjectsKind, id)
	if err != nil {
		return schema.Project{}, err
	}
	project, err := decodeProject(record)
	if err != nil {
		return schema.Project{}, fmt.Errorf("project %q: %w", id, err)
	}
	project.ID = id
	return project, nil
}

// GetAllProjects returns all matching projects in deterministic ID order.
func (s *Store) GetAllProjects(filters map[string][]string) ([]schema.Project, error) {
	records, err := s.GetAllRecords(ProjectsKind, filters)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	projects := make([]schema.Project, 0, len(ids))
	for _, id := range ids {
		project, err := decodeProject(records[id])
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", id, err)
		}
		project.ID = id
		projects = append(projects, project)
	}
	return projects, nil
}

// decodeProject converts a generic record into the typed Project via a YAML
// round-trip, which reuses the struct tags as the single field mapping.
func decodeProject(record Document) (schema.Project, error) {
	data, err := yaml.Marshal(record)
	if err != nil {
		return schema.Project{}, err
	}
	var project schema.Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return schema.Project{}, err
	}
	return project, nil
}
