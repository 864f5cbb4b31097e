package confstore

import (
	"errors"
	"path/filepath"

	"github.com/huangsam/compass/internal/contract"
)

// SyncProjectSummary copies a project's summary fields (name, status,
// priority, owner) into the per-project cache document under cache/<id>.yaml.
// The copy is one-directional and best-effort: a missing destination
// document is a silent no-op, never an error.
func (s *Store) SyncProjectSummary(projectID string) error {
	record, err := s.GetRecord(ProjectsKind, projectID)
	if err != nil {
		return err
	}

	destPath := filepath.Join("cache", projectID+".yaml")
	summary := Document{
		"summary": Document{
			"name":     record["name"],
			"status":   record["status"],
			"priority": record["priority"],
			"owner":    record["owner"],
		},
	}

	err = s.Update(destPath, summary, nil, false)
	var notFound *contract.NotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// SyncTeamToStakeholders propagates team-roster name and role into matching
// stakeholder profiles (matched by record ID). Stakeholders without a roster
// entry are left untouched; a missing stakeholders document is a no-op.
func (s *Store) SyncTeamToStakeholders() error {
	members, err := s.GetAllRecords(TeamKind, nil)
	if err != nil {
		var notFound *contract.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	stakeholders, err := s.GetAllRecords(StakeholdersKind, nil)
	if err != nil {
		var notFound *contract.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	updates := Document{}
	for id, member := range members {
		if _, ok := stakeholders[id]; !ok {
			continue
		}
		updates[id] = Document{
			"name": member["name"],
			"role": member["role"],
		}
	}
	if len(updates) == 0 {
		return nil
	}

	payload := Document{string(StakeholdersKind): updates}
	return s.Update(FileForKind(StakeholdersKind), payload, StakeholdersSchema(), true)
}
