package cmd

import (
	"fmt"

	"github.com/huangsam/compass/internal/contract"
	"github.com/spf13/cobra"
)

// syncCmd propagates shared fields across portfolio documents.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Propagate shared fields across portfolio documents",
	Long: `Run the cross-document sync rules:

- Project summary fields (name, status, priority, owner) are copied
  into the per-project cache documents under cache/.
- Team roster name and role are copied into matching stakeholder
  profiles.

Sync is best-effort: missing destination documents are skipped, and a
failure on one rule does not stop the others.

Examples:
  compass sync --portfolio ./portfolio`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := newPortfolioStore()

		projects, err := store.GetAllProjects(nil)
		if err != nil {
			contract.LogFatal("Cannot load projects", err)
		}

		synced := 0
		for _, p := range projects {
			if err := store.SyncProjectSummary(p.ID); err != nil {
				contract.LogWarn(fmt.Sprintf("summary sync for %s", p.ID), err)
				continue
			}
			synced++
		}

		if err := store.SyncTeamToStakeholders(); err != nil {
			contract.LogWarn("team to stakeholders sync", err)
		}

		fmt.Printf("Synced %d of %d project summaries.\n", synced, len(projects))
	},
}
