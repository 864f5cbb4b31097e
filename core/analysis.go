package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/compass/internal/confstore"
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
)

// neutralDependencyScore stands in for an upstream score that cannot be
// computed: an unknown project ID or a dependency cycle.
const neutralDependencyScore = 0.5

// PortfolioAnalyzer orchestrates one analysis pass: load projects, collect
// activity, score in dependency order, and record snapshots.
type PortfolioAnalyzer struct {
	cfg     *contract.Config
	store   *confstore.Store
	scorer  *Scorer
	source  contract.ActivitySource // nil disables activity collection
	history contract.HistoryStore   // nil disables snapshot recording
	clock   contract.Clock
}

// NewPortfolioAnalyzer builds an analyzer from validated configuration. The
// weight invariant is enforced here via NewScorer so a bad config fails
// before any scoring happens.
func NewPortfolioAnalyzer(
	cfg *contract.Config,
	store *confstore.Store,
	source contract.ActivitySource,
	history contract.HistoryStore,
	clock contract.Clock,
) (*PortfolioAnalyzer, error) {
	scorer, err := NewScorer(cfg.Weights)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = contract.SystemClock{}
	}
	return &PortfolioAnalyzer{
		cfg:     cfg,
		store:   store,
		scorer:  scorer,
		source:  source,
		history: history,
		clock:   clock,
	}, nil
}

// portfolioPass holds the intermediate results of one analysis pass so the
// health, risk, and check operations can share a single scoring run.
type portfolioPass struct {
	asOf     time.Time
	projects []schema.Project
	signals  map[string]schema.ProjectSignals
	scores   map[string]schema.HealthScore
}

// Dependency traversal states for the memoized scoring walk.
const (
	depUnvisited = iota
	depVisiting
	depScored
)

// analyze runs the full portfolio pass. Projects are scored in dependency
// order via memoized recursion: each project's dependency component sees the
// already-computed overall scores of its upstreams. Cycles and unknown
// dependency IDs contribute a neutral score instead of recursing forever or
// failing the whole pass. Activity collection failures degrade to a warning
// and a neutral activity component.
func (a *PortfolioAnalyzer) analyze(ctx context.Context) (*portfolioPass, error) {
	projects, err := a.store.GetAllProjects(nil)
	if err != nil {
		return nil, err
	}

	asOf := a.clock.Now()
	byID := make(map[string]schema.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	activity := a.collectActivity(ctx, projects, asOf)

	pass := &portfolioPass{
		asOf:     asOf,
		projects: projects,
		signals:  make(map[string]schema.ProjectSignals, len(projects)),
		scores:   make(map[string]schema.HealthScore, len(projects)),
	}

	state := make(map[string]int, len(projects))
	var visit func(id string) (float64, error)
	visit = func(id string) (float64, error) {
		if score, ok := pass.scores[id]; ok {
			return score.Overall, nil
		}
		project, ok := byID[id]
		if !ok || state[id] == depVisiting {
			return neutralDependencyScore, nil
		}
		state[id] = depVisiting

		var depScores []float64
		for _, dep := range project.Dependencies {
			upstream, err := visit(dep)
			if err != nil {
				return 0, err
			}
			depScores = append(depScores, upstream)
		}

		signals, err := BuildSignals(project, asOf, activity[id], a.cfg.ActivityBaseline, depScores)
		if err != nil {
			return 0, err
		}
		score := a.scorer.Score(signals)
		pass.signals[id] = signals
		pass.scores[id] = score
		state[id] = depScored
		return score.Overall, nil
	}

	for _, p := range projects {
		if _, err := visit(p.ID); err != nil {
			return nil, err
		}
	}
	return pass, nil
}

// collectActivity fetches activity counts per project. A nil source or a
// project without tracked repos yields no entry, which the scorer treats as
// neutral.
func (a *PortfolioAnalyzer) collectActivity(ctx context.Context, projects []schema.Project, asOf time.Time) map[string]*schema.ActivityCounts {
	activity := make(map[string]*schema.ActivityCounts)
	if a.source == nil {
		return activity
	}

	since := asOf.AddDate(0, 0, -a.cfg.LookbackDays)
	for _, p := range projects {
		if len(p.GitHubRepos) == 0 {
			continue
		}
		counts, err := a.source.FetchActivity(ctx, p.GitHubRepos, since)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("activity collection for %s", p.ID), err)
			continue
		}
		activity[p.ID] = counts
	}
	return activity
}

// Run scores the portfolio and returns the per-project results, most at-risk
// first, capped at the configured result limit. When a single project is
// scoped the rest of the portfolio is still scored (dependencies need it)
// but only the scoped project is reported. Snapshots are recorded for every
// scored project; a recording failure degrades to a warning.
func (a *PortfolioAnalyzer) Run(ctx context.Context) (*schema.PortfolioHealth, error) {
	pass, err := a.analyze(ctx)
	if err != nil {
		return nil, err
	}

	scoped, err := a.scopeProjects(pass)
	if err != nil {
		return nil, err
	}

	a.recordSnapshots(pass)

	results := make([]schema.ProjectHealth, 0, len(scoped))
	for _, p := range scoped {
		results = append(results, schema.ProjectHealth{
			ID:       p.ID,
			Name:     p.Name,
			Status:   p.Status,
			Priority: p.Priority,
			Score:    pass.scores[p.ID],
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score.Overall != results[j].Score.Overall {
			return results[i].Score.Overall < results[j].Score.Overall
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > a.cfg.ResultLimit {
		results = results[:a.cfg.ResultLimit]
	}

	return &schema.PortfolioHealth{Projects: results, AsOf: pass.asOf}, nil
}

// ProjectRisks assesses one project's risks from a fresh analysis pass.
func (a *PortfolioAnalyzer) ProjectRisks(ctx context.Context, projectID string) ([]schema.Risk, error) {
	pass, err := a.analyze(ctx)
	if err != nil {
		return nil, err
	}
	signals, ok := pass.signals[projectID]
	if !ok {
		return nil, &contract.NotFoundError{Path: a.cfg.PortfolioDir, Key: projectID}
	}
	return AssessRisks(signals), nil
}

// PortfolioRisks assesses every project and returns one combined ranking.
func (a *PortfolioAnalyzer) PortfolioRisks(ctx context.Context) ([]schema.Risk, error) {
	pass, err := a.analyze(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]schema.ProjectSignals, 0, len(pass.projects))
	for _, p := range pass.projects {
		all = append(all, pass.signals[p.ID])
	}
	return AssessPortfolioRisks(all), nil
}

// Check runs the portfolio health gate over every project, ignoring the
// result limit and any single-project scope.
func (a *PortfolioAnalyzer) Check(ctx context.Context) (*schema.CheckResult, error) {
	pass, err := a.analyze(ctx)
	if err != nil {
		return nil, err
	}
	result := evaluateGate(pass, a.cfg.CheckThreshold)
	return &result, nil
}

// ProjectTrend analyzes the stored score history for one project over the
// configured trend window.
func (a *PortfolioAnalyzer) ProjectTrend(projectID string) (schema.TrendAnalysis, error) {
	if a.history == nil {
		return schema.TrendAnalysis{}, errors.New("trend analysis requires a history backend (history-backend is none)")
	}
	since := a.clock.Now().AddDate(0, 0, -a.cfg.TrendWindowDays)
	points, err := a.history.GetProjectSeries(projectID, since)
	if err != nil {
		return schema.TrendAnalysis{}, err
	}
	return AnalyzeTrend(points, a.cfg.StableThreshold), nil
}

// scopeProjects narrows the pass to the configured project, if any.
func (a *PortfolioAnalyzer) scopeProjects(pass *portfolioPass) ([]schema.Project, error) {
	if a.cfg.ProjectID == "" {
		return pass.projects, nil
	}
	for _, p := range pass.projects {
		if p.ID == a.cfg.ProjectID {
			return []schema.Project{p}, nil
		}
	}
	return nil, &contract.NotFoundError{Path: a.cfg.PortfolioDir, Key: a.cfg.ProjectID}
}

// recordSnapshots persists one snapshot per scored project. Best effort: the
// analysis result is already in hand, so storage problems only warn.
func (a *PortfolioAnalyzer) recordSnapshots(pass *portfolioPass) {
	if a.history == nil {
		return
	}
	for _, p := range pass.projects {
		rec := snapshotFromScore(p.ID, pass.scores[p.ID], pass.asOf)
		if _, err := a.history.RecordSnapshot(rec); err != nil {
			contract.LogWarn(fmt.Sprintf("snapshot recording for %s", p.ID), err)
		}
	}
}

// snapshotFromScore flattens a health score into its storage row.
func snapshotFromScore(projectID string, score schema.HealthScore, at time.Time) schema.HealthSnapshotRecord {
	rec := schema.HealthSnapshotRecord{
		ProjectID:    projectID,
		Overall:      score.Overall,
		Category:     string(score.Category),
		SnapshotTime: at,
	}
	for _, c := range score.Components {
		switch c.Name {
		case schema.TimelineComponent:
			rec.Timeline = c.Raw
		case schema.ActivityComponent:
			rec.Activity = c.Raw
		case schema.BlockersComponent:
			rec.Blockers = c.Raw
		case schema.DependenciesComponent:
			rec.Dependencies = c.Raw
		}
	}
	return rec
}
