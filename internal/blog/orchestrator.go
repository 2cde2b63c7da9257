package blog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kataras/golog"

	"github.com/draftforge/draftforge/internal/agents"
)

// ErrJobNotClaimable is returned when Run finds the job outside pending:
// either another run already claimed it or it has reached a terminal state.
// The record is left untouched in that case.
var ErrJobNotClaimable = errors.New("generation job is not claimable")

// Orchestrator drives one GenerationJob from pending to a terminal state:
// search -> research -> write, strictly sequential, with a durable progress
// write after every stage so pollers see the pipeline advance. It never
// retries; any stage or persistence error ends the job in failed and is
// returned to the caller.
type Orchestrator struct {
	repo     *Repo
	search   agents.SearchAgent
	research agents.ResearchAgent
	writer   agents.WriterAgent
	logger   *golog.Logger
}

func NewOrchestrator(repo *Repo, search agents.SearchAgent, research agents.ResearchAgent, writer agents.WriterAgent, logger *golog.Logger) *Orchestrator {
	if logger == nil {
		logger = golog.Default
	}
	return &Orchestrator{
		repo:     repo,
		search:   search,
		research: research,
		writer:   writer,
		logger:   logger,
	}
}

// Run executes the full pipeline for one blog. Concurrent runs for different
// blogs are independent; a second run for the same blog loses the claim and
// returns ErrJobNotClaimable without writing anything.
func (o *Orchestrator) Run(ctx context.Context, blogID, topic string) error {
	runStart := time.Now()

	claimed, err := o.repo.ClaimJob(ctx, blogID)
	if err != nil {
		return o.fail(ctx, blogID, err)
	}
	if !claimed {
		o.logger.Warnf("job %s not claimable, skipping", blogID)
		return ErrJobNotClaimable
	}

	// search stage
	searchStart := time.Now()
	results, err := o.search.Search(ctx, topic)
	if err != nil {
		return o.fail(ctx, blogID, err)
	}
	rawResults, err := json.Marshal(results)
	if err != nil {
		return o.fail(ctx, blogID, err)
	}
	if err := o.repo.UpdateJob(ctx, blogID, map[string]any{
		"search_results":     string(rawResults),
		"search_complete":    true,
		"search_started_at":  searchStart,
		"search_duration_ms": time.Since(searchStart).Milliseconds(),
	}); err != nil {
		return o.fail(ctx, blogID, err)
	}

	// research stage
	researchStart := time.Now()
	if err := o.repo.UpdateJob(ctx, blogID, map[string]any{
		"status":              JobResearching,
		"current_step":        StepResearching,
		"research_started_at": researchStart,
	}); err != nil {
		return o.fail(ctx, blogID, err)
	}
	research, err := o.research.Research(ctx, topic, results)
	if err != nil {
		return o.fail(ctx, blogID, err)
	}
	rawResearch, err := json.Marshal(research)
	if err != nil {
		return o.fail(ctx, blogID, err)
	}
	if err := o.repo.UpdateJob(ctx, blogID, map[string]any{
		"research_output":      string(rawResearch),
		"research_complete":    true,
		"research_duration_ms": time.Since(researchStart).Milliseconds(),
	}); err != nil {
		return o.fail(ctx, blogID, err)
	}

	// write stage
	writeStart := time.Now()
	if err := o.repo.UpdateJob(ctx, blogID, map[string]any{
		"status":           JobWriting,
		"current_step":     StepWriting,
		"write_started_at": writeStart,
	}); err != nil {
		return o.fail(ctx, blogID, err)
	}
	draft, err := o.writer.Write(ctx, topic, results, research)
	if err != nil {
		return o.fail(ctx, blogID, err)
	}
	if err := o.repo.UpdateJob(ctx, blogID, map[string]any{
		"writer_complete":   true,
		"write_duration_ms": time.Since(writeStart).Milliseconds(),
	}); err != nil {
		return o.fail(ctx, blogID, err)
	}

	// finalize: blog fields + citations + completed, one transaction
	total := time.Since(runStart)
	if err := o.repo.FinalizeGeneration(ctx, blogID, draft, map[string]any{
		"completed_at":      time.Now(),
		"total_duration_ms": total.Milliseconds(),
	}); err != nil {
		return o.fail(ctx, blogID, err)
	}

	o.logger.Infof("job %s completed citations=%d cost=%s", blogID, len(draft.Citations), total)
	return nil
}

// fail records the terminal failure and hands the original error back to the
// caller, which only logs it. A marking error cannot mask the stage error.
func (o *Orchestrator) fail(ctx context.Context, blogID string, cause error) error {
	if err := o.repo.MarkJobFailed(ctx, blogID, cause.Error()); err != nil {
		o.logger.Errorf("mark job %s failed: %v (cause: %v)", blogID, err, cause)
	}
	return cause
}
