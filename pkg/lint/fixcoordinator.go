package lint

import (
	"bytes"
	"context"
	"fmt"

	"github.com/markward/mdlint/pkg/config"
	"github.com/markward/mdlint/pkg/fix"
)

// DefaultMaxCoordinatorIterations bounds how many passes the fix
// coordinator makes over a document before giving up and returning
// whatever state it reached.
const DefaultMaxCoordinatorIterations = 10

// ruleDependencies lists, for each rule whose fix must run before some
// other rule's fix can see correct input, the rule IDs that depend on it.
// The key is the prerequisite; the values are the dependents that must
// run after it. For example MD010 (hard tabs) converts tabs to spaces
// first, which shifts list-item and indentation columns that MD007/MD005
// then rewrite; running MD007/MD005 before MD010 would have them work
// against stale tab-based columns.
//
//nolint:gochecknoglobals // Read-only dependency table.
var ruleDependencies = map[string][]string{
	"MD010": {"MD007", "MD005"},
	"MD013": {"MD009", "MD012"},
	"MD004": {"MD007"},
	"MD022": {"MD012"},
	"MD023": {"MD012"},
}

// hasDependents reports whether any other rule depends on id's fix having
// already been applied.
func hasDependents(id string) bool {
	return len(ruleDependencies[id]) > 0
}

// optimalOrder returns ruleIDs arranged so that every rule appears before
// the rules that depend on it, restricted to dependents also present in
// ruleIDs. Cycles are tolerated: a rule reached while already being
// visited is treated as having no further unmet dependents rather than
// rejected, and its ID is recorded in cycles so callers can surface it.
func optimalOrder(ruleIDs []string) (order []string, cycles []string) {
	present := make(map[string]bool, len(ruleIDs))
	for _, id := range ruleIDs {
		present[id] = true
	}

	visited := make(map[string]bool, len(ruleIDs))
	visiting := make(map[string]bool, len(ruleIDs))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		if visiting[id] {
			cycles = append(cycles, id)
			return
		}
		visiting[id] = true
		for _, dep := range ruleDependencies[id] {
			if present[dep] {
				visit(dep)
			}
		}
		visiting[id] = false
		visited[id] = true
		// Post-order: a rule is appended only after every rule that
		// depends on it has already been appended. Reversing below turns
		// this dependents-first order into the desired prerequisite-first
		// order.
		order = append(order, id)
	}

	for _, id := range ruleIDs {
		visit(id)
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, cycles
}

// FixCoordinator applies fixes from multiple rules in dependency order,
// re-linting between rule applications so each rule sees the effect of
// every fix applied before it, and restarting the pass whenever a rule
// that other rules depend on changes the content.
type FixCoordinator struct {
	Engine        *Engine
	MaxIterations int
}

// NewFixCoordinator creates a FixCoordinator backed by engine, using
// DefaultMaxCoordinatorIterations.
func NewFixCoordinator(engine *Engine) *FixCoordinator {
	return &FixCoordinator{
		Engine:        engine,
		MaxIterations: DefaultMaxCoordinatorIterations,
	}
}

// FixCoordinatorResult reports the outcome of an Apply run.
type FixCoordinatorResult struct {
	// Content is the final document content.
	Content []byte

	// Iterations is the number of passes over the rule order performed.
	Iterations int

	// RulesApplied is the number of rules whose fixes changed the content.
	RulesApplied int

	// EditsApplied is the total number of text edits applied across all
	// rules and iterations.
	EditsApplied int

	// CyclesBroken lists rule IDs whose dependency cycle was broken rather
	// than rejected, if any.
	CyclesBroken []string
}

// Apply runs the dependency-ordered iterative fix loop over content for
// the given rule IDs (normally every fixable, enabled rule for cfg). Each
// iteration walks the order, re-linting the current content before each
// unprocessed rule, applying that rule's fix edits if any, and marking it
// processed; when a rule that has dependents produces edits, the iteration
// ends and the next one starts again from the beginning of the order so
// those dependents see the fresh state. The loop stops when an iteration
// applies no fixes, every rule has been processed, or MaxIterations is
// reached.
func (fc *FixCoordinator) Apply(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	ruleIDs []string,
) (*FixCoordinatorResult, error) {
	order, cycles := optimalOrder(ruleIDs)

	result := &FixCoordinatorResult{
		Content:      content,
		CyclesBroken: cycles,
	}

	processed := make(map[string]bool, len(order))
	maxIterations := fc.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxCoordinatorIterations
	}

	for iter := 0; iter < maxIterations; iter++ {
		result.Iterations++

		if allProcessed(order, processed) {
			return result, nil
		}

		changed, restart, err := fc.runIteration(ctx, path, cfg, order, processed, result)
		if err != nil {
			return nil, err
		}
		if !changed && !restart {
			return result, nil
		}
	}

	return result, nil
}

// runIteration walks order once, applying each unprocessed rule's fix (if
// any) in turn and stopping early after a rule that has dependents produced
// edits, updating result.Content in place. It returns whether any edit
// was applied and whether a dependent-bearing rule fired (the caller
// should restart the iteration in that case, which happens naturally by
// returning and letting Apply's outer loop call runIteration again).
func (fc *FixCoordinator) runIteration(
	ctx context.Context,
	path string,
	cfg *config.Config,
	order []string,
	processed map[string]bool,
	result *FixCoordinatorResult,
) (changed bool, restart bool, err error) {
	for _, id := range order {
		if processed[id] {
			continue
		}

		select {
		case <-ctx.Done():
			return changed, restart, fmt.Errorf("fix coordinator cancelled: %w", ctx.Err())
		default:
		}

		fileResult, lintErr := fc.Engine.LintFile(ctx, path, result.Content, cfg)
		if lintErr != nil {
			return changed, restart, fmt.Errorf("relint before fixing %s: %w", id, lintErr)
		}

		var edits []fix.TextEdit
		for _, d := range fileResult.Diagnostics {
			if d.RuleID == id {
				edits = append(edits, d.FixEdits...)
			}
		}

		processed[id] = true

		if len(edits) == 0 {
			continue
		}

		newContent := fix.ApplyEdits(result.Content, edits)
		if !bytes.Equal(newContent, result.Content) {
			result.Content = newContent
			result.EditsApplied += len(edits)
			result.RulesApplied++
			changed = true
		}

		if hasDependents(id) {
			return changed, true, nil
		}
	}

	return changed, false, nil
}

func allProcessed(order []string, processed map[string]bool) bool {
	for _, id := range order {
		if !processed[id] {
			return false
		}
	}
	return true
}
