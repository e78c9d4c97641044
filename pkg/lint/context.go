package lint

import (
	"context"

	"github.com/markward/mdlint/pkg/config"
	"github.com/markward/mdlint/pkg/fix"
	"github.com/markward/mdlint/pkg/lint/refs"
	"github.com/markward/mdlint/pkg/mdast"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// Design note: RuleContext stores context.Context as a field (Ctx) rather than
// passing it as a method parameter. This is acceptable because RuleContext is
// a short-lived parameter object created per-rule-invocation, not a long-lived
// struct. This design simplifies the Rule interface (single Apply method) while
// still providing cancellation support via the Cancelled() helper.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *mdast.FileSnapshot

	// Root is the AST root node (convenience alias for File.Root).
	Root *mdast.Node

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Builder accumulates text edits for auto-fix.
	Builder *fix.EditBuilder

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	// refCtx is the cached reference context, lazily initialized.
	refCtx *refs.Context

	// cache is the per-file node cache, lazily built on first use.
	cache *NodeCache
}

// nodeCache returns the per-file NodeCache, building it from Root on first
// access. Every Rule sharing this RuleContext reuses the same cache, so the
// AST is walked once per file regardless of how many rules ask for
// Headings(), CodeBlocks(), and similar.
func (rc *RuleContext) nodeCache() *NodeCache {
	if rc.cache == nil {
		rc.cache = newNodeCache()
		rc.cache.build(rc.Root)
	}
	return rc.cache
}

// Headings returns all heading nodes in the document, cached across rules.
func (rc *RuleContext) Headings() []*mdast.Node { return rc.nodeCache().Headings() }

// Lists returns all list nodes in the document, cached across rules.
func (rc *RuleContext) Lists() []*mdast.Node { return rc.nodeCache().Lists() }

// ListItems returns all list item nodes in the document, cached across rules.
func (rc *RuleContext) ListItems() []*mdast.Node { return rc.nodeCache().ListItems() }

// CodeBlocks returns all code block nodes in the document, cached across rules.
func (rc *RuleContext) CodeBlocks() []*mdast.Node { return rc.nodeCache().CodeBlocks() }

// Paragraphs returns all paragraph nodes in the document, cached across rules.
func (rc *RuleContext) Paragraphs() []*mdast.Node { return rc.nodeCache().Paragraphs() }

// Blockquotes returns all blockquote nodes in the document, cached across rules.
func (rc *RuleContext) Blockquotes() []*mdast.Node { return rc.nodeCache().Blockquotes() }

// Tables returns all table nodes in the document, cached across rules.
func (rc *RuleContext) Tables() []*mdast.Node { return rc.nodeCache().Tables() }

// ThematicBreaks returns all thematic break nodes in the document, cached across rules.
func (rc *RuleContext) ThematicBreaks() []*mdast.Node { return rc.nodeCache().ThematicBreaks() }

// HTMLBlocks returns all HTML block nodes in the document, cached across rules.
func (rc *RuleContext) HTMLBlocks() []*mdast.Node { return rc.nodeCache().HTMLBlocks() }

// CodeSpans returns all inline code span nodes in the document, cached across rules.
func (rc *RuleContext) CodeSpans() []*mdast.Node { return rc.nodeCache().CodeSpans() }

// Links returns all link nodes in the document, cached across rules.
func (rc *RuleContext) Links() []*mdast.Node { return rc.nodeCache().Links() }

// Images returns all image nodes in the document, cached across rules.
func (rc *RuleContext) Images() []*mdast.Node { return rc.nodeCache().Images() }

// HTMLInlines returns all inline HTML nodes in the document, cached across rules.
func (rc *RuleContext) HTMLInlines() []*mdast.Node { return rc.nodeCache().HTMLInlines() }

// Emphasis returns all emphasis nodes in the document, cached across rules.
func (rc *RuleContext) Emphasis() []*mdast.Node { return rc.nodeCache().Emphasis() }

// Strong returns all strong-emphasis nodes in the document, cached across rules.
func (rc *RuleContext) Strong() []*mdast.Node { return rc.nodeCache().Strong() }

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []interface{} from YAML/JSON parsing
	if iface, ok := v.([]interface{}); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// RefContext returns the reference context for this file, building it lazily.
// The reference context contains all link/image usages, reference definitions,
// and document anchors needed by reference-tracking rules (MD051-MD054).
func (rc *RuleContext) RefContext() *refs.Context {
	if rc.refCtx == nil {
		rc.refCtx = refs.Collect(rc.Root, rc.File)
	}
	return rc.refCtx
}
