// Package toolexec runs external formatters and linters (ruff, prettier,
// shellcheck, and similar) against embedded code blocks, as a leaf subsystem
// reached through a stable interface: everything upstream only ever asks for
// a tool by string ID and gets back stdout/stderr/exit code or a timeout.
package toolexec

import "sync"

// Tool describes how to invoke an external formatter/linter: its command
// line, whether it reads the block body from stdin or a temp file, and the
// extra arguments used for lint vs. format invocations.
type Tool struct {
	// ID is the registry key, e.g. "ruff:check", "prettier:json", "shellcheck".
	ID string

	// Command is the argv, e.g. []string{"ruff", "check", "-"}.
	Command []string

	// UsesStdin is true when the tool reads the code block body from stdin.
	UsesStdin bool

	// UsesStdout is true when the tool writes formatted/fixed output to
	// stdout (as opposed to only diagnostics).
	UsesStdout bool

	// LintArgs are appended to Command for a lint (check-only) invocation.
	LintArgs []string

	// FormatArgs are appended to Command for a format (rewrite) invocation.
	FormatArgs []string
}

// Registry maps tool IDs to their Tool definitions. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds or replaces a tool definition.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.ID] = t
}

// Get returns the tool definition for id, and whether it was found.
func (r *Registry) Get(id string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[id]
	return t, ok
}

// IDs returns all registered tool IDs.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tools))
	for id := range r.tools {
		ids = append(ids, id)
	}
	return ids
}

// DefaultRegistry holds the built-in tool definitions, registered at init.
var DefaultRegistry = NewRegistry()

//nolint:gochecknoinits // init is intentional for automatic tool registration
func init() {
	RegisterBuiltins(DefaultRegistry)
}

// RegisterBuiltins registers the well-known external tools referenced by
// fenced-code-block language identifiers.
func RegisterBuiltins(r *Registry) {
	r.Register(Tool{
		ID:         "ruff:check",
		Command:    []string{"ruff"},
		UsesStdin:  true,
		UsesStdout: true,
		LintArgs:   []string{"check", "--quiet", "-"},
		FormatArgs: []string{"format", "--quiet", "-"},
	})
	r.Register(Tool{
		ID:         "prettier:json",
		Command:    []string{"prettier"},
		UsesStdin:  true,
		UsesStdout: true,
		LintArgs:   []string{"--parser", "json", "--check"},
		FormatArgs: []string{"--parser", "json"},
	})
	r.Register(Tool{
		ID:         "prettier:yaml",
		Command:    []string{"prettier"},
		UsesStdin:  true,
		UsesStdout: true,
		LintArgs:   []string{"--parser", "yaml", "--check"},
		FormatArgs: []string{"--parser", "yaml"},
	})
	r.Register(Tool{
		ID:        "shellcheck",
		Command:   []string{"shellcheck"},
		UsesStdin: true,
		LintArgs:  []string{"-"},
	})
	r.Register(Tool{
		ID:         "gofmt",
		Command:    []string{"gofmt"},
		UsesStdin:  true,
		UsesStdout: true,
		LintArgs:   []string{"-l"},
		FormatArgs: nil,
	})
}
