package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/markward/mdlint/pkg/config"
	"github.com/markward/mdlint/pkg/lint"
	"github.com/markward/mdlint/pkg/mdast"
	"github.com/markward/mdlint/pkg/toolexec"
)

// ExternalToolCheckRule runs a registered external tool (ruff, prettier,
// shellcheck, ...) against each fenced code block whose declared language
// maps to one, and reports a failing exit code or timeout per the
// configured on_error policy.
type ExternalToolCheckRule struct {
	lint.BaseRule

	// Executor runs the registered tools; overridable in tests.
	Executor *toolexec.Executor
}

// NewExternalToolCheckRule creates the external-tool-check rule, using the
// package-level default tool registry.
func NewExternalToolCheckRule() *ExternalToolCheckRule {
	return &ExternalToolCheckRule{
		BaseRule: lint.NewBaseRule(
			"MDL010",
			"external-tool-check",
			"Fenced code blocks should pass their configured external linter/formatter",
			[]string{"code", "external"},
			false,
		),
		Executor: toolexec.NewExecutor(toolexec.DefaultRegistry),
	}
}

// ShouldSkip avoids spawning a process for every lint run unless external
// tool checking is explicitly enabled.
func (r *ExternalToolCheckRule) ShouldSkip(ctx *lint.RuleContext) bool {
	return ctx.Config == nil || !ctx.Config.ExternalTools.Enabled
}

// Apply runs the configured tool against each code block whose language has
// a mapping, consulting the per-language (falling back to default) on_error
// policy for how to surface a failure.
func (r *ExternalToolCheckRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	toolCfg := ctx.Config.ExternalTools
	timeout := time.Duration(toolCfg.TimeoutMS) * time.Millisecond

	var diags []lint.Diagnostic

	for _, cb := range ctx.CodeBlocks() {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		if lint.IsIndentedCodeBlock(cb) {
			continue
		}

		lang := firstInfoWord(lint.CodeBlockInfo(cb))
		if lang == "" {
			continue
		}

		toolID, ok := toolCfg.LanguageTools[lang]
		if !ok {
			continue
		}
		if _, ok := r.Executor.Registry.Get(toolID); !ok {
			continue
		}

		content := codeBlockRawContent(ctx.File, cb)
		if len(content) == 0 {
			continue
		}

		result, err := r.Executor.Run(ctx.Ctx, toolexec.Request{
			ToolID:  toolID,
			Mode:    toolexec.ModeLint,
			Input:   string(content),
			Timeout: timeout,
		})
		_ = result
		if err == nil {
			continue
		}

		policy := toolCfg.OnError
		if p, ok := toolCfg.LanguageOnError[lang]; ok {
			policy = p
		}
		if policy == config.ToolErrorSkip {
			continue
		}

		severity := config.SeverityWarning
		if policy == config.ToolErrorFail {
			severity = config.SeverityError
		}

		diag := lint.NewDiagnostic(r.ID(), cb,
			fmt.Sprintf("%s: %s", toolID, err.Error())).
			WithSeverity(severity).
			WithSuggestion(fmt.Sprintf("Fix the %s block so it passes `%s`", lang, toolID)).
			Build()
		diags = append(diags, diag)
	}

	return diags, nil
}

// firstInfoWord returns the first whitespace-separated word of a fenced
// code block's info string, lowercased.
func firstInfoWord(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// codeBlockRawContent returns the raw source bytes of a fenced code block's
// body (excluding the opening/closing fence lines).
func codeBlockRawContent(file *mdast.FileSnapshot, cb *mdast.Node) []byte {
	pos := cb.SourcePosition()
	if !pos.IsValid() {
		return nil
	}

	startLine := pos.StartLine
	endLine := pos.EndLine - 1

	if startLine > endLine || startLine < 1 || endLine > len(file.Lines) {
		return nil
	}

	startOffset := file.Lines[startLine-1].StartOffset
	endOffset := file.Lines[endLine-1].NewlineStart

	if endOffset > len(file.Content) {
		endOffset = len(file.Content)
	}

	return file.Content[startOffset:endOffset]
}
