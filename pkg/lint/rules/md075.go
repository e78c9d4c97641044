package rules

import (
	"fmt"

	"github.com/markward/mdlint/pkg/config"
	"github.com/markward/mdlint/pkg/lint"
	"github.com/markward/mdlint/pkg/mdast"
)

// OrphanedTableRowsRule flags runs of pipe-delimited lines that look like
// table rows but are never introduced by a delimiter row (| --- | --- |),
// so no parser will ever render them as a table.
type OrphanedTableRowsRule struct {
	lint.BaseRule
}

// NewOrphanedTableRowsRule creates the MD075 rule.
func NewOrphanedTableRowsRule() *OrphanedTableRowsRule {
	return &OrphanedTableRowsRule{
		BaseRule: lint.NewBaseRule(
			"MD075",
			"orphaned-table-rows",
			"Pipe-delimited rows should be part of a recognized table",
			[]string{"tables"},
			false,
		),
	}
}

// Apply scans filtered lines for runs of table-row-shaped content that are
// never followed by a delimiter row, which would otherwise render as
// literal paragraph text rather than a table.
func (r *OrphanedTableRowsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	filter := lint.NewLineFilter().SkipCodeBlocks().SkipFrontMatter().
		SkipHTMLBlocks().SkipHTMLComments().SkipAllExtensionBlocks()
	lines := filter.Iterate(ctx)

	var diags []lint.Diagnostic
	i := 0
	for i < len(lines) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		content := []byte(lines[i].Content)
		if !isTableRow(content) {
			i++
			continue
		}

		// A real table has a delimiter row immediately after its header.
		if i+1 < len(lines) && isTableDelimiterRow([]byte(lines[i+1].Content)) {
			// Skip past the whole recognized table.
			i += 2
			for i < len(lines) && isTableRow([]byte(lines[i].Content)) {
				i++
			}
			continue
		}

		// Collect the run of consecutive table-row-shaped lines with no
		// delimiter row: this is the orphaned group.
		start := i
		for i < len(lines) && isTableRow([]byte(lines[i].Content)) {
			i++
		}

		startLine := lines[start].LineNum
		endLine := lines[i-1].LineNum

		pos := mdast.SourcePosition{
			StartLine:   startLine,
			StartColumn: 1,
			EndLine:     endLine,
			EndColumn:   len(lines[i-1].Content) + 1,
		}

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			"Pipe-delimited rows without a table header/delimiter row render as plain text").
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Add a header row and a |---|---| delimiter row, or remove the pipes").
			Build()
		diags = append(diags, diag)
	}

	return diags, nil
}
