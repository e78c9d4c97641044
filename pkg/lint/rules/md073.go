package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/markward/mdlint/pkg/config"
	"github.com/markward/mdlint/pkg/fix"
	"github.com/markward/mdlint/pkg/lint"
	"github.com/markward/mdlint/pkg/lint/refs"
	"github.com/markward/mdlint/pkg/mdast"
)

// TOCValidationRule validates that a generated table of contents, delimited
// by "<!-- toc -->" ... "<!-- tocstop -->" markers, matches the document's
// actual headings: every heading has an entry, every entry points to a
// real heading, and the anchors resolve.
type TOCValidationRule struct {
	lint.BaseRule
}

// NewTOCValidationRule creates the MD073 rule.
func NewTOCValidationRule() *TOCValidationRule {
	return &TOCValidationRule{
		BaseRule: lint.NewBaseRule(
			"MD073",
			"toc-validation",
			"Table of contents entries should match the document's headings",
			[]string{"toc", "links"},
			true, // Auto-fixable: regenerates the TOC content between markers.
		),
	}
}

var (
	tocStartMarker  = regexp.MustCompile(`(?i)<!--\s*toc\s*-->`)
	tocStopMarker   = regexp.MustCompile(`(?i)<!--\s*(?:tocstop|/toc)\s*-->`)
	tocEntryPattern = regexp.MustCompile(`^\s*[-*]\s+\[([^\]]+)\]\(#([^)]+)\)`)
)

type tocEntry struct {
	lineNum int
	text    string
	anchor  string
}

// expectedTOCEntry is a heading that should be represented in the TOC,
// in document order.
type expectedTOCEntry struct {
	level  int
	text   string
	anchor string
}

// Apply locates a marker-delimited TOC region, parses its entries, and
// reports stale entries (no matching heading) and headings missing an
// entry. When any mismatch is found, the first diagnostic carries a fix
// that regenerates the full entry list between the markers.
func (r *TOCValidationRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil || ctx.Root == nil {
		return nil, nil
	}

	startLine, endLine, ok := findTOCRegion(ctx.File)
	if !ok {
		return nil, nil
	}

	var entries []tocEntry
	for lineNum := startLine; lineNum <= endLine; lineNum++ {
		content := string(lint.LineContent(ctx.File, lineNum))
		m := tocEntryPattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		entries = append(entries, tocEntry{lineNum: lineNum, text: m[1], anchor: m[2]})
	}

	minLevel := ctx.OptionInt("min_level", 2)
	maxLevel := ctx.OptionInt("max_level", 4)

	anchors := refs.NewAnchorMap()
	headingByAnchor := make(map[string]*mdast.Node)
	var expected []expectedTOCEntry
	for _, h := range lint.Headings(ctx.Root) {
		text := lint.HeadingText(h)
		id := anchors.AddFromHeading(text, h.SourcePosition())
		headingByAnchor[id] = h

		level := lint.HeadingLevel(h)
		if level < minLevel || level > maxLevel {
			continue
		}
		expected = append(expected, expectedTOCEntry{level: level, text: text, anchor: id})
	}

	var builders []*lint.DiagnosticBuilder

	for _, e := range entries {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if _, ok := headingByAnchor[e.anchor]; ok {
			continue
		}
		pos := mdast.SourcePosition{StartLine: e.lineNum, StartColumn: 1, EndLine: e.lineNum, EndColumn: 1}
		builders = append(builders, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("TOC entry %q links to #%s, which has no matching heading", e.text, e.anchor)).
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Remove the stale TOC entry or rename the heading to match"))
	}

	tocAnchors := make(map[string]bool, len(entries))
	for _, e := range entries {
		tocAnchors[e.anchor] = true
	}
	for _, exp := range expected {
		if tocAnchors[exp.anchor] {
			continue
		}
		pos := headingByAnchor[exp.anchor].SourcePosition()
		builders = append(builders, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("Heading %q has no table of contents entry", exp.text)).
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Add a TOC entry for this heading, or regenerate the TOC"))
	}

	if len(builders) == 0 {
		return nil, nil
	}

	// Attach the whole-region regeneration fix to a single diagnostic only:
	// the coordinator gathers FixEdits from every diagnostic for this rule,
	// and every builder above would otherwise point at the same byte range.
	if fixer := r.buildTOCFix(ctx.File, startLine, endLine, expected); fixer != nil {
		builders[0] = builders[0].WithFix(fixer)
	}

	diags := make([]lint.Diagnostic, len(builders))
	for i, b := range builders {
		diags[i] = b.Build()
	}

	return diags, nil
}

// buildTOCFix replaces the TOC content lines (strictly between the markers)
// with a freshly generated nested bullet list built from expected, indented
// two spaces per heading level above the shallowest included level -
// matching markdownlint-style TOC generators.
func (r *TOCValidationRule) buildTOCFix(
	file *mdast.FileSnapshot,
	startLine, endLine int,
	expected []expectedTOCEntry,
) *fix.EditBuilder {
	if len(expected) == 0 {
		return nil
	}
	if startLine < 1 || endLine > len(file.Lines) || startLine > endLine {
		return nil
	}

	baseLevel := expected[0].level
	for _, e := range expected {
		if e.level < baseLevel {
			baseLevel = e.level
		}
	}

	var sb strings.Builder
	for _, e := range expected {
		indent := strings.Repeat("  ", e.level-baseLevel)
		sb.WriteString(indent)
		sb.WriteString("- [")
		sb.WriteString(e.text)
		sb.WriteString("](#")
		sb.WriteString(e.anchor)
		sb.WriteString(")\n")
	}

	startOffset := file.Lines[startLine-1].StartOffset
	endOffset := file.Lines[endLine-1].EndOffset

	builder := fix.NewEditBuilder()
	builder.ReplaceRange(startOffset, endOffset, sb.String())
	return builder
}

// findTOCRegion returns the 1-based line range strictly between a
// "<!-- toc -->" marker and the next "<!-- tocstop -->"/"<!-- /toc -->"
// marker.
func findTOCRegion(file *mdast.FileSnapshot) (startLine, endLine int, ok bool) {
	start := -1
	for lineNum := 1; lineNum <= len(file.Lines); lineNum++ {
		content := string(lint.LineContent(file, lineNum))
		if start == -1 {
			if tocStartMarker.MatchString(content) {
				start = lineNum + 1
			}
			continue
		}
		if tocStopMarker.MatchString(content) {
			return start, lineNum - 1, true
		}
	}
	return 0, 0, false
}
