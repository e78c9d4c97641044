package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/markward/mdlint/pkg/config"
	"github.com/markward/mdlint/pkg/fix"
	"github.com/markward/mdlint/pkg/lint"
	"github.com/markward/mdlint/pkg/mdast"
)

// LinkDestinationWhitespaceRule flags inline link/image destinations with
// leading or trailing whitespace inside the parentheses, a common
// copy-paste error that CommonMark parsers silently strip rather than
// reject, so it often goes unnoticed until the link breaks.
type LinkDestinationWhitespaceRule struct {
	lint.BaseRule
}

// NewLinkDestinationWhitespaceRule creates the MD062 rule.
func NewLinkDestinationWhitespaceRule() *LinkDestinationWhitespaceRule {
	return &LinkDestinationWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"MD062",
			"link-destination-whitespace",
			"Link and image destinations should not have leading or trailing whitespace",
			[]string{"links", "images", "whitespace"},
			true,
		),
	}
}

// linkDestPattern matches an inline link/image destination: "](" followed
// by the parenthesized content up to the matching ")". It does not handle
// nested parens in the destination itself (rare, and such destinations
// must be angle-bracketed per CommonMark).
var linkDestPattern = regexp.MustCompile(`!?\[[^\]]*\]\(([^)]*)\)`)

// Apply scans raw lines (destinations are syntax, not content, so the AST
// link node's Destination is already trimmed by the parser) for
// parenthesized destinations with leading/trailing whitespace.
func (r *LinkDestinationWhitespaceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	filter := lint.NewLineFilter().SkipCodeBlocks().SkipFrontMatter()
	lines := filter.Iterate(ctx)

	var diags []lint.Diagnostic
	for _, fl := range lines {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		line := ctx.File.Lines[fl.LineNum-1]
		matches := linkDestPattern.FindAllStringSubmatchIndex(fl.Content, -1)
		for _, m := range matches {
			destStart, destEnd := m[2], m[3]
			dest := fl.Content[destStart:destEnd]
			issue := destWhitespaceIssue(dest)
			if issue == "" {
				continue
			}

			isImage := strings.HasPrefix(fl.Content[m[0]:m[1]], "!")
			element := "Link"
			if isImage {
				element = "Image"
			}

			builder := fix.NewEditBuilder()
			builder.ReplaceRange(
				line.StartOffset+destStart,
				line.StartOffset+destEnd,
				strings.TrimSpace(dest),
			)

			pos := mdast.SourcePosition{
				StartLine:   fl.LineNum,
				StartColumn: destStart + 1,
				EndLine:     fl.LineNum,
				EndColumn:   destEnd + 1,
			}

			diag := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				fmt.Sprintf("%s destination has %s whitespace", element, issue)).
				WithSeverity(config.SeverityWarning).
				WithSuggestion("Remove whitespace around the destination").
				WithFix(builder).
				Build()
			diags = append(diags, diag)
		}
	}

	return diags, nil
}

// destWhitespaceIssue classifies leading/trailing whitespace in a raw
// destination string, stopping at the first quote so a title's own
// internal spacing isn't misread as destination whitespace. When a title
// is present, the single whitespace run separating destination and title
// is mandatory CommonMark syntax, not a defect, so trailing whitespace is
// only checked when there is no title.
func destWhitespaceIssue(dest string) string {
	if dest == "" {
		return ""
	}
	urlPart := dest
	hasTitle := false
	if idx := strings.IndexAny(dest, `"'`); idx >= 0 {
		urlPart = strings.TrimRight(dest[:idx], " \t")
		hasTitle = true
	}

	leading := dest[0] == ' ' || dest[0] == '\t'
	trailing := !hasTitle && len(urlPart) > 0 && (urlPart[len(urlPart)-1] == ' ' || urlPart[len(urlPart)-1] == '\t')

	switch {
	case leading && trailing:
		return "leading and trailing"
	case leading:
		return "leading"
	case trailing:
		return "trailing"
	default:
		return ""
	}
}
