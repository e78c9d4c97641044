package skipregion

import (
	"regexp"
	"strings"
)

var atxHeadingPattern = regexp.MustCompile(`^(#{1,6})(?:\s+(.*?))?\s*#*\s*$`)

var customIDPattern = regexp.MustCompile(`\{#([A-Za-z0-9_-]+)\}\s*$`)

// detectHeadings populates Heading for ATX and setext heading lines. Setext
// requires a one-line lookahead at the underline, so headings are detected
// in a dedicated pass rather than inline with the basic per-line scan.
func detectHeadings(st *scanState) {
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) {
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")

		if m := atxHeadingPattern.FindStringSubmatch(trimmed); m != nil && st.flags[i].Indent < 4 {
			level := len(m[1])
			text := strings.TrimSpace(m[2])
			info := &HeadingInfo{Level: level, Text: text}
			if cm := customIDPattern.FindStringSubmatch(text); cm != nil {
				info.CustomID = cm[1]
				info.Text = strings.TrimSpace(customIDPattern.ReplaceAllString(text, ""))
			}
			st.flags[i].Heading = info
			continue
		}

		if i+1 < len(st.lines) && !st.flags[i].IsBlank {
			level := setextLevel(st.lines[i+1])
			if level > 0 {
				st.flags[i].Heading = &HeadingInfo{Level: level, Text: strings.TrimSpace(line)}
			}
		}
	}
}

func setextLevel(underline string) int {
	trimmed := strings.TrimSpace(underline)
	if trimmed == "" {
		return 0
	}
	switch trimmed[0] {
	case '=':
		if strings.Count(trimmed, "=") == len(trimmed) {
			return 1
		}
	case '-':
		if strings.Count(trimmed, "-") == len(trimmed) && len(trimmed) > 0 {
			return 2
		}
	}
	return 0
}

// inFenceFlag reports whether line i fell inside a code fence detected by
// detectFences. It is a scanner-internal approximation used to keep later
// detectors from firing inside fenced code; InCodeBlock itself is merged in
// by the caller from the AST.
func (st *scanState) inFenceFlag(i int) bool {
	return i < len(st.fenceLines) && st.fenceLines[i]
}
