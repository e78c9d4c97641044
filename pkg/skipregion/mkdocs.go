package skipregion

import (
	"regexp"
	"strings"
)

var mkdocstringsPattern = regexp.MustCompile(`^:::\s*\S`)
var admonitionPattern = regexp.MustCompile(`^(!{3}|\?{3}\+?)\s+\S`)
var contentTabPattern = regexp.MustCompile(`^===\s*"`)
var definitionMarkerPattern = regexp.MustCompile(`^(\s*):(\s+)\S`)

// detectMkDocs handles the block-level extensions MkDocs/mkdocstrings,
// pymdown-extensions admonitions and content tabs, and simple definition
// lists (PyMdown's "Definition Lists" extension) layer on top of plain
// CommonMark. All are indent-scoped: a block continues while subsequent
// lines are indented at least as far as the block's own first line, and
// ends at the first blank-then-unindented line or document end.
func detectMkDocs(st *scanState) {
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		indent := st.flags[i].Indent

		if st.mkdocstringsIndent >= 0 {
			if st.flags[i].IsBlank || indent > st.mkdocstringsIndent {
				st.flags[i].InMkdocstrings = true
				if !st.flags[i].IsBlank {
					continue
				}
			} else {
				st.mkdocstringsIndent = -1
			}
		}
		if st.admonitionIndent >= 0 {
			if st.flags[i].IsBlank || indent > st.admonitionIndent {
				st.flags[i].InAdmonition = true
				if !st.flags[i].IsBlank {
					continue
				}
			} else {
				st.admonitionIndent = -1
			}
		}
		if st.contentTabIndent >= 0 {
			if st.flags[i].IsBlank || indent > st.contentTabIndent {
				st.flags[i].InContentTab = true
				if !st.flags[i].IsBlank {
					continue
				}
			} else {
				st.contentTabIndent = -1
			}
		}

		if mkdocstringsPattern.MatchString(trimmed) {
			st.mkdocstringsIndent = indent
			st.flags[i].InMkdocstrings = true
			continue
		}
		if admonitionPattern.MatchString(trimmed) {
			st.admonitionIndent = indent
			st.flags[i].InAdmonition = true
			continue
		}
		if contentTabPattern.MatchString(trimmed) {
			st.contentTabIndent = indent
			st.flags[i].InContentTab = true
			continue
		}
		if definitionMarkerPattern.MatchString(line) && st.lastNonBlankWasTerm {
			st.flags[i].InDefinitionList = true
		}

		if !st.flags[i].IsBlank {
			st.lastNonBlankWasTerm = st.flags[i].ListItem == nil && st.flags[i].Heading == nil
		}
	}
}
