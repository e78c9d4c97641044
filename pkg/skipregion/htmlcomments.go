package skipregion

import (
	"strings"

	"github.com/markward/mdlint/pkg/lineindex"
)

// detectHTMLComments marks every line spanned by an HTML comment
// ("<!--" ... "-->"), which may cross multiple lines. This runs over raw
// bytes rather than the per-line slices so a comment opened mid-line and
// closed on a later line is tracked correctly.
func detectHTMLComments(content []byte, idx *lineindex.Index, st *scanState) {
	s := string(content)
	pos := 0
	for {
		start := strings.Index(s[pos:], "<!--")
		if start == -1 {
			return
		}
		start += pos

		startLine := idx.LineOf(start)
		if startLine < len(st.flags) && st.flags[startLine].InFrontMatter {
			pos = start + 4
			continue
		}

		end := strings.Index(s[start+4:], "-->")
		var endLine int
		if end == -1 {
			endLine = len(st.lines) - 1
			pos = len(s)
		} else {
			end += start + 4 + 3
			endLine = idx.LineOf(end - 1)
			pos = end
		}

		for l := startLine; l <= endLine && l < len(st.flags); l++ {
			st.flags[l].InHTMLComment = true
		}

		if end == -1 {
			return
		}
	}
}
