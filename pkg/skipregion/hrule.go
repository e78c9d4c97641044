package skipregion

import "strings"

// detectHorizontalRulesAndDivMarkers flags thematic-break lines and the
// generic ":::"-style fenced-div markers that several flavors (Quarto,
// PyMdown, Obsidian callouts) build on top of.
func detectHorizontalRulesAndDivMarkers(st *scanState) {
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) || st.flags[i].IsBlank {
			continue
		}
		trimmed := strings.TrimSpace(line)

		if st.flags[i].Indent < 4 && isThematicBreak(trimmed) {
			st.flags[i].IsHorizontalRule = true
			continue
		}

		if st.flags[i].Indent < 4 && strings.HasPrefix(trimmed, ":::") {
			st.flags[i].IsDivMarker = true
		}
	}
}

// isThematicBreak reports whether trimmed is a run of three or more of the
// same character among "*", "-", "_", optionally separated by spaces.
func isThematicBreak(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	var marker byte
	count := 0
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c != '*' && c != '-' && c != '_' {
			return false
		}
		if marker == 0 {
			marker = c
		} else if c != marker {
			return false
		}
		count++
	}
	return count >= 3
}
