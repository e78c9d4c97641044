package skipregion

import "strings"

// detectQuartoDivs tracks Quarto's ":::"-fenced divs, which nest: a div at
// one indent closes on a ":::" line at the same or lesser indent, and a
// deeper ":::" opens a nested div rather than closing the outer one.
func detectQuartoDivs(st *scanState) {
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		indent := st.flags[i].Indent

		if !strings.HasPrefix(trimmed, ":::") {
			if st.quarto.active() {
				st.flags[i].InQuartoDiv = true
			}
			continue
		}

		content := strings.TrimLeft(trimmed, ":")
		isClose := strings.TrimSpace(content) == ""

		if isClose && st.quarto.active() && indent <= st.quarto.top() {
			st.flags[i].InQuartoDiv = true
			st.quarto.pop()
			continue
		}

		// Opening marker (has attributes/class after the colons, or this is
		// the first "::: " in the stack).
		st.flags[i].InQuartoDiv = st.quarto.active()
		st.flags[i].IsDivMarker = true
		st.quarto.push(indent)
	}
}
