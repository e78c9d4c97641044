package skipregion

import "strings"

// detectPyMdownBlocks tracks the "blocks" extension's "/// name" ... "///"
// syntax, nested by indent the same way Quarto divs are.
func detectPyMdownBlocks(st *scanState) {
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		indent := st.flags[i].Indent

		if !strings.HasPrefix(trimmed, "///") {
			if st.pymdown.active() {
				st.flags[i].InPymdownBlock = true
			}
			continue
		}

		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "///"))
		isClose := rest == ""

		if isClose && st.pymdown.active() && indent <= st.pymdown.top() {
			st.flags[i].InPymdownBlock = true
			st.pymdown.pop()
			continue
		}

		st.flags[i].InPymdownBlock = st.pymdown.active()
		st.pymdown.push(indent)
	}
}
