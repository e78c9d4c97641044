package skipregion

import "strings"

// detectKramdownExtensions tracks Kramdown's "{::name}" ... "{:/name}" (or
// bare "{:/}") extension blocks. Like Quarto divs these nest by a simple
// depth counter since kramdown extension blocks don't carry per-block
// indentation semantics.
func detectKramdownExtensions(st *scanState) {
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) {
			continue
		}
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "{::") && strings.HasSuffix(trimmed, "}"):
			st.flags[i].InKramdownExtensionBlock = true
			st.kramdownDepth++
			continue
		case strings.HasPrefix(trimmed, "{:/") && strings.HasSuffix(trimmed, "}"):
			if st.kramdownDepth > 0 {
				st.kramdownDepth--
			}
			st.flags[i].InKramdownExtensionBlock = true
			continue
		}

		if st.kramdownDepth > 0 {
			st.flags[i].InKramdownExtensionBlock = true
		}
	}
}
