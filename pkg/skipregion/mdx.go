package skipregion

import "strings"

// detectMDX handles MDX-specific regions: ESM import/export statements at
// the top level, bare "{/* ... */}" comments, and brace-delimited JSX
// expressions. These are line-oriented approximations; a full JSX parse is
// out of scope for skip-region detection and left to the element parser.
func detectMDX(st *scanState) {
	inESM := false
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) {
			continue
		}
		trimmed := strings.TrimSpace(line)

		if inESM {
			st.flags[i].InESMBlock = true
			if strings.Contains(trimmed, ";") || trimmed == "" {
				inESM = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "export ") {
			st.flags[i].InESMBlock = true
			if strings.Contains(trimmed, ";") {
				continue
			}
			inESM = true
			continue
		}

		if strings.HasPrefix(trimmed, "{/*") {
			st.flags[i].InMDXComment = true
			continue
		}

		if strings.HasPrefix(trimmed, "{") {
			st.flags[i].InJSXExpression = true
		}
	}
}
