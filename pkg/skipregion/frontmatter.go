package skipregion

import "strings"

// detectFrontMatter marks YAML/TOML/JSON front matter at the very start of
// the document. Front matter is only recognized on line 1, per the
// invariant that region spans never cross front-matter boundaries.
func detectFrontMatter(st *scanState) {
	if len(st.lines) == 0 {
		return
	}
	first := strings.TrimSpace(st.lines[0])

	switch {
	case first == "---":
		closeFrontMatter(st, "---")
	case first == "+++":
		closeFrontMatter(st, "+++")
	case first == "{":
		closeJSONFrontMatter(st)
	}
}

func closeFrontMatter(st *scanState, delim string) {
	st.flags[0].InFrontMatter = true
	for i := 1; i < len(st.lines); i++ {
		st.flags[i].InFrontMatter = true
		if strings.TrimSpace(st.lines[i]) == delim {
			return
		}
	}
	// Unclosed: extends to end of document, per C2's failure contract.
}

func closeJSONFrontMatter(st *scanState) {
	depth := 0
	for i := 0; i < len(st.lines); i++ {
		st.flags[i].InFrontMatter = true
		for _, r := range st.lines[i] {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		if depth <= 0 && i > 0 {
			return
		}
	}
}
