package skipregion

import (
	"regexp"
	"strings"
)

var listMarkerPattern = regexp.MustCompile(`^(\s*)([-*+]|\d{1,9}[.)])(\s+)(.*)$`)

// detectBlockquotesAndLists populates Blockquote and ListItem for each line
// not already claimed by front matter or a code fence.
func detectBlockquotesAndLists(st *scanState) {
	for i, line := range st.lines {
		if st.flags[i].InFrontMatter || st.inFenceFlag(i) {
			continue
		}

		bq, rest := parseBlockquotePrefix(line)
		if bq != nil {
			st.flags[i].Blockquote = bq
			line = rest
		}

		if m := listMarkerPattern.FindStringSubmatch(line); m != nil {
			marker := m[2]
			isOrdered := marker[len(marker)-1] == '.' || marker[len(marker)-1] == ')'
			item := &ListItemInfo{
				Marker:        marker,
				IsOrdered:     isOrdered,
				MarkerColumn: len(m[1]) + 1,
				ContentColumn: len(m[1]) + len(marker) + len(m[3]) + 1,
			}
			if isOrdered {
				item.Number = parseLeadingInt(marker[:len(marker)-1])
			}
			st.flags[i].ListItem = item
		}
	}
}

// parseBlockquotePrefix strips leading "> " markers (any count, possibly
// separated by spaces) and reports the nesting depth and remaining content.
func parseBlockquotePrefix(line string) (*BlockquoteInfo, string) {
	rest := line
	depth := 0
	for {
		trimmed := strings.TrimLeft(rest, " ")
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		trimmed = trimmed[1:]
		trimmed = strings.TrimPrefix(trimmed, " ")
		rest = trimmed
		depth++
	}
	if depth == 0 {
		return nil, line
	}
	return &BlockquoteInfo{Depth: depth, Content: rest}, rest
}

func parseLeadingInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
