package skipregion

import (
	"strings"

	"github.com/markward/mdlint/pkg/lineindex"
)

// scanState carries the mutable state threaded through the single
// left-to-right pass over the document.
type scanState struct {
	flavor Flavor
	lines  []string // line content, trailing "\r\n"/"\n" stripped
	flags  []Flags

	// fence tracks an open code/math fence purely so other detectors (math
	// blocks, div markers) don't misfire inside fenced code; it is not
	// exposed as InCodeBlock, which the caller fills in from the AST.
	fenceChar   byte
	fenceLen    int
	fenceIndent int
	inFence     bool
	fenceLines  []bool

	inFrontMatter bool
	inMath        bool

	quarto  indentStack
	pymdown indentStack
	kramdownDepth int

	mkdocstringsIndent int // -1 when not active
	admonitionIndent   int
	contentTabIndent   int

	lastNonBlankWasTerm bool // for definition list detection
}

// indentStack tracks nested fenced-div opens by the indent at which they
// opened, so a close at the same or outer indent pops the right level.
type indentStack struct {
	indents []int
}

func (s *indentStack) push(indent int) { s.indents = append(s.indents, indent) }
func (s *indentStack) active() bool    { return len(s.indents) > 0 }
func (s *indentStack) top() int        { return s.indents[len(s.indents)-1] }
func (s *indentStack) pop()            { s.indents = s.indents[:len(s.indents)-1] }

// Detect runs the skip-region state machine over content for the given
// flavor and returns one Flags entry per line.
func Detect(content []byte, flavor Flavor) []Flags {
	lines := splitLines(content)
	idx := lineindex.Build(content)

	st := &scanState{
		flavor:             flavor,
		lines:              lines,
		flags:              make([]Flags, len(lines)),
		mkdocstringsIndent: -1,
		admonitionIndent:   -1,
		contentTabIndent:   -1,
	}
	st.fenceLines = make([]bool, len(lines))

	for i, line := range lines {
		start, end := idx.LineRange(i, i)
		f := &st.flags[i]
		f.ByteOffset = start
		f.ByteLen = end - start
		f.Indent = leadingIndentBytes(line)
		f.VisualIndent = visualIndent(line)
		f.IsBlank = strings.TrimSpace(line) == ""
	}

	detectFrontMatter(st)
	detectFences(st)
	detectHeadings(st)
	detectBlockquotesAndLists(st)
	detectHorizontalRulesAndDivMarkers(st)
	detectHTMLComments(content, idx, st)

	switch flavor {
	case MkDocs:
		detectMkDocs(st)
	case MDX:
		detectMDX(st)
	case Quarto:
		detectQuartoDivs(st)
	case Kramdown:
		detectKramdownExtensions(st)
	case Obsidian:
		// Obsidian adds wiki-link/callout syntax handled by the element
		// parser (C3), not the skip-region detector; no extra regions.
	}
	detectPyMdownBlocks(st) // available regardless of flavor (PyMdown-Extensions ships standalone)

	return st.flags
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return []string{""}
	}
	s := string(content)
	raw := strings.Split(s, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

func leadingIndentBytes(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

// visualIndent expands tabs to the next multiple of 4, matching CommonMark's
// tab-expansion rule for computing indentation width.
func visualIndent(line string) int {
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += 4 - (width % 4)
		default:
			return width
		}
	}
	return width
}
