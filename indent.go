package jsonview

import "io"

const (
	_s     = "                                                                " // 64
	spaces = _s + _s + _s + _s + _s + _s + _s + _s                              // 512
)

func isAllSpaces(indent string) bool {
	for i := 0; i < len(indent); i++ {
		if indent[i] != ' ' {
			return false
		}
	}
	return true
}

// writeIndent writes depth copies of indent to dst.
func writeIndent(dst io.StringWriter, indent string, depth int, allSpaces bool) {
	if allSpaces {
		n := len(indent) * depth
		for n > 0 {
			i := n
			if i >= len(spaces) {
				i = len(spaces)
			}
			dst.WriteString(spaces[:i])
			n -= i
		}
		return
	}
	for i := 0; i < depth; i++ {
		dst.WriteString(indent)
	}
}

// absorbsLeadingDelimiter reports if the first token of l is a closing
// delimiter or an item separator. Such a line is created at the depth of
// the items it closes or separates and is drawn one unit to the left, so
// the delimiter lines up with the line that opened the block.
func absorbsLeadingDelimiter(l *Line) bool {
	if len(l.Tokens) == 0 {
		return false
	}
	c := l.Tokens[0].Class
	return c.IsClose() || c == ClassObjectSeparator || c == ClassArraySeparator
}

// indentUnits returns the number of indent units l is drawn with.
func indentUnits(l *Line) int {
	n := l.Depth
	if absorbsLeadingDelimiter(l) {
		n--
	}
	if n < 0 {
		n = 0
	}
	return n
}
