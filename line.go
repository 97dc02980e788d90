package jsonview

import (
	"strconv"
	"strings"
)

// writeLine writes the HTML row for l.
func (f *Formatter) writeLine(b *strings.Builder, l *Line) {
	b.WriteString(`<div class="line"`)
	for _, id := range l.Folds {
		n := strconv.Itoa(id)
		b.WriteString(` data-fold`)
		b.WriteString(n)
		b.WriteString(`="`)
		b.WriteString(n)
		b.WriteByte('"')
	}
	if l.Fold != 0 {
		b.WriteString(` data-fold-start="`)
		b.WriteString(strconv.Itoa(l.Fold))
		b.WriteByte('"')
	}
	b.WriteString(`><span class="gutter"></span><span class="code">`)
	writeIndent(b, f.conf.Indent, indentUnits(l), f.allSpaces)
	tokens := trimTrailing(l.Tokens)
	for i := range tokens {
		writeToken(b, &tokens[i])
	}
	b.WriteString(`</span></div>`)
}

func writeToken(b *strings.Builder, t *Token) {
	b.WriteString(`<span class="`)
	b.WriteString(t.Class.String())
	b.WriteString(`">`)
	if t.Composite() {
		for i := range t.Items {
			writeToken(b, &t.Items[i])
		}
	} else {
		b.WriteString(EncodeHTML(t.Text))
	}
	b.WriteString(`</span>`)
}
