package jsonview

import (
	"fmt"
	"strings"

	"github.com/charlievieth/jsonview/termcolor"
)

// Theme is the color of each token class in terminal output. A nil
// color is printed without escapes; the zero Theme prints plain text.
type Theme struct {
	Null        termcolor.Color
	False       termcolor.Color
	True        termcolor.Color
	Key         termcolor.Color
	Quote       termcolor.Color // quotes of keys and strings; nil uses the Key or String color
	String      termcolor.Color
	Number      termcolor.Color
	Punctuation termcolor.Color
	Unknown     termcolor.Color
}

var DefaultTheme = Theme{
	Null:        termcolor.Yellow,
	False:       termcolor.Yellow,
	True:        termcolor.Yellow,
	Key:         termcolor.Blue,
	String:      termcolor.Green,
	Number:      termcolor.Magenta,
	Punctuation: termcolor.Yellow,
	Unknown:     termcolor.Red,
}

// JQTheme matches the default color scheme of `jq`
// (https://stedolan.github.io/jq/).
var JQTheme = Theme{
	Null:        termcolor.Bold{Color: termcolor.Black},
	Key:         termcolor.Bold{Color: termcolor.Blue},
	String:      termcolor.Green,
	Punctuation: termcolor.Bold{},
}

func (t *Theme) color(c Class) termcolor.Color {
	switch c {
	case ClassNull:
		return t.Null
	case ClassFalse:
		return t.False
	case ClassTrue:
		return t.True
	case ClassKey:
		return t.Key
	case ClassString:
		return t.String
	case ClassNumber:
		return t.Number
	case ClassUnknown:
		return t.Unknown
	}
	if c.IsPunctuation() {
		return t.Punctuation
	}
	return nil
}

func (t *Theme) field(name string) (*termcolor.Color, bool) {
	switch name {
	case "null":
		return &t.Null, true
	case "false":
		return &t.False, true
	case "true":
		return &t.True, true
	case "key":
		return &t.Key, true
	case "quote":
		return &t.Quote, true
	case "string":
		return &t.String, true
	case "number":
		return &t.Number, true
	case "punctuation":
		return &t.Punctuation, true
	case "unknown":
		return &t.Unknown, true
	}
	return nil, false
}

// ParseTheme returns a copy of base with overrides applied. overrides
// is a comma separated list of class=color pairs, for example
// "key=bold-blue,number=#ff8800". The class "bool" sets both true and
// false. Colors are parsed with termcolor.Parse. A nil base is the zero
// Theme.
func ParseTheme(base *Theme, overrides string, trueColor bool) (*Theme, error) {
	var dupe Theme
	if base != nil {
		dupe = *base
	}
	for _, kv := range strings.Split(overrides, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("jsonview: invalid theme entry: %q", kv)
		}
		c, err := termcolor.Parse(value, trueColor)
		if err != nil {
			return nil, fmt.Errorf("jsonview: theme %q: %w", name, err)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "bool" {
			dupe.True = c
			dupe.False = c
			continue
		}
		p, ok := dupe.field(name)
		if !ok {
			return nil, fmt.Errorf("jsonview: unknown theme class: %q", name)
		}
		*p = c
	}
	return &dupe, nil
}

// FormatANSI renders v as text colored with theme, one line per row and
// without a trailing newline. A nil theme prints plain text.
func (f *Formatter) FormatANSI(v any, theme *Theme) string {
	if theme == nil {
		theme = &Theme{}
	}
	lines := f.Lines(v)
	var b strings.Builder
	for i := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		l := &lines[i]
		writeIndent(&b, f.conf.Indent, indentUnits(l), f.allSpaces)
		tokens := trimTrailing(l.Tokens)
		for j := range tokens {
			writeTokenANSI(&b, theme, &tokens[j], nil)
		}
	}
	return b.String()
}

// writeTokenANSI writes t colored by its class, or by parent for the
// parts of a key or string.
func writeTokenANSI(b *strings.Builder, theme *Theme, t *Token, parent termcolor.Color) {
	if t.Composite() {
		c := theme.color(t.Class)
		for i := range t.Items {
			writeTokenANSI(b, theme, &t.Items[i], c)
		}
		return
	}
	var c termcolor.Color
	switch t.Class {
	case ClassQuote:
		c = theme.Quote
		if c == nil {
			c = parent
		}
	case ClassContent:
		c = parent
	default:
		c = theme.color(t.Class)
	}
	b.WriteString(termcolor.Sprint(c, t.Text))
}
