package jsonview

import "strings"

// Class is the semantic role of a Token. Its String value is used as the
// CSS class list of the rendered element.
type Class uint8

const (
	ClassNull Class = iota
	ClassTrue
	ClassFalse
	ClassNumber
	ClassString
	ClassKey
	ClassQuote   // quote of a ClassString or ClassKey token
	ClassContent // text of a ClassString or ClassKey token
	ClassObjectOpen
	ClassObjectClose
	ClassArrayOpen
	ClassArrayClose
	ClassObjectSeparator
	ClassArraySeparator
	ClassPropertySeparator
	ClassUnknown
	numClasses
)

var classNames = [numClasses]string{
	ClassNull:              "null",
	ClassTrue:              "boolean true",
	ClassFalse:             "boolean false",
	ClassNumber:            "number",
	ClassString:            "string",
	ClassKey:               "key",
	ClassQuote:             "quote",
	ClassContent:           "content",
	ClassObjectOpen:        "object delimiter open",
	ClassObjectClose:       "object delimiter close",
	ClassArrayOpen:         "array delimiter open",
	ClassArrayClose:        "array delimiter close",
	ClassObjectSeparator:   "object separator",
	ClassArraySeparator:    "array separator",
	ClassPropertySeparator: "object property separator",
	ClassUnknown:           "unknown",
}

func (c Class) String() string {
	if c < numClasses {
		return classNames[c]
	}
	return "unknown"
}

// IsClose reports if c is a closing object or array delimiter.
func (c Class) IsClose() bool { return c == ClassObjectClose || c == ClassArrayClose }

// IsPunctuation reports if c is a delimiter or separator.
func (c Class) IsPunctuation() bool {
	return ClassObjectOpen <= c && c <= ClassPropertySeparator
}

// A Token is either a leaf with literal Text or a composite of Items.
// Token text is unescaped for HTML; JSON string escapes have already
// been applied to keys and string values.
type Token struct {
	Class Class
	Text  string
	Items []Token
}

// Composite reports if t is made of nested tokens.
func (t *Token) Composite() bool { return t.Items != nil }

// String returns the plain text of t.
func (t *Token) String() string {
	if !t.Composite() {
		return t.Text
	}
	var b strings.Builder
	t.writeText(&b)
	return b.String()
}

func (t *Token) writeText(b *strings.Builder) {
	if !t.Composite() {
		b.WriteString(t.Text)
		return
	}
	for i := range t.Items {
		t.Items[i].writeText(b)
	}
}

func quotedToken(class Class, s string) Token {
	return Token{
		Class: class,
		Items: []Token{
			{Class: ClassQuote, Text: `"`},
			{Class: ClassContent, Text: escapeJSONString(s)},
			{Class: ClassQuote, Text: `"`},
		},
	}
}

// trimTrailing returns tokens with trailing spaces and tabs removed from
// the text of the last token. tokens is not modified. Composite tokens
// always end with a quote and are never trimmed.
func trimTrailing(tokens []Token) []Token {
	if len(tokens) == 0 {
		return tokens
	}
	last := tokens[len(tokens)-1]
	if last.Composite() {
		return tokens
	}
	text := strings.TrimRight(last.Text, " \t")
	if text == last.Text {
		return tokens
	}
	if text == "" {
		return trimTrailing(tokens[:len(tokens)-1])
	}
	last.Text = text
	out := make([]Token, len(tokens))
	copy(out, tokens)
	out[len(out)-1] = last
	return out
}
