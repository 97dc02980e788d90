package jsonview

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EncodeHTML escapes the characters &, <, > and " in s. The ampersand is
// handled first so the entities produced for the others are not escaped
// again. EncodeHTML is not idempotent.
func EncodeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// escapeJSONString returns s with JSON string escapes applied, without
// the surrounding quotes. HTML-significant characters are left as is.
func escapeJSONString(s string) string {
	if !needsJSONEscape(s) {
		return s
	}
	var buf bytes.Buffer
	buf.Grow(len(s) + 8)
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encoding a string cannot fail.
		return s
	}
	b := buf.Bytes()
	// Strip the quotes and the newline added by Encode.
	return string(unescapeLineSeparators(b[1 : len(b)-2]))
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes written by
// encoding/json with the literal characters, which are valid in JSON
// strings.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 == len(b) {
			out = append(out, b[i])
			continue
		}
		if i+5 < len(b) && b[i+1] == 'u' && string(b[i+2:i+5]) == "202" && (b[i+5] == '8' || b[i+5] == '9') {
			out = utf8.AppendRune(out, 0x2020+rune(b[i+5]-'0'))
			i += 5
			continue
		}
		// Copy the escape pair so an escaped backslash is not read as
		// the start of another escape.
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

func needsJSONEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' || c >= 0x80 {
			return true
		}
	}
	return false
}
