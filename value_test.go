package jsonview

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{`null`, nil},
		{` true `, true},
		{`"s"`, "s"},
		{`1.50`, json.Number("1.50")},
		{`[]`, []any{}},
		{`{}`, Object{}},
		{
			`{"b":1,"a":[true,null,"x"],"c":{}}`,
			Object{
				{Key: "b", Value: json.Number("1")},
				{Key: "a", Value: []any{true, nil, "x"}},
				{Key: "c", Value: Object{}},
			},
		},
		{
			// Duplicate keys keep the first position and the last value.
			`{"a":1,"b":2,"a":3}`,
			Object{
				{Key: "a", Value: json.Number("3")},
				{Key: "b", Value: json.Number("2")},
			},
		},
		{`[-0, 1e400, 0.000001]`, []any{json.Number("-0"), json.Number("1e400"), json.Number("0.000001")}},
	}
	for _, test := range tests {
		got, err := Parse([]byte(test.in))
		if err != nil {
			t.Errorf("Parse(%q): %v", test.in, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("Parse(%q) = %#v; want: %#v", test.in, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in       string
		eof      bool // error wraps io.ErrUnexpectedEOF
		syntaxEr bool // error wraps *json.SyntaxError
	}{
		{in: ``, eof: true},
		{in: `   `, eof: true},
		{in: `[{`, eof: true},
		{in: `{"a":`, eof: true},
		{in: `[1 2]`, syntaxEr: true},
		{in: `{bad <json>`, syntaxEr: true},
		{in: `{"a":tru}`, syntaxEr: true},
		{in: `{} x`, syntaxEr: true},
		{in: `{}{}`},
		{in: `[1] 2`},
	}
	for _, test := range tests {
		_, err := Parse([]byte(test.in))
		if err == nil {
			t.Errorf("Parse(%q): expected an error", test.in)
			continue
		}
		if !strings.HasPrefix(err.Error(), "jsonview: ") {
			t.Errorf("Parse(%q): error not prefixed: %q", test.in, err)
		}
		if got := errors.Is(err, io.ErrUnexpectedEOF); got != test.eof {
			t.Errorf("Parse(%q): errors.Is(%v, io.ErrUnexpectedEOF) = %t; want: %t",
				test.in, err, got, test.eof)
		}
		var se *json.SyntaxError
		if got := errors.As(err, &se); got != test.syntaxEr {
			t.Errorf("Parse(%q): errors.As(%v, *json.SyntaxError) = %t; want: %t",
				test.in, err, got, test.syntaxEr)
		}
	}
}

func TestDecoderStream(t *testing.T) {
	dec := NewDecoder(strings.NewReader(`{}{}[1] 2 "x"`))
	want := []any{Object{}, Object{}, []any{json.Number("1")}, json.Number("2"), "x"}
	for i, w := range want {
		v, err := dec.Decode()
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		if !reflect.DeepEqual(v, w) {
			t.Errorf("%d: got: %#v want: %#v", i, v, w)
		}
	}
	if _, err := dec.Decode(); err != io.EOF {
		t.Errorf("Decode at end of stream: %v; want: %v", err, io.EOF)
	}
}

func TestDecoderInputOffset(t *testing.T) {
	const in = `[1,2] {"a":`
	dec := NewDecoder(strings.NewReader(in))
	if _, err := dec.Decode(); err != nil {
		t.Fatal(err)
	}
	start := dec.InputOffset()
	if rest := strings.TrimSpace(in[start:]); rest != `{"a":` {
		t.Errorf("rest = %q; want: %q", rest, `{"a":`)
	}
	_, err := dec.Decode()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Decode: %v; want: %v", err, io.ErrUnexpectedEOF)
	}
}

func TestObjectGet(t *testing.T) {
	obj := Object{{Key: "a", Value: 1}, {Key: "b", Value: nil}}
	if v, ok := obj.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %t", v, ok)
	}
	if v, ok := obj.Get("b"); !ok || v != nil {
		t.Errorf("Get(b) = %v, %t", v, ok)
	}
	if _, ok := obj.Get("c"); ok {
		t.Error("Get(c) found a missing key")
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	// Member order survives parsing and formatting.
	const in = `{"z":1,"a":2,"m":{"y":[],"b":null}}`
	v, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	got := defaultFormatter.FormatANSI(v, nil)
	want := "{\n  \"z\": 1,\n  \"a\": 2,\n  \"m\": {\n    \"y\": [],\n    \"b\": null\n  }\n}"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseLoneSurrogate(t *testing.T) {
	// encoding/json replaces unpaired surrogates with U+FFFD.
	v, err := Parse([]byte(`["\ud800", "\ud83d\ude00"]`))
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"\ufffd", "\U0001F600"}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("Parse = %#v; want: %#v", v, want)
	}
	if got := FormatJSON(v); !strings.Contains(got, `<span class="content">`+"\ufffd"+`</span>`) {
		t.Errorf("replacement character not rendered: %s", got)
	}
}
