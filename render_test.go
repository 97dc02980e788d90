package jsonview

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render([]byte(`{"a":1,"b":[2,3]}`))
	v, err := Parse([]byte(`{"a":1,"b":[2,3]}`))
	if err != nil {
		t.Fatal(err)
	}
	compareHTML(t, got, FormatJSON(v))
}

func TestRenderInvalid(t *testing.T) {
	const in = `{bad <json>`
	want := `<pre class="json-raw">{bad &lt;json&gt;</pre>`
	if got := Render([]byte(in)); got != want {
		t.Errorf("Render(%q) = %q; want: %q", in, got, want)
	}

	got, err := defaultFormatter.Render([]byte(in))
	if got != want {
		t.Errorf("Formatter.Render(%q) = %q; want: %q", in, got, want)
	}
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		t.Errorf("Formatter.Render(%q): error = %v; want: *json.SyntaxError", in, err)
	}
}

func TestRenderRaw(t *testing.T) {
	if got, want := RenderRaw(nil), `<pre class="json-raw"></pre>`; got != want {
		t.Errorf("RenderRaw(nil) = %q; want: %q", got, want)
	}
	if got, want := RenderRaw([]byte(`"a&b"`)), `<pre class="json-raw">&quot;a&amp;b&quot;</pre>`; got != want {
		t.Errorf("RenderRaw = %q; want: %q", got, want)
	}
}

func TestPage(t *testing.T) {
	body := FormatJSON(Object{{Key: "k", Value: "<v>"}})
	page, err := Page(`<script>"t"</script>`, body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %.40q", page)
	}
	if !strings.Contains(page, body) {
		t.Error("body was not included verbatim")
	}
	if strings.Contains(page, `<script>"t"</script>`) {
		t.Error("title was not escaped")
	}
	if !strings.Contains(page, "<title>&lt;script&gt;") {
		t.Errorf("escaped title not found in:\n%s", page)
	}
}
