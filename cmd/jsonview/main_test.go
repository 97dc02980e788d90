package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charlievieth/jsonview"
)

var ansiRe = regexp.MustCompile("\x1b" + `\[(?:\d+(?:;\d+)*)?m`)

func runCmd(t *testing.T, terminal bool, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errw bytes.Buffer
	if args == nil {
		args = []string{} // don't let cobra read os.Args
	}
	cmd := newRootCmd(terminal)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errw)
	err = cmd.Execute()
	return out.String(), errw.String(), err
}

func TestHTMLStdin(t *testing.T) {
	const in = `{"a":1,"b":[2,3]}`
	out, stderr, err := runCmd(t, false, in)
	if err != nil {
		t.Fatal(err)
	}
	if want := jsonview.Render([]byte(in)) + "\n"; out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestHTMLInvalid(t *testing.T) {
	out, stderr, err := runCmd(t, false, `{bad <json>`)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<pre class="json-raw">{bad &lt;json&gt;</pre>` + "\n"; out != want {
		t.Errorf("got: %q want: %q", out, want)
	}
	if !strings.Contains(stderr, "warning:") || !strings.Contains(stderr, "<stdin>") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestHTMLStream(t *testing.T) {
	out, stderr, err := runCmd(t, false, `{}{"a":1} [2`)
	if err != nil {
		t.Fatal(err)
	}
	want := jsonview.Render([]byte(`{}`)) + "\n" +
		jsonview.Render([]byte(`{"a":1}`)) + "\n" +
		jsonview.RenderRaw([]byte(`[2`)) + "\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
	if !strings.Contains(stderr, "warning:") {
		t.Errorf("stderr = %q", stderr)
	}

	out, stderr, err = runCmd(t, false, "[1]\n[2]\n")
	if err != nil {
		t.Fatal(err)
	}
	if want := jsonview.Render([]byte(`[1]`)) + "\n" + jsonview.Render([]byte(`[2]`)) + "\n"; out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestHTMLPage(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "x.json")
	if err := os.WriteFile(name, []byte(`[1]`), 0644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCmd(t, false, "", "--page", name)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("not a page: %.40q", out)
	}
	if !strings.Contains(out, "<title>"+name+"</title>") {
		t.Errorf("title %q not found in:\n%s", name, out)
	}
	if !strings.Contains(out, jsonview.Render([]byte(`[1]`))) {
		t.Errorf("body not found in:\n%s", out)
	}

	out, _, err = runCmd(t, false, "", "--page", "--title", "T", name)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<title>T</title>") {
		t.Errorf("title not found in:\n%s", out)
	}
}

func TestColor(t *testing.T) {
	for _, args := range [][]string{{"-C"}, nil} {
		out, _, err := runCmd(t, len(args) == 0, `{"a":[1,2]}`, args...)
		if err != nil {
			t.Fatal(err)
		}
		if want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n"; ansiRe.ReplaceAllString(out, "") != want {
			t.Errorf("%q: got:\n%s\nwant:\n%s", args, out, want)
		}
	}
}

func TestColorStream(t *testing.T) {
	out, stderr, err := runCmd(t, false, `[1,2] {"a":`, "-C", "--theme", "punctuation=none,number=none")
	if err != nil {
		t.Fatal(err)
	}
	if want := "[\n  1,\n  2\n]\n" + ` {"a":`; out != want {
		t.Errorf("got: %q want: %q", out, want)
	}
	if !strings.Contains(stderr, "warning:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestIndentAndBreaks(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-C", "--indent", "8"}, "[\n\t1\n]\n"},
		{[]string{"-C", "--indent", "4"}, "[\n    1\n]\n"},
		{[]string{"-C", "--no-break", "before-items,after-items"}, "[1]\n"},
		{[]string{"-C", "--indent", "0"}, "[\n1\n]\n"},
	}
	for _, test := range tests {
		out, _, err := runCmd(t, false, `[1]`, test.args...)
		if err != nil {
			t.Errorf("%q: %v", test.args, err)
			continue
		}
		if got := ansiRe.ReplaceAllString(out, ""); got != test.want {
			t.Errorf("%q: got: %q want: %q", test.args, got, test.want)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := [][]string{
		{"-C", "-H"},
		{"--indent", "-1"},
		{"--break", "before-nothing"},
		{"-C", "--theme", "key=nope"},
		{filepath.Join(t.TempDir(), "missing.json")},
	}
	for _, args := range tests {
		if _, _, err := runCmd(t, false, `[]`, args...); err == nil {
			t.Errorf("%q: expected an error", args)
		}
	}
}

func TestMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.json")
	out, stderr, err := runCmd(t, false, "", missing, good)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(stderr, "error:") || !strings.Contains(stderr, missing) {
		t.Errorf("stderr = %q", stderr)
	}
	// The remaining files are still rendered.
	if want := jsonview.Render([]byte(`{}`)) + "\n"; out != want {
		t.Errorf("got: %q want: %q", out, want)
	}
}

func TestStats(t *testing.T) {
	_, stderr, err := runCmd(t, false, `[1]`, "--stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "# stats") {
		t.Errorf("stderr = %q", stderr)
	}
}
