package jsonview

import (
	"html/template"
	"strings"
)

// Render parses data and formats it as HTML. If data is not valid JSON the
// escaped raw text is returned instead.
func Render(data []byte) string {
	s, _ := defaultFormatter.Render(data)
	return s
}

// Render parses data and formats it as HTML. If data is not valid JSON the
// escaped raw text is returned along with the parse error.
func (f *Formatter) Render(data []byte) (string, error) {
	v, err := Parse(data)
	if err != nil {
		return RenderRaw(data), err
	}
	return f.Format(v), nil
}

// RenderRaw returns data as escaped text in a <pre> block.
func RenderRaw(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) + len(`<pre class="json-raw"></pre>`))
	b.WriteString(`<pre class="json-raw">`)
	b.WriteString(EncodeHTML(string(data)))
	b.WriteString(`</pre>`)
	return b.String()
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
pre.json, pre.json-raw { font-family: monospace; margin: 0; white-space: pre-wrap; }
.line { display: block; }
.gutter { display: inline-block; width: 1em; }
.key { color: #881391; }
.string { color: #1a1aa6; }
.number { color: #1c00cf; }
.boolean { color: #0d22aa; }
.null { color: #808080; }
.delimiter, .separator { color: #333; }
.unknown { color: #c80000; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Page wraps body, the output of Format or Render, in a standalone HTML
// document titled title.
func Page(title, body string) (string, error) {
	var b strings.Builder
	err := pageTemplate.Execute(&b, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
