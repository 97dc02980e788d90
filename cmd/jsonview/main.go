package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amterp/color"
	"github.com/charlievieth/jsonview"
	"github.com/charlievieth/jsonview/termcolor"
	"github.com/spf13/cobra"
)

var (
	errorPrefix   = color.New(color.FgRed, color.Bold).SprintfFunc()
	warningPrefix = color.New(color.FgYellow, color.Bold).SprintfFunc()
)

func printError(w io.Writer, name string, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", errorPrefix("error:"), name, err)
}

func printWarning(w io.Writer, name string, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", warningPrefix("warning:"), name, err)
}

type statReader struct {
	r io.Reader
	n int64
}

func (r *statReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.n += int64(n)
	return n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += int64(n)
	return n, err
}

const statsFormat = `
  # stats
  time:  %s
  read:  %.2f MB - %.2f MB/s
  write: %.2f MB - %.2f MB/s
`

type options struct {
	indent     int
	forceColor bool
	forceHTML  bool
	page       bool
	title      string
	theme      string
	jq         bool
	breaks     []string
	noBreaks   []string
	stats      bool
}

func (o *options) config() (*jsonview.Config, error) {
	conf := jsonview.DefaultConfig
	if o.indent < 0 {
		return nil, fmt.Errorf("invalid indent: %d", o.indent)
	}
	if o.indent == 8 {
		conf.Indent = "\t"
	} else {
		conf.Indent = strings.Repeat(" ", o.indent)
	}
	for _, name := range o.breaks {
		t, err := jsonview.ParseTrigger(name)
		if err != nil {
			return nil, err
		}
		conf.Breaks[t] = true
	}
	for _, name := range o.noBreaks {
		t, err := jsonview.ParseTrigger(name)
		if err != nil {
			return nil, err
		}
		conf.Breaks[t] = false
	}
	return &conf, nil
}

func (o *options) themeConfig() (*jsonview.Theme, error) {
	base := &jsonview.DefaultTheme
	if o.jq {
		base = &jsonview.JQTheme
	}
	if o.theme == "" {
		return base, nil
	}
	return jsonview.ParseTheme(base, o.theme, termcolor.TrueColorEnabled())
}

type input struct {
	name string
	data []byte
}

// renderer writes each input to out. Inputs that are not valid JSON are
// reported on errw and written as raw text.
type renderer interface {
	render(out io.Writer, errw io.Writer, in input) error
	finish(out io.Writer) error
}

// eachValue calls fn with every value in in. Values may be concatenated
// or separated by whitespace. If in holds invalid JSON a warning is printed
// and raw is called with the input that was not decoded.
func eachValue(errw io.Writer, in input, fn func(v any) error, raw func(rest []byte) error) error {
	dec := jsonview.NewDecoder(bytes.NewReader(in.data))
	for {
		start := dec.InputOffset()
		v, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			printWarning(errw, in.name, fmt.Errorf("showing raw text: %w", err))
			return raw(in.data[min(int(start), len(in.data)):])
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

type htmlRenderer struct {
	f     *jsonview.Formatter
	page  bool
	title string
	body  strings.Builder
}

func (r *htmlRenderer) write(out io.Writer, s string) error {
	if r.page {
		r.body.WriteString(s)
		return nil
	}
	_, err := io.WriteString(out, s+"\n")
	return err
}

// render writes one <pre> block per value in the input. Invalid input is
// written as a raw text block after the values that could be decoded.
func (r *htmlRenderer) render(out, errw io.Writer, in input) error {
	return eachValue(errw, in,
		func(v any) error {
			return r.write(out, r.f.Format(v))
		},
		func(rest []byte) error {
			return r.write(out, jsonview.RenderRaw(bytes.TrimLeft(rest, " \t\r\n")))
		},
	)
}

func (r *htmlRenderer) finish(out io.Writer) error {
	if !r.page {
		return nil
	}
	s, err := jsonview.Page(r.title, r.body.String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, s)
	return err
}

type ansiRenderer struct {
	f     *jsonview.Formatter
	theme *jsonview.Theme
}

// render prints every value in the input. Invalid input is printed as
// is after the values that could be decoded.
func (r *ansiRenderer) render(out, errw io.Writer, in input) error {
	return eachValue(errw, in,
		func(v any) error {
			_, err := io.WriteString(out, r.f.FormatANSI(v, r.theme)+"\n")
			return err
		},
		func(rest []byte) error {
			_, err := out.Write(rest)
			return err
		},
	)
}

func (r *ansiRenderer) finish(io.Writer) error { return nil }

func newRootCmd(isTerminal bool) *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:           "jsonview [flags] [file]...",
		Short:         "Render JSON as collapsible HTML or colored text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Args = cobra.ArbitraryArgs
	root.CompletionOptions.DisableDefaultCmd = true

	pflags := root.PersistentFlags()
	pflags.IntVar(&opts.indent, "indent", 2, "Use the given number of spaces for indentation (8 uses a tab).")
	pflags.StringSliceVar(&opts.breaks, "break", nil, "Start a new line at these triggers (before-block, before-items,\n"+
		"before-separator, after-separator, after-items, after-block).")
	pflags.StringSliceVar(&opts.noBreaks, "no-break", nil, "Do not start a new line at these triggers.")

	flags := root.Flags()
	flags.BoolVarP(&opts.forceColor, "color", "C", false,
		"By default, jsonview outputs colored text if writing to a terminal\n"+
			"and HTML otherwise. Force colored text with -C and HTML with -H.")
	flags.BoolVarP(&opts.forceHTML, "html", "H", false, "Output HTML, one <pre> block per JSON value.")
	flags.BoolVar(&opts.page, "page", false, "Wrap HTML output in a standalone document.")
	flags.StringVar(&opts.title, "title", "", "Title of the HTML document (default: the file name).")
	flags.StringVar(&opts.theme, "theme", "", "Color overrides, e.g. \"key=bold-blue,number=#ff8800\".")
	flags.BoolVar(&opts.jq, "jq", false, "Use the jq color scheme.")
	flags.BoolVar(&opts.stats, "stats", false, "Print stats to STDERR.")

	root.AddCommand(newServeCmd(&opts))

	root.RunE = func(cmd *cobra.Command, args []string) error {
		if opts.forceColor && opts.forceHTML {
			return errors.New("--color and --html are mutually exclusive")
		}
		conf, err := opts.config()
		if err != nil {
			return err
		}
		f, err := jsonview.NewFormatter(conf)
		if err != nil {
			return err
		}

		var r renderer
		if opts.forceColor || (!opts.forceHTML && isTerminal) {
			theme, err := opts.themeConfig()
			if err != nil {
				return err
			}
			r = &ansiRenderer{f: f, theme: theme}
		} else {
			title := opts.title
			if title == "" && len(args) == 1 {
				title = args[0]
			}
			r = &htmlRenderer{f: f, page: opts.page, title: title}
		}

		start := time.Now()
		errw := cmd.ErrOrStderr()
		bw := bufio.NewWriterSize(cmd.OutOrStdout(), 96*1024)
		out := &countWriter{w: bw}

		var read int64
		var failed int
		if len(args) == 0 {
			sr := statReader{r: cmd.InOrStdin()}
			data, err := io.ReadAll(&sr)
			read = sr.n
			if err != nil {
				return err
			}
			if err := r.render(out, errw, input{name: "<stdin>", data: data}); err != nil {
				return err
			}
		}
		for _, name := range args {
			data, err := os.ReadFile(name)
			if err != nil {
				printError(errw, name, err)
				failed++
				continue
			}
			read += int64(len(data))
			if err := r.render(out, errw, input{name: name, data: data}); err != nil {
				return err
			}
		}
		if err := r.finish(out); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}

		if opts.stats {
			d := time.Since(start)
			mbr := float64(read) / float64(1024*1024)
			mbw := float64(out.n) / float64(1024*1024)
			fmt.Fprintf(errw, statsFormat,
				d,
				mbr, mbr/d.Seconds(),
				mbw, mbw/d.Seconds(),
			)
		}
		if failed > 0 {
			return fmt.Errorf("failed to read %d of %d files", failed, len(args))
		}
		return nil
	}
	return root
}

func main() {
	root := newRootCmd(termcolor.IsTerminal(int(os.Stdout.Fd())))
	if err := root.Execute(); err != nil {
		printError(os.Stderr, "jsonview", err)
		os.Exit(1)
	}
}
