package jsonview

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Trigger is a point in the walk of a value where a line break may be
// forced.
type Trigger uint8

const (
	BeforeBlock     Trigger = iota // before the opening delimiter of an array or object
	BeforeItems                    // after the opening delimiter of a non-empty block
	BeforeSeparator                // before the separator between two items
	AfterSeparator                 // after the separator between two items
	AfterItems                     // before the closing delimiter of a non-empty block
	AfterBlock                     // after the closing delimiter
	numTriggers
)

var triggerNames = [numTriggers]string{
	BeforeBlock:     "before-block",
	BeforeItems:     "before-items",
	BeforeSeparator: "before-separator",
	AfterSeparator:  "after-separator",
	AfterItems:      "after-items",
	AfterBlock:      "after-block",
}

func (t Trigger) String() string {
	if t < numTriggers {
		return triggerNames[t]
	}
	return "Trigger(" + strconv.Itoa(int(t)) + ")"
}

// ParseTrigger returns the Trigger named name ("before-block", ...).
func ParseTrigger(name string) (Trigger, error) {
	for t, s := range triggerNames {
		if s == name {
			return Trigger(t), nil
		}
	}
	return 0, fmt.Errorf("jsonview: unknown line break trigger: %q", name)
}

// BreakPolicy reports, for each Trigger, if a new line is started there.
type BreakPolicy [numTriggers]bool

// DefaultBreakPolicy puts opening delimiters on the line of their key or
// parent, each item on its own line with the separator trailing it, and
// closing delimiters on their own line.
var DefaultBreakPolicy = BreakPolicy{
	BeforeItems:    true,
	AfterSeparator: true,
	AfterItems:     true,
}

type Config struct {
	// Indent is one unit of indentation. It may only contain spaces and
	// tabs.
	Indent string
	Breaks BreakPolicy
}

var DefaultConfig = Config{
	Indent: "  ",
	Breaks: DefaultBreakPolicy,
}

func (c *Config) validate() error {
	for i := 0; i < len(c.Indent); i++ {
		if c.Indent[i] != ' ' && c.Indent[i] != '\t' {
			return errors.New("jsonview: indent may only contain spaces and tabs")
		}
	}
	return nil
}

// A Formatter renders JSON values. Its configuration is fixed when it is
// created and it is safe for concurrent use.
type Formatter struct {
	conf      Config
	allSpaces bool
}

// NewFormatter returns a Formatter using a copy of conf. If conf is nil
// DefaultConfig is used.
func NewFormatter(conf *Config) (*Formatter, error) {
	if conf == nil {
		conf = &DefaultConfig
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &Formatter{conf: *conf, allSpaces: isAllSpaces(conf.Indent)}, nil
}

var defaultFormatter = &Formatter{
	conf:      DefaultConfig,
	allSpaces: isAllSpaces(DefaultConfig.Indent),
}

// FormatJSON renders v as HTML with the default configuration.
func FormatJSON(v any) string {
	return defaultFormatter.Format(v)
}

// Line is one rendered row.
type Line struct {
	Tokens []Token
	Depth  int
	// Fold is the id of the fold region opened on this line, or 0.
	Fold int
	// Folds are the ids of the fold regions containing this line,
	// outermost first.
	Folds []int
}

// Lines returns the lines v is rendered as.
func (f *Formatter) Lines(v any) []Line {
	s := formatState{breaks: &f.conf.Breaks}
	s.value(v, true)
	return s.finish()
}

// formatState is the state of a single formatting pass.
type formatState struct {
	breaks *BreakPolicy
	lines  []Line
	cur    Line
	depth  int
	folds  []openBlock // open non-root blocks, innermost last
	nfold  int         // last assigned fold id
}

// openBlock is a non-root block whose closing delimiter has not been
// emitted yet.
type openBlock struct {
	id   int // fold id, 0 until the block has a line of its own
	line int // index of the line holding the opening delimiter, -1 if the block is not collapsible
}

func (s *formatState) emit(t Token) {
	s.cur.Tokens = append(s.cur.Tokens, t)
}

// trigger starts a new line if the policy forces a break at t and the
// current line is not empty.
func (s *formatState) trigger(t Trigger) {
	if !s.breaks[t] || len(s.cur.Tokens) == 0 {
		return
	}
	s.lines = append(s.lines, s.cur)
	s.cur = Line{Depth: s.depth}
	s.assignFolds()
	for _, b := range s.folds {
		if b.id != 0 {
			s.cur.Folds = append(s.cur.Folds, b.id)
		}
	}
}

// assignFolds gives an id to every block that was opened before the last
// break and now has a line of its own. Only the first block opened on a
// line is collapsible, and the root line never starts a fold region.
func (s *formatState) assignFolds() {
	for i := range s.folds {
		b := &s.folds[i]
		if b.id != 0 || b.line < 0 {
			continue
		}
		if b.line == 0 || s.lines[b.line].Fold != 0 {
			b.line = -1
			continue
		}
		s.nfold++
		b.id = s.nfold
		s.lines[b.line].Fold = b.id
	}
}

// openFold registers a block opened on the current line. Its fold id is
// assigned by the first break inside the block.
func (s *formatState) openFold() {
	s.folds = append(s.folds, openBlock{line: len(s.lines)})
}

// closeFold drops the innermost block. A block that never had a line of
// its own does not get a fold id.
func (s *formatState) closeFold() {
	s.folds = s.folds[:len(s.folds)-1]
}

func (s *formatState) finish() []Line {
	if len(s.cur.Tokens) != 0 {
		s.lines = append(s.lines, s.cur)
	}
	s.cur = Line{}
	return s.lines
}

// block formats an array or object of n items. The document root is
// never collapsible.
func (s *formatState) block(open, close, sep Class, n int, root bool, item func(i int)) {
	s.trigger(BeforeBlock)
	s.emit(delimToken(open))
	if n > 0 {
		if !root {
			s.openFold()
		}
		s.depth++
		s.trigger(BeforeItems)
		for i := 0; i < n; i++ {
			if i > 0 {
				s.trigger(BeforeSeparator)
				s.emit(Token{Class: sep, Text: ","})
				s.trigger(AfterSeparator)
			}
			item(i)
		}
		if !root {
			s.closeFold()
		}
		// The closing line is created at the item depth and dedented by
		// absorbsLeadingDelimiter.
		s.trigger(AfterItems)
		s.depth--
	}
	s.emit(delimToken(close))
	s.trigger(AfterBlock)
}

func (s *formatState) object(obj Object, root bool) {
	s.block(ClassObjectOpen, ClassObjectClose, ClassObjectSeparator, len(obj), root, func(i int) {
		s.emit(quotedToken(ClassKey, obj[i].Key))
		s.emit(Token{Class: ClassPropertySeparator, Text: ": "})
		s.value(obj[i].Value, false)
	})
}

func (s *formatState) array(arr []any, root bool) {
	s.block(ClassArrayOpen, ClassArrayClose, ClassArraySeparator, len(arr), root, func(i int) {
		s.value(arr[i], false)
	})
}

func (s *formatState) value(v any, root bool) {
	switch v := v.(type) {
	case nil:
		s.emit(Token{Class: ClassNull, Text: "null"})
	case bool:
		if v {
			s.emit(Token{Class: ClassTrue, Text: "true"})
		} else {
			s.emit(Token{Class: ClassFalse, Text: "false"})
		}
	case string:
		s.emit(quotedToken(ClassString, v))
	case json.Number:
		s.emit(Token{Class: ClassNumber, Text: string(v)})
	case float64:
		s.emit(Token{Class: ClassNumber, Text: formatFloat(v, 64)})
	case float32:
		s.emit(Token{Class: ClassNumber, Text: formatFloat(float64(v), 32)})
	case int:
		s.emit(Token{Class: ClassNumber, Text: strconv.Itoa(v)})
	case int64:
		s.emit(Token{Class: ClassNumber, Text: strconv.FormatInt(v, 10)})
	case int32:
		s.emit(Token{Class: ClassNumber, Text: strconv.FormatInt(int64(v), 10)})
	case uint64:
		s.emit(Token{Class: ClassNumber, Text: strconv.FormatUint(v, 10)})
	case uint32:
		s.emit(Token{Class: ClassNumber, Text: strconv.FormatUint(uint64(v), 10)})
	case uint:
		s.emit(Token{Class: ClassNumber, Text: strconv.FormatUint(uint64(v), 10)})
	case Object:
		s.object(v, root)
	case []any:
		s.array(v, root)
	case map[string]any:
		s.object(sortedObject(v), root)
	default:
		s.emit(Token{Class: ClassUnknown, Text: fmt.Sprint(v)})
	}
}

func delimToken(c Class) Token {
	switch c {
	case ClassObjectOpen:
		return Token{Class: c, Text: "{"}
	case ClassObjectClose:
		return Token{Class: c, Text: "}"}
	case ClassArrayOpen:
		return Token{Class: c, Text: "["}
	default:
		return Token{Class: c, Text: "]"}
	}
}

// sortedObject converts m to an Object ordered by key, since Go maps have
// no member order.
func sortedObject(m map[string]any) Object {
	obj := make(Object, 0, len(m))
	for k, v := range m {
		obj = append(obj, Member{Key: k, Value: v})
	}
	sort.Slice(obj, func(i, j int) bool {
		return obj[i].Key < obj[j].Key
	})
	return obj
}

// formatFloat formats f the way encoding/json does: plain decimal
// notation for magnitudes in [1e-6, 1e21) and exponent notation with a
// minimal exponent otherwise.
func formatFloat(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	abs := math.Abs(f)
	fmtc := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmtc = 'e'
		}
	}
	s := strconv.FormatFloat(f, fmtc, -1, bits)
	if fmtc == 'e' {
		// clean up e-09 to e-9
		if n := len(s); n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	return s
}

// Format renders v as HTML.
func (f *Formatter) Format(v any) string {
	lines := f.Lines(v)
	var b strings.Builder
	b.WriteString(`<pre class="json">`)
	for i := range lines {
		f.writeLine(&b, &lines[i])
	}
	b.WriteString(`</pre>`)
	return b.String()
}
