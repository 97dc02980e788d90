// Package termcolor provides the terminal colors used to theme JSON output.
package termcolor

import (
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const Reset = "\x1b[0m"

func IsTerminal(fd int) bool { return term.IsTerminal(fd) }

// TrueColorEnabled reports if the terminal advertises 24-bit color support
// via COLORTERM.
func TrueColorEnabled() bool {
	switch os.Getenv("COLORTERM") {
	case "truecolor", "24bit":
		return true
	}
	return false
}

// A Color is an SGR escape sequence. A nil Color means no color.
type Color interface {
	Format() string
	Append(b []byte) []byte
}

var (
	_ Color = ANSI(0)
	_ Color = Color256(0)
	_ Color = RGB{}
	_ Color = Bold{}
)

// Sprint wraps s in c, if c is not nil.
func Sprint(c Color, s string) string {
	if c == nil {
		return s
	}
	f := c.Format()
	if f == "" {
		return s
	}
	return f + s + Reset
}

type ANSI uint8

// Foreground text colors
const (
	Black ANSI = iota + 30
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

const (
	BrightBlack ANSI = iota + 90
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

var fgColors = [...]string{
	Black:         "\x1b[30m",
	Red:           "\x1b[31m",
	Green:         "\x1b[32m",
	Yellow:        "\x1b[33m",
	Blue:          "\x1b[34m",
	Magenta:       "\x1b[35m",
	Cyan:          "\x1b[36m",
	White:         "\x1b[37m",
	BrightBlack:   "\x1b[90m",
	BrightRed:     "\x1b[91m",
	BrightGreen:   "\x1b[92m",
	BrightYellow:  "\x1b[93m",
	BrightBlue:    "\x1b[94m",
	BrightMagenta: "\x1b[95m",
	BrightCyan:    "\x1b[96m",
	BrightWhite:   "\x1b[97m",
}

func (c ANSI) Format() string {
	if uint(c) < uint(len(fgColors)) {
		if s := fgColors[c]; len(s) != 0 {
			return s
		}
	}
	return "\x1b[" + strconv.FormatUint(uint64(c), 10) + "m"
}

func (c ANSI) Append(b []byte) []byte {
	if uint(c) < uint(len(fgColors)) {
		if s := fgColors[c]; len(s) != 0 {
			return append(b, s...)
		}
	}
	b = append(b, "\x1b["...)
	b = strconv.AppendUint(b, uint64(c), 10)
	return append(b, 'm')
}

// Color256 is an index into the xterm 256 color palette.
type Color256 uint8

func (c Color256) Format() string {
	return string(c.Append(make([]byte, 0, len("\x1b[38;5;255m"))))
}

func (c Color256) Append(b []byte) []byte {
	b = append(b, "\x1b[38;5;"...)
	b = strconv.AppendUint(b, uint64(c), 10)
	return append(b, 'm')
}

type RGB struct {
	R, G, B uint8
}

func (r RGB) Format() string {
	return string(r.Append(make([]byte, 0, len("\x1b[38;2;255;255;255m"))))
}

func (r RGB) Append(b []byte) []byte {
	b = append(b, "\x1b[38;2;"...)
	b = strconv.AppendUint(b, uint64(r.R), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(r.G), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(r.B), 10)
	return append(b, 'm')
}

// Downgrade returns the closest color in the xterm 256 color palette.
func (r RGB) Downgrade() Color256 {
	if r.R == r.G && r.R == r.B {
		if r.R < 8 {
			return 16
		}
		if r.R > 248 {
			return 231
		}
		return Color256(math.Round(((float64(r.R)-8)/247)*24)) + 232
	}
	ansi := 16 + (math.Round(float64(r.R)/255*5) * 36) +
		(math.Round(float64(r.G)/255*5) * 6) +
		math.Round(float64(r.B)/255*5)
	return Color256(ansi)
}

// Bold renders Color in bold. A nil Color is bold in the default color.
type Bold struct {
	Color Color
}

func (x Bold) Format() string {
	return string(x.Append(nil))
}

func (x Bold) Append(b []byte) []byte {
	b = append(b, "\x1b[1m"...)
	if x.Color != nil {
		b = x.Color.Append(b)
	}
	return b
}

var colorNames = map[string]ANSI{
	"black":          Black,
	"red":            Red,
	"green":          Green,
	"yellow":         Yellow,
	"blue":           Blue,
	"magenta":        Magenta,
	"cyan":           Cyan,
	"white":          White,
	"bright-black":   BrightBlack,
	"gray":           BrightBlack,
	"grey":           BrightBlack,
	"bright-red":     BrightRed,
	"bright-green":   BrightGreen,
	"bright-yellow":  BrightYellow,
	"bright-blue":    BrightBlue,
	"bright-magenta": BrightMagenta,
	"bright-cyan":    BrightCyan,
	"bright-white":   BrightWhite,
}

// Parse parses a color name. Accepted forms are a name ("blue",
// "bright-black"), an xterm palette index ("208"), a hex triplet
// ("#ff8800") and any of those prefixed with "bold-". The names "none"
// and "" return a nil Color.
//
// Hex colors are downgraded to the 256 color palette unless trueColor
// is set.
func Parse(name string, trueColor bool) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return nil, nil
	}
	if s := strings.TrimPrefix(name, "bold-"); s != name {
		if s == "" || s == "none" {
			return nil, fmt.Errorf("termcolor: invalid color: %q", name)
		}
		c, err := Parse(s, trueColor)
		if err != nil {
			return nil, err
		}
		return Bold{Color: c}, nil
	}
	if name == "bold" {
		return Bold{}, nil
	}
	if c, ok := colorNames[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		b, err := hex.DecodeString(name[1:])
		if err != nil || len(b) != 3 {
			return nil, fmt.Errorf("termcolor: invalid hex color: %q", name)
		}
		rgb := RGB{R: b[0], G: b[1], B: b[2]}
		if trueColor {
			return rgb, nil
		}
		return rgb.Downgrade(), nil
	}
	if n, err := strconv.ParseUint(name, 10, 8); err == nil {
		return Color256(n), nil
	}
	return nil, fmt.Errorf("termcolor: unknown color: %q", name)
}
