package printer

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// ErrInvalidConfig signals an invalid renderer configuration.
var ErrInvalidConfig = errors.New("printer: invalid configuration")

// Indent configures Simple.
type Indent struct {
	Width   int      // number of fill characters per level of depth
	Char    rune     // fill character
	Palette *Palette // optional, nil for plain text
}

// DefaultIndent indents by two spaces per level.
var DefaultIndent = Indent{Width: 2, Char: ' '}

func (in Indent) validate() error {
	if in.Width < 0 {
		return fmt.Errorf("%w: negative indent width %d", ErrInvalidConfig, in.Width)
	}
	if in.Width > 0 && in.Char == 0 {
		return fmt.Errorf("%w: indent character is required", ErrInvalidConfig)
	}
	return nil
}

// Branches configures Horizontal. All characters are expected to occupy a
// single display cell.
type Branches struct {
	Sep    int  // number of fill characters between sibling subtrees
	Left   rune // left end of a horizontal branch
	Right  rune // right end of a horizontal branch
	Tee    rune // branch down to an inner child
	Bottom rune // branch up to the parent and down to a child
	Pass   rune // branch up to the parent
	Hor    rune // horizontal line
	Vert   rune // vertical line
	Fill   rune // background
	// Context determines display widths of labels. If nil,
	// uax11.LatinContext is used.
	Context *uax11.Context
	Palette *Palette // optional, nil for plain text
}

// DefaultBranches draws branches with ASCII dots and colons.
var DefaultBranches = Branches{
	Sep:    3,
	Left:   '.',
	Right:  '.',
	Tee:    '.',
	Bottom: ':',
	Pass:   ':',
	Hor:    '.',
	Vert:   ':',
	Fill:   ' ',
}

// BoxBranches draws branches with Unicode box-drawing characters.
var BoxBranches = Branches{
	Sep:    3,
	Left:   '┌',
	Right:  '┐',
	Tee:    '┬',
	Bottom: '┼',
	Pass:   '┴',
	Hor:    '─',
	Vert:   '│',
	Fill:   ' ',
}

func (b Branches) normalized() Branches {
	if b.Context == nil {
		b.Context = uax11.LatinContext
	}
	return b
}

func (b Branches) validate() error {
	if b.Sep < 0 {
		return fmt.Errorf("%w: negative separator width %d", ErrInvalidConfig, b.Sep)
	}
	for _, r := range []rune{b.Left, b.Right, b.Tee, b.Bottom, b.Pass, b.Hor, b.Vert, b.Fill} {
		if r == 0 {
			return fmt.Errorf("%w: all branch characters are required", ErrInvalidConfig)
		}
	}
	return nil
}

// Palette colorizes output. Either of the colors may be nil.
type Palette struct {
	Labels   *color.Color
	Branches *color.Color
}

// DefaultPalette prints labels in bold blue and branches in faint white.
func DefaultPalette() *Palette {
	return &Palette{
		Labels:   color.New(color.FgBlue, color.Bold),
		Branches: color.New(color.FgWhite, color.Faint),
	}
}

func (p *Palette) labels(s string) string {
	if p == nil || p.Labels == nil {
		return s
	}
	return p.Labels.Sprint(s)
}

func (p *Palette) branches(s string) string {
	if p == nil || p.Branches == nil {
		return s
	}
	return p.Branches.Sprint(s)
}

var setupGraphemes sync.Once

// displayWidth returns the number of display cells occupied by s.
func displayWidth(s string, ctx *uax11.Context) int {
	if s == "" {
		return 0
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(s)
	w := 0
	for i := range gstr.Len() {
		g := gstr.Nth(i)
		if len(g) == 1 && g[0] < utf8.RuneSelf {
			// uax11 widens digits, '#' and '*' as emoji keycap bases
			w++
			continue
		}
		w += uax11.Width([]byte(g), ctx)
	}
	return w
}
