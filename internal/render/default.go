package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/lanes/internal/engine"
	"git.lost.host/meutraa/lanes/internal/theme"
	"golang.org/x/term"
)

// Layout places lanes and notes on the terminal grid. Rows and columns are
// 1 based like the cursor escape codes.
type Layout struct {
	Rows, Columns int
	Lanes         int
	Spacing       int
	BarRow        int // rows above the bottom edge
}

// Column centres the lanes, Spacing*2 apart.
func (l Layout) Column(lane int) int {
	return l.Columns/2 + (2*lane-(l.Lanes-1))*l.Spacing
}

func (l Layout) HitRow() int {
	return l.Rows - l.BarRow
}

// Row maps approach progress to a row between the top edge and the hit bar.
func (l Layout) Row(progress float64) int {
	return 1 + int(math.Round(progress*float64(l.HitRow()-1)))
}

// SideColumn is where the score panel starts.
func (l Layout) SideColumn() int {
	col := l.Column(0) - 36
	if col < 2 {
		col = 2
	}
	return col
}

var _ Renderer = &DefaultRenderer{}

type DefaultRenderer struct {
	Layout Layout

	out          io.Writer
	fd           int
	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	drawn        []cell
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

type cell struct {
	row, col int
}

// NewDefaultRenderer sizes the layout from the terminal behind stdout.
func NewDefaultRenderer(lanes, spacing, barRow int) (*DefaultRenderer, error) {
	fd := int(os.Stdout.Fd())
	columns, rows, err := term.GetSize(fd)
	if nil != err {
		return nil, fmt.Errorf("unable to get terminal size: %w", err)
	}
	return &DefaultRenderer{
		Layout: Layout{Rows: rows, Columns: columns, Lanes: lanes, Spacing: spacing, BarRow: barRow},
		out:    os.Stdout,
		fd:     fd,
	}, nil
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(r.fd)
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Fprintf(r.out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(r.fd, r.restoreState)
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", visibleWidth(d.Content)))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per frame period until it returns false.
func (r *DefaultRenderer) RenderLoop(framePeriod time.Duration, render func() bool) {
	for cont := true; cont; {
		deadline := time.Now().Add(framePeriod)

		cont = render()

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

// Frame redraws the lanes: the hit bar and every unjudged note at its
// approach position. Judged notes are left to decorations.
func (r *DefaultRenderer) Frame(now float64, notes []engine.NoteView, th theme.Theme) {
	for _, c := range r.drawn {
		r.Fill(c.row, c.col, " ")
	}
	r.drawn = r.drawn[:0]

	hit := r.Layout.HitRow()
	for lane := 0; lane < r.Layout.Lanes; lane++ {
		r.Fill(hit, r.Layout.Column(lane), th.RenderHitField(lane))
	}

	for _, n := range notes {
		if n.Judged || now < n.SpawnTime {
			continue
		}
		c := cell{row: r.Layout.Row(n.Progress(now)), col: r.Layout.Column(n.Lane)}
		if c.row >= hit {
			continue
		}
		r.Fill(c.row, c.col, th.RenderNote(n.Lane))
		r.drawn = append(r.drawn, c)
	}
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) flush() {
	io.WriteString(r.out, r.buffer.String())
	r.buffer.Reset()
}

// visibleWidth counts runes outside of escape sequences.
func visibleWidth(s string) int {
	w := 0
	inEscape := false
	for _, c := range s {
		switch {
		case c == '\033':
			inEscape = true
		case inEscape:
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				inEscape = false
			}
		default:
			w++
		}
	}
	return w
}
