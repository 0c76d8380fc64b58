package render

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/rotisserie/eris"

	"dcrhub/internal/formatter"
	"dcrhub/internal/models"
)

// Terminal styles. StylePlain prints the aligned markdown unstyled.
const (
	StylePlain = "plain"
	StyleAuto  = "auto"
)

// Styler turns markdown into terminal output.
type Styler struct {
	term *glamour.TermRenderer
}

// NewStyler creates a styler. StylePlain and "" leave markdown untouched,
// StyleAuto picks a style from the terminal background, and any other value
// names a glamour standard style such as "dark" or "notty".
func NewStyler(style string, width int) (*Styler, error) {
	var opt glamour.TermRendererOption

	switch style {
	case "", StylePlain:
		return &Styler{}, nil
	case StyleAuto:
		opt = glamour.WithAutoStyle()
	default:
		opt = glamour.WithStandardStyle(style)
	}

	term, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, eris.Wrapf(err, "create %s terminal renderer", style)
	}

	return &Styler{term: term}, nil
}

// Style renders md for the terminal.
func (s *Styler) Style(md string) (string, error) {
	if s.term == nil {
		return md, nil
	}

	out, err := s.term.Render(md)
	if err != nil {
		return "", eris.Wrap(err, "style markdown")
	}

	return out, nil
}

// TerminalRenderer writes each render as a (styled) markdown table to w.
type TerminalRenderer struct {
	w      io.Writer
	styler *Styler
	err    error
	mu     sync.Mutex
}

// NewTerminalRenderer creates a renderer writing to w.
func NewTerminalRenderer(w io.Writer, styler *Styler) *TerminalRenderer {
	return &TerminalRenderer{w: w, styler: styler}
}

// Render writes the status line and the results table.
func (r *TerminalRenderer) Render(records []models.DisplayRecord, status string) {
	r.write(formatter.ResultsMarkdown(records, status))
}

// RenderError writes the error message.
func (r *TerminalRenderer) RenderError(message string) {
	r.write(message + "\n")
}

// RenderCards writes one section per meeting.
func (r *TerminalRenderer) RenderCards(meetings []models.Meeting, status string) {
	r.write(formatter.CardsMarkdown(meetings, status))
}

// Err returns the first write error.
func (r *TerminalRenderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

func (r *TerminalRenderer) write(md string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out, err := r.styler.Style(md)
	if err == nil {
		_, err = io.WriteString(r.w, ensureNewline(out))
		err = eris.Wrap(err, "write output")
	}

	if r.err == nil {
		r.err = err
	}
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}
