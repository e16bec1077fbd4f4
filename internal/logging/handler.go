package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const levelPrefix = slog.LevelKey + "="

// Handler construction options.
type Options struct {
	Level   slog.Level // Minimum level to emit.
	Verbose bool       // Include the source location of each record.
	Color   *bool      // Force level coloring on or off. Nil detects a terminal per stream.
}

// A slog handler that routes records to two streams by severity.
//
// Handlers derived through WithAttrs and WithGroup share the level of the
// handler they were derived from, so [Handler.SetLevel] affects all of them.
type Handler struct {
	level *slog.LevelVar // Shared minimum level.
	out   slog.Handler   // Receives records below Warn.
	err   slog.Handler   // Receives Warn and above.
}

// Creates a handler writing informational records to out and warnings and
// errors to errw.
func NewHandler(out, errw io.Writer, opts Options) *Handler {
	level := new(slog.LevelVar)
	level.Set(opts.Level)

	return &Handler{
		level: level,
		out:   textHandler(out, level, opts),
		err:   textHandler(errw, level, opts),
	}
}

// Sets the minimum level for this handler and every handler derived from it.
func (h *Handler) SetLevel(l slog.Level) {
	h.level.Set(l)
}

// Returns the current minimum level.
func (h *Handler) Level() slog.Level {
	return h.level.Level()
}

// Reports whether records at l are emitted.
func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Writes r to the stream selected by its level.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < slog.LevelWarn {
		return h.out.Handle(ctx, r)
	}
	return h.err.Handle(ctx, r)
}

// Returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		level: h.level,
		out:   h.out.WithAttrs(attrs),
		err:   h.err.WithAttrs(attrs),
	}
}

// Returns a handler that qualifies later attributes with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		level: h.level,
		out:   h.out.WithGroup(name),
		err:   h.err.WithGroup(name),
	}
}

func textHandler(w io.Writer, level *slog.LevelVar, opts Options) slog.Handler {
	color := IsTerminal(w)
	if opts.Color != nil {
		color = *opts.Color
	}
	if color {
		w = newColorWriter(w)
	}

	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Verbose,
	})
}

// Colors the level label of each text record written through it.
//
// A text handler issues one Write per record, and the level attribute always
// follows the time, so the first "level=" in a write is the label.
type colorWriter struct {
	w      io.Writer                 // Destination stream.
	styles map[string]lipgloss.Style // Styles keyed by level label.
}

func newColorWriter(w io.Writer) *colorWriter {
	r := lipgloss.NewRenderer(w)
	return &colorWriter{
		w: w,
		styles: map[string]lipgloss.Style{
			slog.LevelDebug.String(): r.NewStyle().Foreground(lipgloss.Color("8")),
			slog.LevelInfo.String():  r.NewStyle().Foreground(lipgloss.Color("12")),
			slog.LevelWarn.String():  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			slog.LevelError.String(): r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
	}
}

func (c *colorWriter) Write(p []byte) (int, error) {
	i := bytes.Index(p, []byte(levelPrefix))
	if i < 0 {
		return c.w.Write(p)
	}
	start := i + len(levelPrefix)

	n := bytes.IndexByte(p[start:], ' ')
	if n < 0 {
		return c.w.Write(p)
	}
	end := start + n

	style, ok := c.styles[string(p[start:end])]
	if !ok {
		return c.w.Write(p)
	}

	var buf bytes.Buffer
	buf.Write(p[:start])
	buf.WriteString(style.Render(string(p[start:end])))
	buf.Write(p[end:])
	if _, err := c.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
