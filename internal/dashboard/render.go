package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/shrimpsizemoose/examboard/internal/timeline"
)

const clearScreen = "\033[H\033[2J"

type palette struct {
	title    *color.Color
	waiting  *color.Color
	running  *color.Color
	finished *color.Color
	message  *color.Color
	warning  *color.Color
}

var (
	lightPalette = palette{
		title:    color.New(color.Bold),
		waiting:  color.New(color.FgBlue, color.Bold),
		running:  color.New(color.FgGreen, color.Bold),
		finished: color.New(color.FgHiBlack),
		message:  color.New(color.Reset),
		warning:  color.New(color.FgRed),
	}
	darkPalette = palette{
		title:    color.New(color.FgHiWhite, color.Bold),
		waiting:  color.New(color.FgHiBlue, color.Bold),
		running:  color.New(color.FgHiGreen, color.Bold),
		finished: color.New(color.FgWhite),
		message:  color.New(color.FgHiWhite),
		warning:  color.New(color.FgHiRed),
	}
)

// Renderer draws views as plain terminal frames.
type Renderer struct {
	out   io.Writer
	clear bool
}

func NewRenderer(out io.Writer, clear bool) *Renderer {
	return &Renderer{out: out, clear: clear}
}

func (r *Renderer) Render(v View) {
	p := lightPalette
	if v.Dark {
		p = darkPalette
	}
	pad := padding(v.Zoom)

	if r.clear {
		fmt.Fprint(r.out, clearScreen)
	}

	p.title.Fprintf(r.out, "EXAM BOARD%s%s\n\n", pad, v.Clock)
	p.title.Fprintln(r.out, v.Headline)
	statusColor(p, v.Kind).Fprintln(r.out, v.StatusLine)
	fmt.Fprintln(r.out)

	if len(v.Rows) > 0 {
		table := tablewriter.NewWriter(r.out)
		table.SetHeader([]string{"Date", "Period", "Subject", "Start", "End", "Status"})
		table.SetAlignment(tablewriter.ALIGN_CENTER)
		for col := 0; col < 6; col++ {
			table.SetColMinWidth(col, int(8*v.Zoom))
		}
		for _, row := range v.Rows {
			table.Append([]string{
				row.Date,
				row.Period,
				row.Subject,
				row.Start,
				row.End,
				rowStatusColor(p, row.Status).Sprint(statusLabel(row.Status)),
			})
		}
		table.Render()
		fmt.Fprintln(r.out)
	}

	p.message.Fprintln(r.out, v.Message)
	for _, w := range v.Warnings {
		p.warning.Fprintln(r.out, "! "+w)
	}
	fmt.Fprintf(r.out, "\nRoom: %s%szoom %.1f\n", v.Room, pad, v.Zoom)
}

// Notice prints a one-off line below the board, e.g. a command result.
func (r *Renderer) Notice(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Renderer) Error(format string, args ...any) {
	color.New(color.FgRed).Fprintf(r.out, format+"\n", args...)
}

func padding(zoom float64) string {
	n := int(zoom*4 + 0.5)
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", n)
}

func statusColor(p palette, k Kind) *color.Color {
	switch k {
	case KindRunning:
		return p.running
	case KindWaiting:
		return p.waiting
	default:
		return p.finished
	}
}

func rowStatusColor(p palette, s timeline.Status) *color.Color {
	switch s {
	case timeline.InProgress:
		return p.running
	case timeline.NotStarted:
		return p.waiting
	default:
		return p.finished
	}
}

func statusLabel(s timeline.Status) string {
	switch s {
	case timeline.NotStarted:
		return "Not started"
	case timeline.InProgress:
		return "In progress"
	default:
		return "Ended"
	}
}
