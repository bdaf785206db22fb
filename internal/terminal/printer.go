package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/tojlon/Soccer-Score/internal/api/table"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
)

const columnGap = "  "

type Printer struct {
	out    io.Writer
	header *color.Color
	live   *color.Color
	failed *color.Color
	warn   *color.Color
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		header: color.New(color.Bold),
		live:   color.New(color.FgYellow, color.Bold),
		failed: color.New(color.FgRed),
		warn:   color.New(color.FgHiBlack),
	}
}

// Print writes the board for one competition. A table in the error state is
// reported as an error so the caller can exit non-zero.
func (p *Printer) Print(competition models.Competition, t table.Table, rowErrors []models.RowError) error {
	p.header.Fprintln(p.out, competition.Name)

	if t.Error != "" {
		p.failed.Fprintln(p.out, t.Error)
		return errors.New(t.Error)
	}
	if t.NoGames {
		fmt.Fprintln(p.out, table.NoGamesMessage)
		return nil
	}

	widths := columnWidths(t)
	p.header.Fprintln(p.out, formatLine(t.Columns, widths))
	for _, row := range t.Rows {
		line := formatLine(row.Cells, widths)
		if row.Live {
			p.live.Fprintln(p.out, line)
			continue
		}
		fmt.Fprintln(p.out, line)
	}

	for _, e := range rowErrors {
		p.warn.Fprintf(p.out, "skipped %s\n", e.Error())
	}

	return nil
}

func columnWidths(t table.Table) []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func formatLine(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", w-utf8.RuneCountInString(cell)))
		}
	}
	return b.String()
}
