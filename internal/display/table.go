package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/backmassage/mkv2mp4/internal/term"
)

// InventoryRow is one file in the inspect table.
type InventoryRow struct {
	Name      string
	Video     int
	Audio     int
	Subtitles int
	TrueHD    bool
	Dropped   int // subtitle streams that will not be converted
	Ignored   int // unrecognized stream entries
}

const maxNameWidth = 50

// PrintInventoryTable writes an aligned stream summary for rows to w.
// TrueHD and dropped-subtitle cells are highlighted.
func PrintInventoryTable(w io.Writer, rows []InventoryRow) {
	nameW := len("File")
	for _, r := range rows {
		if n := utf8.RuneCountInString(r.Name); n > nameW {
			nameW = n
		}
	}
	if nameW > maxNameWidth {
		nameW = maxNameWidth
	}

	header := fmt.Sprintf("  %-*s  %5s  %5s  %4s  %-6s  %7s  %7s",
		nameW, "File", "Video", "Audio", "Subs", "TrueHD", "Dropped", "Ignored")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", len(header)-2))

	for _, r := range rows {
		name := truncateName(r.Name, nameW)
		truehd := colorPad(yesNo(r.TrueHD), 6, r.TrueHD, term.Yellow)
		dropped := colorPadRight(strconv.Itoa(r.Dropped), 7, r.Dropped > 0, term.Red)

		fmt.Fprintf(w, "  %-*s  %5d  %5d  %4d  %s  %s  %7d\n",
			nameW, name, r.Video, r.Audio, r.Subtitles, truehd, dropped, r.Ignored)
	}
	fmt.Fprintln(w)
}

// truncateName shortens s to width runes, ending in "…" when cut.
func truncateName(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-1]) + "…"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// colorPad pads a plain string to width, then wraps it in c when hot.
// Padding first keeps alignment independent of escape sequences.
func colorPad(s string, width int, hot bool, c *color.Color) string {
	padded := fmt.Sprintf("%-*s", width, s)
	if hot {
		return c.Sprint(padded)
	}
	return padded
}

func colorPadRight(s string, width int, hot bool, c *color.Color) string {
	padded := fmt.Sprintf("%*s", width, s)
	if hot {
		return c.Sprint(padded)
	}
	return padded
}
