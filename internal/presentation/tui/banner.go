package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Cadence ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to indigo gradient.
	lines := []struct {
		text  string
		color string
	}{
		{"   ____          _                     ", "#2dd4bf"},
		{"  / ___|__ _  __| | ___ _ __   ___ ___ ", "#22d3ee"},
		{" | |   / _` |/ _` |/ _ \\ '_ \\ / __/ _ \\", "#38bdf8"},
		{" | |__| (_| | (_| |  __/ | | | (_|  __/", "#60a5fa"},
		{"  \\____\\__,_|\\__,_|\\___|_| |_|\\___\\___|", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
