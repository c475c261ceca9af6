package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/oxygene76/tessobs/internal/types"
)

const dateLayout = "2006-01-02 15:04"

type printer struct {
	w         io.Writer
	highlight *color.Color
	antisolar *color.Color
	earliest  *color.Color
	latest    *color.Color
}

func newPrinter(w io.Writer, enabled bool) *printer {
	p := &printer{
		w:         w,
		highlight: color.New(color.FgMagenta),
		antisolar: color.New(color.FgCyan),
		earliest:  color.New(color.FgRed),
		latest:    color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.highlight, p.antisolar, p.earliest, p.latest} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) resolved(name string) {
	fmt.Fprintln(p.w)
	p.highlight.Fprintf(p.w, "Resolved name as %s\n", name)
}

func (p *printer) report(r *types.Report) {
	fmt.Fprintln(p.w)
	if !r.Observable {
		p.antisolar.Fprintln(p.w, "Ecliptic target not observed by TESS")
		fmt.Fprintln(p.w)
		return
	}

	p.antisolar.Fprintf(p.w, "antisolar date   = %s\n", r.Antisolar.Format(dateLayout))
	p.earliest.Fprintf(p.w, "earliest date    = %s\n", r.Earliest.Format(dateLayout))
	p.latest.Fprintf(p.w, "latest date      = %s\n", r.Latest.Format(dateLayout))

	if r.MultiSector {
		fmt.Fprintln(p.w)
		p.highlight.Fprintf(p.w, "This object might be observed in multiple sectors\nIt has eclat %.4g. The dates here are lower limits.\n\n", r.Ecliptic.Lat)
	}
	fmt.Fprintln(p.w)
}

