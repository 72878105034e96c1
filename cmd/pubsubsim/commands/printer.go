// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package commands

import (
	"fmt"
	"io"
	"os"

	"code.hybscloud.com/pubsub/internal/scenario"
	"github.com/fatih/color"
)

// printer writes scenario reports with colored PASS/FAIL markers.
type printer struct {
	w       io.Writer
	verbose bool
	green   *color.Color
	red     *color.Color
	cyan    *color.Color
}

// newPrinter forces color even when w is not a TTY, unless noColor is set
// or NO_COLOR is non-empty.
func newPrinter(w io.Writer, verbose, noColor bool) *printer {
	p := &printer{
		w:       w,
		verbose: verbose,
		green:   color.New(color.FgGreen),
		red:     color.New(color.FgRed, color.Bold),
		cyan:    color.New(color.FgCyan),
	}
	disabled := noColor || os.Getenv("NO_COLOR") != ""
	// Reset codes consult the package-wide switch, which is off for non-TTYs
	color.NoColor = disabled
	for _, c := range []*color.Color{p.green, p.red, p.cyan} {
		if disabled {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

func (p *printer) report(rep *scenario.Report) {
	if rep.Passed() {
		p.green.Fprint(p.w, "PASS")
		fmt.Fprintf(p.w, " %s (%d steps)\n", rep.Name, len(rep.Results))
	} else {
		p.red.Fprint(p.w, "FAIL")
		fmt.Fprintf(p.w, " %s (%d/%d steps failed)\n", rep.Name, rep.Failures(), len(rep.Results))
	}
	for _, res := range rep.Results {
		switch {
		case !res.Passed():
			p.red.Fprint(p.w, "  FAIL")
			fmt.Fprintf(p.w, " step %d: %s: %s\n", res.Index, res.Step, res.Mismatch)
		case p.verbose:
			p.green.Fprint(p.w, "  PASS")
			fmt.Fprintf(p.w, " step %d: %s -> %s\n", res.Index, res.Step, res.Errno)
		}
	}
	if p.verbose {
		m := rep.Metrics
		p.cyan.Fprintf(p.w, "  opens=%d closes=%d writes=%d reads=%d would_block=%d resets=%d\n",
			m.Opens, m.Closes, m.Writes, m.Reads, m.WouldBlocks, m.Resets)
	}
}

func (p *printer) loadError(path string, err error) {
	p.red.Fprint(p.w, "ERROR")
	fmt.Fprintf(p.w, " %s: %v\n", path, err)
}
