// SPDX-License-Identifier: MIT

package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/cdpwalk/compare"
)

// Chart geometry in SVG user units.
const (
	svgWidth   = 1400
	svgHeight  = 600
	panelWidth = svgWidth / 2
	marginL    = 80
	marginR    = 30
	marginT    = 60
	marginB    = 70
	tickCount  = 5
	crossHalf  = 5
	dotRadius  = 4

	colorPredicted = "orange"
	colorSimulated = "blue"
)

// WriteSVG renders both panels side by side: predictions as dots, simulated
// fractions as crosses, site j on the x axis and p_j on the y axis.
func WriteSVG(w io.Writer, rep compare.Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`+"\n",
		svgWidth, svgHeight, svgWidth, svgHeight)
	fmt.Fprintf(bw, `<rect width="%d" height="%d" fill="white"/>`+"\n", svgWidth, svgHeight)

	writePanel(bw, 0, rep.Asymmetric,
		fmt.Sprintf("Asymmetric case with n = %d walkers and r = %s", rep.Asymmetric.Walkers, formatFloat(rep.Asymmetric.Right)),
		"p_j (as)")
	writePanel(bw, panelWidth, rep.Symmetric,
		fmt.Sprintf("Symmetric case with n = %d walkers", rep.Symmetric.Walkers),
		"p_j (s)")

	fmt.Fprintln(bw, "</svg>")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("report: svg: %w", err)
	}

	return nil
}

// writePanel draws one panel whose left edge is at x0.
func writePanel(w io.Writer, x0 int, p compare.Panel, title, ylabel string) {
	plotW := float64(panelWidth - marginL - marginR)
	plotH := float64(svgHeight - marginT - marginB)
	left := float64(x0 + marginL)
	top := float64(marginT)
	bottom := top + plotH

	lo, hi := 1, 2
	if len(p.Sites) > 0 {
		lo, hi = p.Sites[0], p.Sites[len(p.Sites)-1]
		if hi == lo {
			hi = lo + 1
		}
	}
	px := func(site int) float64 { return left + plotW*float64(site-lo)/float64(hi-lo) }
	py := func(v float64) float64 { return bottom - plotH*v }

	// axes and title
	fmt.Fprintf(w, `<text x="%.1f" y="%d" font-size="18" text-anchor="middle">%s</text>`+"\n", left+plotW/2, marginT-25, title)
	fmt.Fprintf(w, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="black"/>`+"\n", left, top, plotW, plotH)
	fmt.Fprintf(w, `<text x="%.1f" y="%d" font-size="16" text-anchor="middle">j</text>`+"\n", left+plotW/2, svgHeight-20)
	fmt.Fprintf(w, `<text x="%.1f" y="%.1f" font-size="16" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
		left-55, top+plotH/2, left-55, top+plotH/2, ylabel)

	// y ticks at 0, 0.25, ..., 1
	for k := 0; k < tickCount; k++ {
		v := float64(k) / float64(tickCount-1)
		y := py(v)
		fmt.Fprintf(w, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", left-5, y, left, y)
		fmt.Fprintf(w, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="end">%.2f</text>`+"\n", left-8, y+4, v)
	}
	// x ticks on every site, labelled at the ends
	for _, s := range p.Sites {
		x := px(s)
		fmt.Fprintf(w, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", x, bottom, x, bottom+5)
		if s == lo || s == hi {
			fmt.Fprintf(w, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">%d</text>`+"\n", x, bottom+20, s)
		}
	}

	for i, s := range p.Sites {
		x := px(s)
		fmt.Fprintf(w, `<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"/>`+"\n", x, py(p.Predicted[i]), dotRadius, colorPredicted)
		y := py(p.Simulated[i])
		fmt.Fprintf(w, `<path d="M%.1f %.1fH%.1fM%.1f %.1fV%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			x-crossHalf, y, x+crossHalf, x, y-crossHalf, y+crossHalf, colorSimulated)
	}

	// legend
	lx, ly := left+plotW-150, top+20
	fmt.Fprintf(w, `<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"/>`+"\n", lx, ly, dotRadius, colorPredicted)
	fmt.Fprintf(w, `<text x="%.1f" y="%.1f" font-size="14">prediction</text>`+"\n", lx+12, ly+5)
	fmt.Fprintf(w, `<path d="M%.1f %.1fH%.1fM%.1f %.1fV%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		lx-crossHalf, ly+22, lx+crossHalf, lx, ly+22-crossHalf, ly+22+crossHalf, colorSimulated)
	fmt.Fprintf(w, `<text x="%.1f" y="%.1f" font-size="14">simulation</text>`+"\n", lx+12, ly+27)
}
