// Package output renders plans for the terminal and exports them as JSON.
package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/term"

	"github.com/tsegers/opendeco/internal/gasname"
	"github.com/tsegers/opendeco/internal/plan"
	"github.com/tsegers/opendeco/pkg/deco"
)

// Options controls rendering.
type Options struct {
	ShowTravel bool
	Color      bool
	Lang       string
}

// ColorEnabled resolves a color mode ("auto", "always", "never") for w.
// Auto enables colour only when w is a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Renderer writes plans as text tables.
type Renderer struct {
	w    io.Writer
	opts Options
	po   *gotext.Po

	colorStop    color.Style
	colorSwitch  color.Style
	colorSubtle  color.Style
	colorWarning color.Style
}

// New returns a renderer writing to w.
func New(w io.Writer, opts Options) (*Renderer, error) {
	if opts.Lang == "" {
		opts.Lang = "en"
	}

	po, err := catalogue(opts.Lang)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		w:            w,
		opts:         opts,
		po:           po,
		colorStop:    color.Style{color.FgGreen, color.OpBold},
		colorSwitch:  color.Style{color.FgMagenta, color.OpBold},
		colorSubtle:  color.Style{color.FgGray},
		colorWarning: color.Style{color.FgRed, color.OpBold},
	}, nil
}

func (r *Renderer) paint(s color.Style, text string) string {
	if !r.opts.Color {
		return text
	}

	return s.Sprint(text)
}

func (r *Renderer) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// Plan writes the full plan: table, gas usage, summary and footer.
func (r *Renderer) Plan(p *plan.Plan) {
	r.head()

	var last deco.Gas

	for _, s := range p.Segments {
		if s.Kind == deco.KindTravel && !r.opts.ShowTravel {
			continue
		}

		switched := !s.Gas.Equal(last)
		last = s.Gas

		r.line(p.Config, s, switched)
	}

	r.usage(p.Usage)

	ndl := strconv.Itoa(int(math.Floor(p.NDL)))
	if p.NDLCapped {
		ndl += "+"
	}

	r.printf("\n%s\n", r.po.Get("SUMMARY", ndl, int(math.Ceil(p.TTS)), int(math.Ceil(p.TTSPlus5))))

	r.foot(p)
}

func (r *Renderer) head() {
	r.printf("%s\n\n", r.po.Get("DIVE_PLAN"))
	r.printf(" %-1s  %-5s  %-8s  %-7s  %1s %-9s  %-4s  %-3s\n",
		"", r.po.Get("COL_DEPTH"), r.po.Get("COL_DURATION"), r.po.Get("COL_RUNTIME"),
		"", r.po.Get("COL_GAS"), r.po.Get("COL_PO2"), r.po.Get("COL_EAD"))
}

func (r *Renderer) line(cfg deco.Config, s plan.Segment, switched bool) {
	sign := Sign(cfg, s.From, s.Depth)

	swi := " "
	if switched {
		swi = r.paint(r.colorSwitch, string(SignSwitch))
	}

	pO2, ead := "   -", "  -"

	// pO2 and EAD only on level rows
	if sign == SignLevel {
		pO2 = fmt.Sprintf("%4.2f", deco.PPO2(s.Depth, s.Gas))
		ead = fmt.Sprintf("%3d", EADMetres(cfg, s.Depth, s.Gas))
	}

	text := fmt.Sprintf(" %c  %4dm  %8s  %-7s  ", sign, Metres(cfg, s.Depth), MMSS(s.Time),
		"("+strconv.Itoa(int(math.Ceil(s.Runtime)))+")")
	rest := fmt.Sprintf(" %-9s  %s  %s", gasname.Format(s.Gas), pO2, ead)

	switch s.Kind {
	case deco.KindDecoStop, deco.KindSafetyStop:
		text, rest = r.paint(r.colorStop, text), r.paint(r.colorStop, rest)
	case deco.KindTravel:
		text, rest = r.paint(r.colorSubtle, text), r.paint(r.colorSubtle, rest)
	}

	r.printf("%s%s%s\n", text, swi, rest)
}

func (r *Renderer) usage(usage []plan.GasUsage) {
	r.printf("\n")

	for _, u := range usage {
		r.printf("%-12s%5d%c\n", gasname.Format(u.Gas)+":", int(math.Ceil(u.Litres)), Litre)
	}
}

func (r *Renderer) foot(p *plan.Plan) {
	cfg := p.Config

	r.printf("\n%s\n", r.po.Get("DECO_MODEL", cfg.Model.String()))
	r.printf("%s\n", r.po.Get("CONSERVATISM", p.Dive.GFLow, p.Dive.GFHigh, cfg.Rq()))
	r.printf("%s\n\n", r.po.Get("SURFACE_PRESSURE", cfg.SurfacePressure))

	warning := r.po.Get("WARNING_LINE_1") + "\n" + r.po.Get("WARNING_LINE_2")
	r.printf("%s\n", r.paint(r.colorWarning, warning))
}

// NDLTable writes a no-decompression table.
func (r *Renderer) NDLTable(gas deco.Gas, gfLow, gfHigh int, rows []plan.NDLRow) {
	r.printf("%s\n", r.po.Get("NDL_TABLE"))
	r.printf("%s\n\n", r.po.Get("NDL_TABLE_GAS", gasname.Format(gas), gfLow, gfHigh))
	r.printf(" %-5s  %-5s  %-4s\n", r.po.Get("COL_DEPTH"), r.po.Get("COL_NDL"), r.po.Get("COL_PO2"))

	for _, row := range rows {
		ndl := strconv.Itoa(int(math.Floor(row.NDL)))
		if row.Capped {
			ndl += "+"
		}

		line := fmt.Sprintf(" %4dm  %5s  %4.2f", int(math.Round(row.Depth)), ndl, row.PPO2)

		if row.BeyondMOD {
			line = r.paint(r.colorWarning, line+"  "+r.po.Get("BEYOND_MOD"))
		}

		r.printf("%s\n", strings.TrimRight(line, " "))
	}
}
