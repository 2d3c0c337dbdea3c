// Package plan turns a dive described by depth, time and gases into a
// complete decompression plan: bottom profile, ascent schedule, the "+5
// minutes" projection and gas consumption.
package plan

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/tsegers/opendeco/pkg/deco"
)

// Rates and offsets of the planning convention, in metres and minutes.
const (
	DescentRate   = 9 // m/min
	StopIncrement = 3 // m
	OxygenMOD     = 6 // m
	ProjectionAdd = 5 // min
)

// ErrInvalidDive indicates a dive description that cannot be planned.
var ErrInvalidDive = errors.New("invalid dive")

// Dive describes the dive to plan.
type Dive struct {
	Depth     float64 // metres
	Time      float64 // runtime at the end of the bottom phase, minutes
	Gas       deco.Gas
	DecoGases []deco.Gas

	GFLow  int
	GFHigh int

	RMVDive float64 // l/min at the surface
	RMVDeco float64

	// ExtendToNDL spends the remaining no-decompression time at the bottom
	// when the dive does not require stops.
	ExtendToNDL bool
}

// Segment is one reported leg of the plan.
type Segment struct {
	Kind    deco.Kind
	From    float64 // absolute pressure at the start of the leg
	Depth   float64 // absolute pressure at the end of the leg
	Time    float64 // minutes
	Runtime float64 // minutes since leaving the surface
	Gas     deco.Gas
	Ceiling float64 // absolute pressure, at the high gradient factor
	GF99    float64
}

// Level reports whether the leg is held at constant depth.
func (s Segment) Level(cfg deco.Config) bool { return cfg.SameDepth(s.From, s.Depth) }

// GasUsage is the consumption of one gas over the whole plan.
type GasUsage struct {
	Gas    deco.Gas
	Litres float64
}

// Plan is the outcome of [Planner.Plan].
type Plan struct {
	Dive     Dive
	Config   deco.Config
	Segments []Segment
	Usage    []GasUsage

	NDL       float64
	NDLCapped bool // NDL hit the search bound, render as "360+"
	TTS       float64
	TTSPlus5  float64
}

// Planner builds plans with a fixed core policy.
type Planner struct {
	cfg    deco.Config
	logger *slog.Logger
}

// New returns a planner. A nil logger falls back to slog.Default.
func New(cfg deco.Config, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Planner{cfg: cfg, logger: logger.With(slog.String("component", "planner"))}
}

// Plan simulates the dive and its ascent.
func (p *Planner) Plan(d Dive) (*Plan, error) {
	if !(d.Depth > 0) || !(d.Time > 0) {
		return nil, fmt.Errorf("%w: depth and time must be positive", ErrInvalidDive)
	}

	if !(d.RMVDive > 0) || !(d.RMVDeco > 0) {
		return nil, fmt.Errorf("%w: RMV must be positive", ErrInvalidDive)
	}

	d.DecoGases = p.decoGases(d.DecoGases)

	st, err := deco.NewState(p.cfg, d.GFLow, d.GFHigh, deco.MSWToBar(StopIncrement))
	if err != nil {
		return nil, err
	}

	rec := newRecorder(p.cfg, d)
	result := &Plan{Dive: d, Config: p.cfg}

	bottom := p.cfg.AbsDepth(deco.MSWToBar(d.Depth))
	descent := d.Depth / DescentRate

	waypoints := []deco.Waypoint{
		{Depth: bottom, Time: descent, Gas: d.Gas},
		{Depth: bottom, Time: max(1, d.Time-descent), Gas: d.Gas},
	}

	if err := st.SimulateDive(waypoints, rec); err != nil {
		return nil, err
	}

	projection := st.Clone()
	if _, err := projection.AddSegmentConst(bottom, ProjectionAdd, d.Gas); err != nil {
		return nil, err
	}

	plus5, err := projection.CalcDeco(bottom, d.Gas, d.DecoGases, nil)
	if err != nil && !errors.Is(err, deco.ErrNDLBound) {
		return nil, fmt.Errorf("projection: %w", err)
	}

	res, err := st.CalcDeco(bottom, d.Gas, d.DecoGases, rec)

	switch {
	case errors.Is(err, deco.ErrNDLBound):
		result.NDLCapped = true
	case err != nil:
		return nil, err
	}

	result.NDL = res.NDL
	result.TTS = res.TTS
	result.TTSPlus5 = plus5.TTS

	if res.TTS == 0 {
		if err := p.noDecoAscent(st, bottom, d, rec); err != nil {
			return nil, err
		}
	}

	result.Segments = rec.segments
	result.Usage = rec.usage.list()

	p.logger.Debug("plan computed",
		slog.Float64("depth", d.Depth),
		slog.Float64("time", d.Time),
		slog.Int("segments", len(result.Segments)),
		slog.Float64("ndl", result.NDL),
		slog.Float64("tts", result.TTS),
		slog.Float64("tts_plus5", result.TTSPlus5),
	)

	return result, nil
}

// noDecoAscent renders the ascent of a dive without stops, optionally after
// staying for the rest of the NDL.
func (p *Planner) noDecoAscent(st *deco.State, bottom float64, d Dive, rec *recorder) error {
	if d.ExtendToNDL {
		ndl, err := st.ExtendToNDL(bottom, d.Gas, rec)
		if err != nil && !errors.Is(err, deco.ErrNDLBound) {
			return err
		}

		p.logger.Debug("extended to ndl", slog.Float64("minutes", ndl))

		return nil
	}

	_, err := st.SafetyStopAscent(bottom, d.Gas, rec)

	return err
}

// decoGases drops duplicates and pins the MOD of pure oxygen to 6 m.
func (p *Planner) decoGases(gases []deco.Gas) []deco.Gas {
	seen := mapset.New[deco.Gas]()
	out := make([]deco.Gas, 0, len(gases))

	for _, g := range gases {
		if g.O2() == 100 {
			g = g.WithMOD(p.cfg.AbsDepth(deco.MSWToBar(OxygenMOD)))
		}

		if seen.Has(g) {
			p.logger.Debug("duplicate deco gas ignored", slog.String("gas", g.String()))
			continue
		}

		seen.Put(g)
		out = append(out, g)
	}

	return out
}

// recorder turns waypoints into segments and tallies gas usage.
type recorder struct {
	cfg     deco.Config
	dive    Dive
	depth   float64
	runtime float64

	segments []Segment
	usage    *usage
}

func newRecorder(cfg deco.Config, d Dive) *recorder {
	return &recorder{cfg: cfg, dive: d, depth: cfg.SurfacePressure, usage: newUsage()}
}

func (r *recorder) OnWaypoint(st deco.State, wp deco.Waypoint, kind deco.Kind) {
	r.runtime += wp.Time

	avg := r.depth
	if !r.cfg.SameDepth(wp.Depth, r.depth) {
		avg = (wp.Depth + r.depth) / 2
	}

	rmv := r.dive.RMVDeco
	if kind == deco.KindDive || kind == deco.KindNoDecoLimit {
		rmv = r.dive.RMVDive
	}

	r.usage.add(wp.Gas, avg*wp.Time*rmv)

	r.segments = append(r.segments, Segment{
		Kind:    kind,
		From:    r.depth,
		Depth:   wp.Depth,
		Time:    wp.Time,
		Runtime: r.runtime,
		Gas:     wp.Gas,
		Ceiling: math.Max(st.Ceiling(float64(st.GFHigh())), r.cfg.SurfacePressure),
		GF99:    st.GF99(wp.Depth),
	})

	r.depth = wp.Depth
}

// usage keeps per-gas totals in first-use order.
type usage struct {
	index map[deco.Gas]int
	items []GasUsage
}

func newUsage() *usage {
	return &usage{index: map[deco.Gas]int{}}
}

func (u *usage) add(g deco.Gas, litres float64) {
	i, ok := u.index[g]
	if !ok {
		i = len(u.items)
		u.index[g] = i
		u.items = append(u.items, GasUsage{Gas: g})
	}

	u.items[i].Litres += litres
}

func (u *usage) list() []GasUsage {
	return append([]GasUsage(nil), u.items...)
}
