package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/natefinch/atomic"

	"github.com/tsegers/opendeco/internal/gasname"
	"github.com/tsegers/opendeco/internal/plan"
	"github.com/tsegers/opendeco/pkg/deco"
)

// Document is the JSON form of a plan. Depths are in metres.
type Document struct {
	Depth     float64  `json:"depth"`
	Time      float64  `json:"time"`
	Gas       string   `json:"gas"`
	DecoGases []string `json:"deco_gases"`

	Model           string  `json:"model"`
	GFLow           int     `json:"gflow"`
	GFHigh          int     `json:"gfhigh"`
	Rq              string  `json:"rq"`
	SurfacePressure float64 `json:"surface_pressure"`

	Segments []SegmentDoc `json:"segments"`
	Usage    []UsageDoc   `json:"gas_usage"`

	NDL       float64 `json:"ndl"`
	NDLCapped bool    `json:"ndl_capped,omitempty"`
	TTS       float64 `json:"tts"`
	TTSPlus5  float64 `json:"tts_plus5"`
}

// SegmentDoc is one leg of the plan.
type SegmentDoc struct {
	Kind    string  `json:"kind"`
	Depth   float64 `json:"depth"`
	Time    float64 `json:"time"`
	Runtime float64 `json:"runtime"`
	Gas     string  `json:"gas"`
	PPO2    float64 `json:"ppo2"`
	Ceiling float64 `json:"ceiling"`
	GF99    float64 `json:"gf99"`
}

// UsageDoc is the consumption of one gas.
type UsageDoc struct {
	Gas    string  `json:"gas"`
	Litres float64 `json:"litres"`
}

// NewDocument converts a plan.
func NewDocument(p *plan.Plan) Document {
	cfg := p.Config
	metres := func(depth float64) float64 { return deco.BarToMSW(cfg.GaugeDepth(depth)) }

	doc := Document{
		Depth:           p.Dive.Depth,
		Time:            p.Dive.Time,
		Gas:             gasname.Format(p.Dive.Gas),
		DecoGases:       make([]string, 0, len(p.Dive.DecoGases)),
		Model:           cfg.Model.String(),
		GFLow:           p.Dive.GFLow,
		GFHigh:          p.Dive.GFHigh,
		Rq:              cfg.Rq(),
		SurfacePressure: cfg.SurfacePressure,
		Segments:        make([]SegmentDoc, 0, len(p.Segments)),
		Usage:           make([]UsageDoc, 0, len(p.Usage)),
		NDL:             p.NDL,
		NDLCapped:       p.NDLCapped,
		TTS:             p.TTS,
		TTSPlus5:        p.TTSPlus5,
	}

	for _, g := range p.Dive.DecoGases {
		doc.DecoGases = append(doc.DecoGases, gasname.Format(g))
	}

	for _, s := range p.Segments {
		doc.Segments = append(doc.Segments, SegmentDoc{
			Kind:    s.Kind.String(),
			Depth:   metres(s.Depth),
			Time:    s.Time,
			Runtime: s.Runtime,
			Gas:     gasname.Format(s.Gas),
			PPO2:    deco.PPO2(s.Depth, s.Gas),
			Ceiling: metres(s.Ceiling),
			GF99:    s.GF99,
		})
	}

	for _, u := range p.Usage {
		doc.Usage = append(doc.Usage, UsageDoc{Gas: gasname.Format(u.Gas), Litres: u.Litres})
	}

	return doc
}

// Export writes the plan as indented JSON to path, replacing it atomically.
func Export(path string, p *plan.Plan) error {
	data, err := json.MarshalIndent(NewDocument(p), "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
