package plan_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsegers/opendeco/internal/plan"
	"github.com/tsegers/opendeco/pkg/deco"
)

func mustGas(t *testing.T, o2, he int) deco.Gas {
	t.Helper()

	g, err := deco.NewGas(o2, he, deco.ModAuto)
	require.NoError(t, err)

	return g
}

func abs(msw float64) float64 {
	return deco.DefaultConfig().AbsDepth(deco.MSWToBar(msw))
}

type leg struct {
	Kind  deco.Kind
	Depth float64
	Time  float64
}

func legs(segments []plan.Segment) []leg {
	out := make([]leg, len(segments))
	for i, s := range segments {
		out[i] = leg{Kind: s.Kind, Depth: s.Depth, Time: s.Time}
	}

	return out
}

func kinds(segments []plan.Segment) []deco.Kind {
	out := make([]deco.Kind, len(segments))
	for i, s := range segments {
		out[i] = s.Kind
	}

	return out
}

func Test_Plan_Builds_Descent_And_Bottom_From_Depth_And_Time(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)
	ean32 := mustGas(t, 32, 0)

	res, err := p.Plan(plan.Dive{
		Depth: 30, Time: 120, Gas: ean32,
		DecoGases: []deco.Gas{mustGas(t, 50, 0)},
		GFLow:     30, GFHigh: 75,
		RMVDive: 20, RMVDeco: 15,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Segments), 3)

	want := []leg{
		{Kind: deco.KindDive, Depth: abs(30), Time: 30.0 / 9},
		{Kind: deco.KindDive, Depth: abs(30), Time: 120 - 30.0/9},
	}

	if diff := cmp.Diff(want, legs(res.Segments[:2]), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("bottom profile mismatch (-want +got):\n%s", diff)
	}

	last := res.Segments[len(res.Segments)-1]
	assert.Equal(t, deco.KindSurfaced, last.Kind)

	// switch holds run the clock but are not part of TTS
	holds := 0.0

	for _, s := range res.Segments {
		if s.Kind == deco.KindGasSwitch {
			holds += s.Time
		}
	}

	assert.InDelta(t, 1.0, holds, 1e-9)
	assert.InDelta(t, res.Segments[1].Runtime+res.TTS+holds, last.Runtime, 1e-6)

	assert.Zero(t, res.NDL)
	assert.Greater(t, res.TTS, 0.0)
	assert.GreaterOrEqual(t, res.TTSPlus5, res.TTS)
	assert.True(t, res.Segments[1].Level(res.Config))
	assert.False(t, res.Segments[0].Level(res.Config))
}

func Test_Plan_Tallies_Gas_Usage_In_First_Use_Order(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)
	ean32 := mustGas(t, 32, 0)
	ean50 := mustGas(t, 50, 0)

	res, err := p.Plan(plan.Dive{
		Depth: 30, Time: 120, Gas: ean32,
		DecoGases: []deco.Gas{ean50},
		GFLow:     30, GFHigh: 75,
		RMVDive: 20, RMVDeco: 15,
	})
	require.NoError(t, err)
	require.Len(t, res.Usage, 2)

	assert.True(t, res.Usage[0].Gas.Equal(ean32))
	assert.True(t, res.Usage[1].Gas.Equal(ean50))

	descent := (abs(30) + deco.DefaultSurfacePressure) / 2 * (30.0 / 9) * 20
	bottom := abs(30) * (120 - 30.0/9) * 20

	assert.Greater(t, res.Usage[0].Litres, descent+bottom)
	assert.Greater(t, res.Usage[1].Litres, 0.0)
}

func Test_Plan_Dedupes_Deco_Gases_And_Pins_Oxygen_To_Six_Metres(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)
	oxygen := mustGas(t, 100, 0)
	ean50 := mustGas(t, 50, 0)

	res, err := p.Plan(plan.Dive{
		Depth: 40, Time: 40, Gas: mustGas(t, 21, 35),
		DecoGases: []deco.Gas{oxygen, ean50, oxygen},
		GFLow:     30, GFHigh: 75,
		RMVDive: 20, RMVDeco: 15,
	})
	require.NoError(t, err)
	require.Len(t, res.Dive.DecoGases, 2)

	assert.Equal(t, 100, res.Dive.DecoGases[0].O2())
	assert.InDelta(t, abs(6), res.Dive.DecoGases[0].MOD(), 1e-9)
	assert.True(t, res.Dive.DecoGases[1].Equal(ean50))

	for _, s := range res.Segments {
		if s.Gas.O2() == 100 {
			assert.LessOrEqual(t, s.Depth, abs(6)+1e-9, "oxygen breathed deeper than 6 m")
		}
	}
}

func Test_Plan_Adds_Safety_Stop_When_No_Deco_Required(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)

	res, err := p.Plan(plan.Dive{
		Depth: 15, Time: 20, Gas: mustGas(t, 21, 0),
		GFLow: 30, GFHigh: 85,
		RMVDive: 20, RMVDeco: 15,
	})
	require.NoError(t, err)

	assert.Greater(t, res.NDL, 0.0)
	assert.Zero(t, res.TTS)
	assert.Equal(t, []deco.Kind{
		deco.KindDive, deco.KindDive, deco.KindTravel, deco.KindSafetyStop, deco.KindSurfaced,
	}, kinds(res.Segments))
}

func Test_Plan_Stays_Until_NDL_When_ExtendToNDL(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)

	res, err := p.Plan(plan.Dive{
		Depth: 15, Time: 20, Gas: mustGas(t, 21, 0),
		GFLow: 30, GFHigh: 85,
		RMVDive: 20, RMVDeco: 15,
		ExtendToNDL: true,
	})
	require.NoError(t, err)

	require.Equal(t, []deco.Kind{
		deco.KindDive, deco.KindDive, deco.KindNoDecoLimit, deco.KindTravel, deco.KindSafetyStop, deco.KindSurfaced,
	}, kinds(res.Segments))
	assert.InDelta(t, res.NDL, res.Segments[2].Time, 1e-9)
}

func Test_Plan_Marks_NDL_Capped_When_Shallow(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)

	res, err := p.Plan(plan.Dive{
		Depth: 5, Time: 30, Gas: mustGas(t, 21, 0),
		GFLow: 30, GFHigh: 85,
		RMVDive: 20, RMVDeco: 15,
	})
	require.NoError(t, err)

	assert.True(t, res.NDLCapped)
	assert.InDelta(t, deco.DefaultNDLLimit, res.NDL, 1e-9)
	assert.Equal(t, deco.KindSurfaced, res.Segments[len(res.Segments)-1].Kind)
}

func Test_Plan_Returns_Error_When_Dive_Invalid(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)
	air := mustGas(t, 21, 0)

	_, err := p.Plan(plan.Dive{Depth: 0, Time: 30, Gas: air, GFLow: 30, GFHigh: 75, RMVDive: 20, RMVDeco: 15})
	require.ErrorIs(t, err, plan.ErrInvalidDive)

	_, err = p.Plan(plan.Dive{Depth: 30, Time: 30, Gas: air, GFLow: 30, GFHigh: 75, RMVDive: 0, RMVDeco: 15})
	require.ErrorIs(t, err, plan.ErrInvalidDive)

	_, err = p.Plan(plan.Dive{Depth: 30, Time: 30, Gas: air, GFLow: 80, GFHigh: 75, RMVDive: 20, RMVDeco: 15})
	require.ErrorIs(t, err, deco.ErrInvalidGradientFactors)
}

func Test_NDLTable_Lists_Each_Depth_And_Flags_MOD(t *testing.T) {
	t.Parallel()

	p := plan.New(deco.DefaultConfig(), nil)

	rows, err := p.NDLTable(mustGas(t, 21, 0), 30, 85, 9, 42, 3)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	first, last := rows[0], rows[len(rows)-1]

	assert.InDelta(t, 9.0, first.Depth, 1e-9)
	assert.InDelta(t, 42.0, last.Depth, 1e-9)
	assert.False(t, first.BeyondMOD)
	assert.True(t, last.BeyondMOD)
	assert.Less(t, last.NDL, first.NDL)
	assert.False(t, last.Capped)

	_, err = p.NDLTable(mustGas(t, 21, 0), 30, 85, 20, 10, 3)
	require.ErrorIs(t, err, plan.ErrInvalidDive)
}

func Test_Segment_Level_Uses_Depth_Tolerance(t *testing.T) {
	t.Parallel()

	cfg := deco.DefaultConfig()

	assert.True(t, plan.Segment{From: abs(6), Depth: abs(6) + 0.005}.Level(cfg))
	assert.False(t, plan.Segment{From: abs(6), Depth: abs(3)}.Level(cfg))
}
