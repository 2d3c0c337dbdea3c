package deco

// Kind classifies a reported waypoint.
type Kind uint8

// Waypoint kinds.
const (
	KindDive        Kind = iota // caller-supplied bottom profile segment
	KindTravel                  // coalesced ascent between reported waypoints
	KindGasSwitch               // one-minute hold on a new gas
	KindDecoStop                // mandatory decompression stop
	KindNoDecoLimit             // bottom time extended to the NDL
	KindSafetyStop              // optional stop on a no-deco ascent
	KindSurfaced                // final ascent reaching the surface
)

var kindNames = [...]string{
	KindDive:        "dive",
	KindTravel:      "travel",
	KindGasSwitch:   "gas_switch",
	KindDecoStop:    "deco_stop",
	KindNoDecoLimit: "ndl",
	KindSafetyStop:  "safety_stop",
	KindSurfaced:    "surface",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// Waypoint is a reporting record: the depth reached, the minutes it took
// and the gas breathed.
type Waypoint struct {
	Depth float64
	Time  float64
	Gas   Gas
}

// WaypointSink receives waypoints as a plan is computed. It gets a copy of
// the state right after the waypoint, so it cannot alter the plan.
type WaypointSink interface {
	OnWaypoint(state State, wp Waypoint, kind Kind)
}

// SinkFunc adapts a function to [WaypointSink].
type SinkFunc func(state State, wp Waypoint, kind Kind)

// OnWaypoint calls f.
func (f SinkFunc) OnWaypoint(state State, wp Waypoint, kind Kind) {
	f(state, wp, kind)
}

// Event is a waypoint as captured by [Recorder].
type Event struct {
	Waypoint
	Kind Kind
}

// Recorder is a [WaypointSink] that keeps every waypoint in order.
type Recorder struct {
	Events []Event
}

// OnWaypoint appends the waypoint.
func (r *Recorder) OnWaypoint(_ State, wp Waypoint, kind Kind) {
	r.Events = append(r.Events, Event{Waypoint: wp, Kind: kind})
}

// Kinds returns the kinds of all recorded events.
func (r *Recorder) Kinds() []Kind {
	kinds := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}

	return kinds
}

func emit(sink WaypointSink, s *State, wp Waypoint, kind Kind) {
	if sink != nil {
		sink.OnWaypoint(*s, wp, kind)
	}
}
