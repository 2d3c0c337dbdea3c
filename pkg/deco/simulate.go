package deco

// SimulateDive replays a bottom profile starting at the surface. Each
// waypoint is reached by a linear segment when its depth differs from the
// previous one and held as a constant-depth segment otherwise, then reported
// to sink as [KindDive] exactly as supplied.
func (s *State) SimulateDive(waypoints []Waypoint, sink WaypointSink) error {
	depth := s.cfg.SurfacePressure

	for _, wp := range waypoints {
		var err error

		if s.cfg.SameDepth(wp.Depth, depth) {
			_, err = s.AddSegmentConst(wp.Depth, wp.Time, wp.Gas)
		} else {
			_, err = s.AddSegmentAscDec(depth, wp.Depth, wp.Time, wp.Gas)
		}

		if err != nil {
			return err
		}

		depth = wp.Depth

		emit(sink, s, wp, KindDive)
	}

	return nil
}
