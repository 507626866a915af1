package throwsim

// cycleStats holds per-cycle metrics. Only collected when LoopConfig.Debug
// is set.
type cycleStats struct {
	elapsed float64
	updates int
	alpha   float64
	events  int
}

// logStats writes one debug record per cycle.
func (l *Loop) logStats(stats cycleStats) {
	l.log.Debug("step",
		"elapsed", stats.elapsed,
		"updates", stats.updates,
		"alpha", stats.alpha,
		"events", stats.events,
		"accumulator", l.accumulator,
		"state", l.state.String(),
	)
}
