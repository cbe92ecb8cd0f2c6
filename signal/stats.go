package signal

import "sync/atomic"

// Stats is a snapshot of the orchestrator's cumulative counters.
type Stats struct {
	Evaluations uint64
	Entries     uint64
	Exits       uint64
	Rejects     uint64
}

// counters is the mutable backing store. Increments are atomic so one
// orchestrator may be shared across goroutines scanning different symbols.
type counters struct {
	evaluations atomic.Uint64
	entries     atomic.Uint64
	exits       atomic.Uint64
	rejects     atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Evaluations: c.evaluations.Load(),
		Entries:     c.entries.Load(),
		Exits:       c.exits.Load(),
		Rejects:     c.rejects.Load(),
	}
}
