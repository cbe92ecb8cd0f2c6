package signal

// Metrics is the injectable observability sink. Implementations must be safe
// for concurrent use; the engine calls them inline on every evaluation.
type Metrics interface {
	// Evaluation is recorded once per entry or exit evaluation.
	Evaluation(kind string)
	// Signal is recorded when an entry fires or an exit triggers.
	Signal(kind, direction string)
	// Reject is recorded with the gating stage that stopped an entry.
	Reject(stage string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) Evaluation(string)     {}
func (NopMetrics) Signal(string, string) {}
func (NopMetrics) Reject(string)         {}
