// Package journal persists the engine's entry and exit decisions so a scan
// can be audited after the fact. Two backends exist: append-only CSV and
// SQLite.
package journal

import "time"

// DecisionRecord is one evaluated candle snapshot: what the engine decided
// and why. Rejections are recorded too; Signal marks the actionable ones.
type DecisionRecord struct {
	ID         string
	Symbol     string
	Time       time.Time
	Kind       string // "entry" or "exit"
	Signal     bool
	Direction  string
	Reason     string
	Confidence float64
	Weight     float64
	Grade      string
	Stop       float64
}

type Journal interface {
	Record(DecisionRecord) error
	Close() error
}
