package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const decisionColumns = "id, symbol, time, kind, signal, direction, reason, confidence, weight, grade, stop"

// GetDecision returns a single decision record by ID.
func (j *SQLiteJournal) GetDecision(id string) (DecisionRecord, error) {
	row := j.db.QueryRow(`
		SELECT `+decisionColumns+`
		FROM decisions
		WHERE id = ?`, id)

	rec, err := scanDecision(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return DecisionRecord{}, fmt.Errorf("decision %q not found", id)
		}
		return DecisionRecord{}, err
	}
	return rec, nil
}

// ListDecisionsBetween returns decisions whose time is within [start, end),
// oldest first.
func (j *SQLiteJournal) ListDecisionsBetween(start, end time.Time) ([]DecisionRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+decisionColumns+`
		FROM decisions
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDecisions(rows)
}

// ListSignals returns only the actionable decisions for a symbol.
func (j *SQLiteJournal) ListSignals(symbol string) ([]DecisionRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+decisionColumns+`
		FROM decisions
		WHERE symbol = ? AND signal = 1
		ORDER BY time ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDecisions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDecision(row rowScanner) (DecisionRecord, error) {
	var rec DecisionRecord
	err := row.Scan(
		&rec.ID,
		&rec.Symbol,
		&rec.Time,
		&rec.Kind,
		&rec.Signal,
		&rec.Direction,
		&rec.Reason,
		&rec.Confidence,
		&rec.Weight,
		&rec.Grade,
		&rec.Stop,
	)
	return rec, err
}

func collectDecisions(rows *sql.Rows) ([]DecisionRecord, error) {
	var out []DecisionRecord
	for rows.Next() {
		rec, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
