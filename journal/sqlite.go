package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) Record(r DecisionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO decisions
		(id, symbol, time, kind, signal, direction, reason, confidence, weight, grade, stop)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Symbol, r.Time, r.Kind, r.Signal, r.Direction,
		r.Reason, r.Confidence, r.Weight, r.Grade, r.Stop,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
