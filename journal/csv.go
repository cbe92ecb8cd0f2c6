package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{
	"id", "symbol", "time", "kind", "signal", "direction",
	"reason", "confidence", "weight", "grade", "stop",
}

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) Record(r DecisionRecord) error {
	if err := j.w.Write([]string{
		r.ID,
		r.Symbol,
		r.Time.Format(time.RFC3339),
		r.Kind,
		strconv.FormatBool(r.Signal),
		r.Direction,
		r.Reason,
		f(r.Confidence),
		f(r.Weight),
		r.Grade,
		f(r.Stop),
	}); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
