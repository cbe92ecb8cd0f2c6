package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadReport summarizes what the CSV loader skipped. Bad lines are tolerated
// and counted rather than failing the whole load.
type LoadReport struct {
	Rows     int
	BadLines int
}

// csvLayout is for "2006-01-02 15:04:05" style timestamps; RFC3339 and plain
// unix seconds are also accepted.
const csvLayout = "2006-01-02 15:04:05"

// LoadCSV reads a candle file into a Series. The header is required and
// matched case-insensitively: time, open, high, low, close are mandatory;
// volume, atr, vwap and squeeze_on are optional columns surfaced through the
// Series presence flags.
func LoadCSV(path string) (*Series, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open candle file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV for an arbitrary reader.
func ReadCSV(r io.Reader) (*Series, *LoadReport, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read candle header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"time", "open", "high", "low", "close"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("candle header missing %q column", required)
		}
	}
	_, hasVolume := cols["volume"]
	_, hasATR := cols["atr"]
	_, hasVWAP := cols["vwap"]
	_, hasSqueeze := cols["squeeze_on"]

	var (
		candles []Candle
		atr     []float64
		vwap    []float64
		squeeze []bool
		report  LoadReport
	)

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.BadLines++
			continue
		}
		report.Rows++

		ts, err := parseTime(rec[cols["time"]])
		if err != nil {
			report.BadLines++
			continue
		}
		c := Candle{Time: ts}
		ok := true
		for _, fld := range []struct {
			name string
			dst  *float64
		}{
			{"open", &c.Open}, {"high", &c.High}, {"low", &c.Low}, {"close", &c.Close},
		} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[fld.name]]), 64)
			if err != nil {
				ok = false
				break
			}
			*fld.dst = v
		}
		if !ok {
			report.BadLines++
			continue
		}
		if hasVolume {
			// A malformed volume degrades to zero, it never drops the bar.
			c.Volume, _ = strconv.ParseFloat(strings.TrimSpace(rec[cols["volume"]]), 64)
		}
		candles = append(candles, c)

		if hasATR {
			v, _ := strconv.ParseFloat(strings.TrimSpace(rec[cols["atr"]]), 64)
			atr = append(atr, v)
		}
		if hasVWAP {
			v, _ := strconv.ParseFloat(strings.TrimSpace(rec[cols["vwap"]]), 64)
			vwap = append(vwap, v)
		}
		if hasSqueeze {
			squeeze = append(squeeze, parseBool(rec[cols["squeeze_on"]]))
		}
	}

	s := NewSeries(candles)
	if hasATR {
		if err := s.SetColumn("atr", atr); err != nil {
			return nil, nil, err
		}
	}
	if hasVWAP {
		if err := s.SetColumn("vwap", vwap); err != nil {
			return nil, nil, err
		}
	}
	if hasSqueeze {
		if err := s.SetSqueeze(squeeze); err != nil {
			return nil, nil, err
		}
	}
	return s, &report, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(csvLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}
