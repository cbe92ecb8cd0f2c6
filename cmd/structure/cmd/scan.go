package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantfold/structure/config"
	"github.com/quantfold/structure/indicators"
	"github.com/quantfold/structure/journal"
	"github.com/quantfold/structure/logger"
	"github.com/quantfold/structure/market"
	"github.com/quantfold/structure/metrics"
	"github.com/quantfold/structure/pkg/id"
	"github.com/quantfold/structure/signal"
)

// minScanCandles is where the walk-forward loop starts; entry evaluation
// needs at least this much history anyway.
const minScanCandles = 50

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Walk a candle CSV forward and report detected signals",
	Long: `Scan replays a CSV candle file one candle at a time, evaluating the
detection pipeline on each step exactly as a live feed would, and reports
every entry and exit signal. Decisions can be journaled to CSV or SQLite.

Example:
  structure scan --csv eurusd_m15.csv --htf-csv eurusd_h4.csv --symbol EUR_USD`,
	RunE: runScan,
}

var (
	scanConfigPath string
	scanCSVPath    string
	scanHTFPath    string
	scanSymbol     string
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanConfigPath, "config", "f", "", "path to YAML config file")
	scanCmd.Flags().StringVar(&scanCSVPath, "csv", "", "path to candle CSV file (required)")
	scanCmd.Flags().StringVar(&scanHTFPath, "htf-csv", "", "path to higher-timeframe candle CSV file")
	scanCmd.Flags().StringVar(&scanSymbol, "symbol", "UNKNOWN", "symbol recorded in journal entries")
	scanCmd.MarkFlagRequired("csv")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(scanConfigPath)
	if err != nil {
		return err
	}

	log, err := logger.NewStderr(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	s, err := loadCandles(scanCSVPath, log)
	if err != nil {
		return err
	}

	var htf *market.Series
	if scanHTFPath != "" {
		htf, err = loadCandles(scanHTFPath, log)
		if err != nil {
			return err
		}
	}

	var sink signal.Metrics = signal.NopMetrics{}
	if cfg.Metrics.Enabled {
		sink = metrics.New(prometheus.DefaultRegisterer)
		go serveMetrics(cfg.Metrics.Listen, log)
	}

	jnl, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if jnl != nil {
		defer jnl.Close()
	}

	eng, err := signal.New(cfg.Engine, log, sink)
	if err != nil {
		return err
	}

	var (
		open    bool
		dir     market.TradeDirection
		entries int
		exits   int
	)
	for n := minScanCandles; n <= s.Len(); n++ {
		ps := s.Prefix(n)
		at := ps.Last().Time

		var hs *market.Series
		if htf != nil {
			hs = htf.UpTo(at)
		}

		if open {
			dec, err := eng.EvaluateExit(ps, dir)
			if err != nil {
				return err
			}
			if dec.Exit {
				open = false
				exits++
				fmt.Printf("%s  EXIT  %-5s  %s\n", at.Format(time.RFC3339), dir, dec.Reason)
				record(jnl, log, journal.DecisionRecord{
					ID:        id.New(),
					Symbol:    scanSymbol,
					Time:      at,
					Kind:      "exit",
					Signal:    true,
					Direction: dir.String(),
					Reason:    dec.Reason,
				})
			}
			continue
		}

		dec, err := eng.EvaluateEntry(ps, hs)
		if err != nil {
			return err
		}
		if !dec.Signal {
			continue
		}

		open = true
		dir = dec.Direction
		entries++

		grade := ""
		if dec.Details.Grade != nil {
			grade = dec.Details.Grade.Letter.String()
		}
		fmt.Printf("%s  ENTRY %-5s  grade=%s conf=%.2f weight=%.2f stop=%.5f  %s\n",
			at.Format(time.RFC3339), dir, grade, dec.Confidence, dec.Weight, dec.Stop, dec.Reason)
		record(jnl, log, journal.DecisionRecord{
			ID:         id.New(),
			Symbol:     scanSymbol,
			Time:       at,
			Kind:       "entry",
			Signal:     true,
			Direction:  dir.String(),
			Reason:     dec.Reason,
			Confidence: dec.Confidence,
			Weight:     dec.Weight,
			Grade:      grade,
			Stop:       dec.Stop,
		})
	}

	st := eng.Stats()
	fmt.Printf("\nScanned %d candles: %d entries, %d exits (%d evaluations, %d rejections)\n",
		s.Len(), entries, exits, st.Evaluations, st.Rejects)
	return nil
}

func loadCandles(path string, log zerolog.Logger) (*market.Series, error) {
	s, report, err := market.LoadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if report.BadLines > 0 {
		log.Warn().Str("file", path).Int("bad_lines", report.BadLines).Msg("skipped malformed rows")
	}
	if err := indicators.Enrich(s, indicators.DefaultATRPeriod); err != nil {
		return nil, fmt.Errorf("enrich %s: %w", path, err)
	}
	log.Info().Str("file", path).Int("candles", s.Len()).Msg("loaded candles")
	return s, nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.Path)
	case "sqlite":
		return journal.NewSQLite(cfg.Path)
	}
	return nil, nil
}

func record(jnl journal.Journal, log zerolog.Logger, rec journal.DecisionRecord) {
	if jnl == nil {
		return
	}
	if err := jnl.Record(rec); err != nil {
		log.Error().Err(err).Str("id", rec.ID).Msg("journal write failed")
	}
}

func serveMetrics(listen string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(listen, mux); err != nil {
		log.Error().Err(err).Str("listen", listen).Msg("metrics endpoint failed")
	}
}
