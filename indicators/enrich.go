package indicators

import "github.com/quantfold/structure/market"

// Enrich fills the indicator columns a loaded series is missing: ATR with
// the given period and cumulative VWAP. Columns already present on the
// series are left untouched, so file-supplied values always win.
func Enrich(s *market.Series, atrPeriod int) error {
	if s == nil || s.Len() == 0 {
		return nil
	}

	if !s.HasATR() {
		atr := NewATR(atrPeriod)
		vals := make([]float64, s.Len())
		for i := 0; i < s.Len(); i++ {
			atr.Update(s.At(i))
			if atr.Ready() {
				vals[i] = atr.Value()
			}
		}
		if err := s.SetColumn("atr", vals); err != nil {
			return err
		}
	}

	if !s.HasVWAP() {
		vwap := NewVWAP()
		vals := make([]float64, s.Len())
		for i := 0; i < s.Len(); i++ {
			vwap.Update(s.At(i))
			vals[i] = vwap.Value()
		}
		if err := s.SetColumn("vwap", vals); err != nil {
			return err
		}
	}

	return nil
}
