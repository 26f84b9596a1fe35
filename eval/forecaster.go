// Package eval defines the hand-off contract between the preparation
// pipeline and a forecasting model, plus simple baselines and error metrics.
// Real models (ARIMA, gradient boosting, and friends) live elsewhere; the
// baselines here give the hand-off a consumer and a floor to beat.
package eval

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tsprep/series"
)

// ErrNotFitted is returned by Predict before Fit has been called.
var ErrNotFitted = errors.New("eval: forecaster not fitted")

// Forecaster consumes the training target series and feature table, then
// produces one prediction per validation row, in order.
type Forecaster interface {
	// Name returns a stable identifier like "naive" or "seasonal_naive(7)".
	Name() string

	// Fit trains on the target series and its aligned feature table.
	// The feature table may be nil for models that ignore features.
	Fit(target []float64, feats *series.Table) error

	// Predict returns predictions aligned one-to-one with the rows of the
	// validation feature table.
	Predict(feats *series.Table) ([]float64, error)
}

// Naive repeats the last training observation for every horizon step.
type Naive struct {
	last   float64
	fitted bool
}

// NewNaive returns a last-value forecaster.
func NewNaive() *Naive { return &Naive{} }

func (n *Naive) Name() string { return "naive" }

func (n *Naive) Fit(target []float64, _ *series.Table) error {
	if len(target) == 0 {
		return series.ErrEmpty
	}
	n.last = target[len(target)-1]
	n.fitted = true
	return nil
}

func (n *Naive) Predict(feats *series.Table) ([]float64, error) {
	if !n.fitted {
		return nil, ErrNotFitted
	}
	out := make([]float64, feats.NumRows())
	for i := range out {
		out[i] = n.last
	}
	return out, nil
}

// SeasonalNaive repeats the last full season of training observations.
type SeasonalNaive struct {
	period int
	season []float64
}

// NewSeasonalNaive returns a seasonal last-value forecaster with the given
// period in rows (7 for a weekly pattern on daily data).
func NewSeasonalNaive(period int) *SeasonalNaive {
	return &SeasonalNaive{period: period}
}

func (s *SeasonalNaive) Name() string { return fmt.Sprintf("seasonal_naive(%d)", s.period) }

func (s *SeasonalNaive) Fit(target []float64, _ *series.Table) error {
	if s.period <= 0 {
		return fmt.Errorf("eval: period must be positive, got %d", s.period)
	}
	if len(target) < s.period {
		return fmt.Errorf("eval: need at least %d training rows, got %d", s.period, len(target))
	}
	s.season = append([]float64(nil), target[len(target)-s.period:]...)
	return nil
}

func (s *SeasonalNaive) Predict(feats *series.Table) ([]float64, error) {
	if s.season == nil {
		return nil, ErrNotFitted
	}
	out := make([]float64, feats.NumRows())
	for i := range out {
		out[i] = s.season[i%s.period]
	}
	return out, nil
}
