package eval

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scores collects the standard error metrics over a validation range.
type Scores struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	MAPE float64 `json:"mape"` // percent; NaN when any actual is zero
}

func (s Scores) String() string {
	return fmt.Sprintf("MAE=%.4f RMSE=%.4f MAPE=%.2f%%", s.MAE, s.RMSE, s.MAPE)
}

// Evaluate compares predictions against actuals, which must be the same
// non-zero length.
func Evaluate(actual, predicted []float64) (Scores, error) {
	if len(actual) == 0 {
		return Scores{}, fmt.Errorf("eval: no rows to score")
	}
	if len(actual) != len(predicted) {
		return Scores{}, fmt.Errorf("eval: %d actuals vs %d predictions", len(actual), len(predicted))
	}

	absErr := make([]float64, len(actual))
	sqErr := make([]float64, len(actual))
	pctErr := make([]float64, len(actual))
	zeroActual := false
	for i := range actual {
		diff := actual[i] - predicted[i]
		absErr[i] = math.Abs(diff)
		sqErr[i] = diff * diff
		if actual[i] == 0 {
			zeroActual = true
			continue
		}
		pctErr[i] = math.Abs(diff/actual[i]) * 100
	}

	s := Scores{
		MAE:  stat.Mean(absErr, nil),
		RMSE: math.Sqrt(stat.Mean(sqErr, nil)),
	}
	if zeroActual {
		s.MAPE = math.NaN()
	} else {
		s.MAPE = floats.Sum(pctErr) / float64(len(pctErr))
	}
	return s, nil
}
