package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// RegressionErrors は数値の目的属性に対する誤差の要約
type RegressionErrors struct {
	// MAE は平均絶対誤差
	MAE float64
	// RMSE は平方根平均二乗誤差
	RMSE float64
}

// NumericErrors は数値の正解と予測から MAE と RMSE を計算する。
// 数値でない値が含まれる場合は ValueError を返す
func NumericErrors(actual, predicted []data.Value) (*RegressionErrors, error) {
	n := len(actual)
	if n == 0 {
		return nil, errors.ErrEmptyData
	}
	if len(predicted) != n {
		return nil, errors.NewDimensionError("NumericErrors", n, len(predicted), 0)
	}

	yTrue, err := numericSlice("NumericErrors", actual)
	if err != nil {
		return nil, err
	}
	yPred, err := numericSlice("NumericErrors", predicted)
	if err != nil {
		return nil, err
	}

	// diff = yTrue - yPred
	diff := make([]float64, n)
	floats.SubTo(diff, yTrue, yPred)

	return &RegressionErrors{
		MAE:  floats.Norm(diff, 1) / float64(n),
		RMSE: floats.Norm(diff, 2) / math.Sqrt(float64(n)),
	}, nil
}

func numericSlice(op string, values []data.Value) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := data.NumericOf(v)
		if !ok {
			return nil, errors.NewValueError(op, "non-numeric value "+data.Format(v))
		}
		out[i] = f
	}
	return out, nil
}
