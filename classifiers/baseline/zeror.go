// Package baseline は学習結果を持たない基準分類器を提供します。
package baseline

import (
	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/core/model"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// ZeroR は入力を見ずに常に同じ値を予測する分類器
//
// カテゴリの目的属性では最頻値（同数なら先に現れた値）、
// 数値の目的属性では平均値を予測する。
type ZeroR struct {
	model.BaseEstimator

	prediction model.Result
}

// NewZeroR は新しい ZeroR を作成する
func NewZeroR() *ZeroR {
	return &ZeroR{}
}

// Name implements model.Named.
func (z *ZeroR) Name() string { return "ZeroR" }

// Clone implements model.Cloner.
func (z *ZeroR) Clone() model.Classifier { return NewZeroR() }

// Train は目的属性の最頻値または平均値を求める
func (z *ZeroR) Train(d *data.Dataset) error {
	z.Reset()
	if d.Len() == 0 {
		return errors.ErrEmptyData
	}

	counts := make(map[string]int)
	var (
		sum     float64
		numeric int
	)
	for _, r := range d.All() {
		switch t := r.Target().(type) {
		case data.Categorical:
			counts[string(t)]++
		case data.Numeric:
			sum += float64(t)
			numeric++
		}
	}

	// Classes は出現順なので、同数なら先に現れた値が残る
	var (
		best      string
		bestCount int
	)
	for _, c := range d.Classes().CategoricalValues() {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}

	switch {
	case bestCount > 0 && numeric > 0:
		return errors.NewValueError("ZeroR.Train", "target attribute mixes numeric and categorical values")
	case bestCount > 0:
		z.prediction = model.CategoricalResult(best)
	case numeric > 0:
		z.prediction = model.NumericResult(sum / float64(numeric))
	default:
		return errors.NewValueError("ZeroR.Train", "target attribute has no values")
	}
	z.SetFitted()
	return nil
}

// Classify は学習時に求めた値を返す
func (z *ZeroR) Classify(_ *data.Record) (model.Result, error) {
	if err := z.CheckFitted("ZeroR", "Classify"); err != nil {
		return nil, err
	}
	return z.prediction, nil
}
