package data

import (
	"math"

	"github.com/YuminosukeSato/mleval/core/parallel"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// scaleParallelThreshold を超える属性数で列ごとの並列処理に切り替えます。
const scaleParallelThreshold = parallel.DefaultThreshold

// Scale は目的属性以外の数値セルを min-max 正規化でその場で書き換えます。
//
// 最小値・最大値は呼び出しのたびに現在の値から数値セルだけを対象に計算されます。
// そのため Scale を2回呼んでも結果は1回と同じです。数値セルが1つも無い属性は
// 対象外で、カテゴリセルは変更されません。最小値と最大値が等しい属性は
// 全ての数値セルを 0 にし、DegenerateRangeWarning を発行します。
func (d *Dataset) Scale() {
	mins := make([]float64, d.n)
	maxs := make([]float64, d.n)

	parallel.ParallelizeWithThreshold(d.n, scaleParallelThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			mins[j], maxs[j] = math.Inf(1), math.Inf(-1)
			if j == d.target {
				continue
			}
			d.scaleColumn(j, &mins[j], &maxs[j])
		}
	})

	for j := range d.n {
		if j != d.target && mins[j] == maxs[j] {
			errors.Warn(errors.NewDegenerateRangeWarning(d.AttributeName(j), mins[j], 0))
		}
	}

	d.mins, d.maxs = mins, maxs
	d.scaled = true
}

// scaleColumn は j 列の統計を求めて書き換えます。j 列は呼び出し元のゴルーチンだけが触ります。
func (d *Dataset) scaleColumn(j int, lo, hi *float64) {
	for _, r := range d.records {
		if v, ok := r.values[j].(Numeric); ok {
			*lo = math.Min(*lo, float64(v))
			*hi = math.Max(*hi, float64(v))
		}
	}
	if math.IsInf(*lo, 1) {
		return
	}
	for _, r := range d.records {
		if v, ok := r.values[j].(Numeric); ok {
			r.values[j] = Numeric(scaleValue(float64(v), *lo, *hi))
		}
	}
}

func scaleValue(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return errors.SafeDivide(v-lo, hi-lo)
}

// ScaleRecord は最後の Scale で求めた統計を使って外部の Record をその場で正規化します。
// 学習時の範囲外の値は [0, 1] の外に写像されます（切り詰めません）。
func (d *Dataset) ScaleRecord(r *Record) error {
	if !d.scaled {
		return errors.NewNotFittedError("Dataset", "ScaleRecord")
	}
	if r.Len() != d.n {
		return errors.NewDimensionError("Dataset.ScaleRecord", d.n, r.Len(), 1)
	}
	for j, v := range r.values {
		if j == d.target || math.IsInf(d.mins[j], 1) {
			continue
		}
		if f, ok := v.(Numeric); ok {
			r.values[j] = Numeric(scaleValue(float64(f), d.mins[j], d.maxs[j]))
		}
	}
	return nil
}

// IsScaled は Scale が実行済みかどうかを返します。
func (d *Dataset) IsScaled() bool { return d.scaled }

// Range は最後の Scale で求めた i 番目の属性の最小値と最大値を返します。
// 数値セルが無かった属性と目的属性では ok が false です。
func (d *Dataset) Range(i int) (lo, hi float64, ok bool, err error) {
	if err := errors.CheckIndex("Dataset.Range", i, d.n); err != nil {
		return 0, 0, false, err
	}
	if !d.scaled {
		return 0, 0, false, errors.NewNotFittedError("Dataset", "Range")
	}
	if math.IsInf(d.mins[i], 1) {
		return 0, 0, false, nil
	}
	return d.mins[i], d.maxs[i], true, nil
}
