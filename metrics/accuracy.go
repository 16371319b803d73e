// Package metrics は分類器の予測を正解と比較して採点します。
package metrics

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// Score は正解数と正解率（パーセント）
type Score struct {
	Correct  int
	Total    int
	Accuracy float64
}

// Correct は予測が正解と一致するかを種類に応じて判定する。
// カテゴリ同士は大文字小文字を区別せず、数値同士は厳密に比較する。
// 種類が異なる場合や正解が未設定の場合は ValidationError を返す
func Correct(actual, predicted data.Value) (bool, error) {
	switch a := actual.(type) {
	case data.Categorical:
		p, ok := predicted.(data.Categorical)
		if !ok {
			return false, kindMismatch(actual, predicted)
		}
		return strings.EqualFold(string(a), string(p)), nil
	case data.Numeric:
		p, ok := predicted.(data.Numeric)
		if !ok {
			return false, kindMismatch(actual, predicted)
		}
		return a == p, nil
	default:
		return false, errors.NewValidationError("target", "target value is unset", nil)
	}
}

func kindMismatch(actual, predicted data.Value) error {
	return errors.NewValidationError("result",
		fmt.Sprintf("%s result cannot be scored against %s target", data.KindOf(predicted), data.KindOf(actual)),
		data.Format(predicted))
}

// Accuracy は actual と predicted を先頭から対応させて正解率を計算する
//
// 例:
//
//	s, err := metrics.Accuracy(targets, results)
//	fmt.Printf("%.2f%%\n", s.Accuracy)
func Accuracy(actual, predicted []data.Value) (Score, error) {
	if len(actual) == 0 {
		return Score{}, errors.ErrEmptyData
	}
	if len(predicted) != len(actual) {
		return Score{}, errors.NewDimensionError("Accuracy", len(actual), len(predicted), 0)
	}
	correct := 0
	for i := range actual {
		ok, err := Correct(actual[i], predicted[i])
		if err != nil {
			return Score{}, errors.Wrapf(err, "row %d", i)
		}
		if ok {
			correct++
		}
	}
	return Score{
		Correct:  correct,
		Total:    len(actual),
		Accuracy: float64(correct) / float64(len(actual)) * 100,
	}, nil
}
