package model

import (
	"fmt"

	"github.com/YuminosukeSato/mleval/core/data"
)

// Classifier は評価対象となる学習アルゴリズムの契約
//
// Train は呼び出しのたびに以前の学習結果を捨てて学習し直す。
// Train 前の Classify は NotFittedError を返す。
type Classifier interface {
	// Train はデータセットでモデルを学習させる
	Train(d *data.Dataset) error
	// Classify は1件の Record に対する予測を返す
	Classify(r *data.Record) (Result, error)
}

// Result は分類器の予測値。data.Value と同じ形（数値またはカテゴリ）を持つ
type Result interface {
	data.Value
}

// NumericResult は数値の予測を返す
func NumericResult(v float64) Result { return data.Numeric(v) }

// CategoricalResult はカテゴリの予測を返す
func CategoricalResult(v string) Result { return data.Categorical(v) }

// Named は表示名を持つ分類器
type Named interface {
	Name() string
}

// NameOf は分類器の表示名を返す。Named でなければ型名を使う
func NameOf(c Classifier) string {
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}
