package evaluation

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/mleval/metrics"
)

// Mode は評価方法
type Mode string

const (
	// ModeWholeSet は全件で学習し、同じ全件でテストする
	ModeWholeSet Mode = "whole-set"
	// ModeHeldOut は全件で学習し、別に与えたレコードでテストする
	ModeHeldOut Mode = "held-out"
	// ModeCrossValidation は k 分割交差検証
	ModeCrossValidation Mode = "cross-validation"
)

// Report は1回の学習・テストの結果
type Report struct {
	Mode       Mode
	Classifier string
	Correct    int
	Total      int
	// Accuracy は正解率（パーセント）
	Accuracy float64
	Duration time.Duration
	// Confusion は（正解, 予測）の件数表
	Confusion *metrics.ConfusionMatrix
	// Regression は目的属性と予測がすべて数値の場合だけ設定される
	Regression *metrics.RegressionErrors
}

func (r *Report) String() string {
	label := "whole dataset"
	if r.Mode == ModeHeldOut {
		label = "test set"
	}
	return fmt.Sprintf("Evaluation (%s): %.2f%%", label, r.Accuracy)
}

// CVReport は交差検証の結果。Accuracy は fold ごとの正解率の平均
type CVReport struct {
	Classifier string
	Folds      []*Report
	Accuracy   float64
	// StdDev は fold ごとの正解率の標準偏差（不偏）
	StdDev   float64
	Duration time.Duration
}

// Correct は全 fold の正解数の合計を返す
func (r *CVReport) Correct() int {
	n := 0
	for _, f := range r.Folds {
		n += f.Correct
	}
	return n
}

// Total は全 fold のテスト件数の合計を返す
func (r *CVReport) Total() int {
	n := 0
	for _, f := range r.Folds {
		n += f.Total
	}
	return n
}

func (r *CVReport) String() string {
	return fmt.Sprintf("Evaluation (%d-fold CV): %.2f%% (+/- %.2f)", len(r.Folds), r.Accuracy, r.StdDev)
}
