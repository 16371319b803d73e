package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// ConfusionMatrix は（正解, 予測）の組ごとの件数。
// ラベルは値の文字列表現で、最初に現れた順に並ぶ。
// 対角成分の合計は Accuracy の Correct と一致する。カテゴリ値は大文字小文字を
// 区別せず最初に現れた綴りで、数値は丸めない表現でラベル付けされる
type ConfusionMatrix struct {
	Labels []string
	// Counts[i][j] は正解 Labels[i] を Labels[j] と予測した件数
	Counts [][]int
	index  map[string]int
}

// NewConfusionMatrix は actual と predicted から混同行列を作る
func NewConfusionMatrix(actual, predicted []data.Value) (*ConfusionMatrix, error) {
	if len(predicted) != len(actual) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(actual), len(predicted), 0)
	}
	cm := &ConfusionMatrix{index: make(map[string]int)}
	for i := range actual {
		a := cm.label(actual[i])
		p := cm.label(predicted[i])
		cm.Counts[a][p]++
	}
	return cm, nil
}

// labelKey は Correct が同じとみなす値に同じキーを返す
func labelKey(v data.Value) (key, text string) {
	switch x := v.(type) {
	case data.Numeric:
		f := float64(x)
		if f == 0 {
			f = 0 // -0 と 0 をまとめる
		}
		text = strconv.FormatFloat(f, 'g', -1, 64)
		return "n:" + text, text
	case data.Categorical:
		return "c:" + strings.ToLower(string(x)), string(x)
	default:
		return "?", data.Format(v)
	}
}

func (cm *ConfusionMatrix) label(v data.Value) int {
	key, text := labelKey(v)
	if i, ok := cm.index[key]; ok {
		return i
	}
	i := len(cm.Labels)
	cm.index[key] = i
	cm.Labels = append(cm.Labels, text)
	for r := range cm.Counts {
		cm.Counts[r] = append(cm.Counts[r], 0)
	}
	cm.Counts = append(cm.Counts, make([]int, len(cm.Labels)))
	return i
}

// Count は正解 actual を predicted と予測した件数を返す。
// ラベルは大文字小文字を区別せずに照合する
func (cm *ConfusionMatrix) Count(actual, predicted string) int {
	a, ok := cm.find(actual)
	if !ok {
		return 0
	}
	p, ok := cm.find(predicted)
	if !ok {
		return 0
	}
	return cm.Counts[a][p]
}

// Diagonal は対角成分の合計、つまり正しく分類された件数を返す
func (cm *ConfusionMatrix) Diagonal() int {
	n := 0
	for i := range cm.Counts {
		n += cm.Counts[i][i]
	}
	return n
}

func (cm *ConfusionMatrix) find(label string) (int, bool) {
	for i, l := range cm.Labels {
		if l == label {
			return i, true
		}
	}
	for i, l := range cm.Labels {
		if strings.EqualFold(l, label) {
			return i, true
		}
	}
	return 0, false
}

// String は行が正解、列が予測の表を返す
func (cm *ConfusionMatrix) String() string {
	var sb strings.Builder
	width := 1
	for _, l := range cm.Labels {
		width = max(width, len(l))
	}
	fmt.Fprintf(&sb, "%*s", width, "")
	for _, l := range cm.Labels {
		fmt.Fprintf(&sb, " %*s", width, l)
	}
	sb.WriteByte('\n')
	for i, row := range cm.Counts {
		fmt.Fprintf(&sb, "%*s", width, cm.Labels[i])
		for _, c := range row {
			fmt.Fprintf(&sb, " %*d", width, c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
