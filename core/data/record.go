package data

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// Record は1つの事例を表す固定長の属性値の並びです。
// target 位置のセルが目的（クラス）属性です。
type Record struct {
	values []Value
	target int
}

// NewRecord は n 個の未設定セルを持ち、最後の位置を目的属性とする Record を作成します。
func NewRecord(n int) *Record {
	return &Record{values: make([]Value, n), target: n - 1}
}

// NewRecordWithTarget は目的属性の位置を指定して Record を作成します。
func NewRecordWithTarget(n, target int) (*Record, error) {
	if n < 1 {
		return nil, errors.NewValidationError("n", "record needs at least one attribute", n)
	}
	if err := errors.CheckIndex("NewRecordWithTarget", target, n); err != nil {
		return nil, err
	}
	return &Record{values: make([]Value, n), target: target}, nil
}

// Len は属性数を返します。
func (r *Record) Len() int { return len(r.values) }

// TargetIndex は目的属性の位置を返します。
func (r *Record) TargetIndex() int { return r.target }

// Set は i 番目のセルに v を設定します。種類の変更も可能です。
func (r *Record) Set(i int, v Value) error {
	if err := errors.CheckIndex("Record.Set", i, len(r.values)); err != nil {
		return err
	}
	r.values[i] = v
	return nil
}

// SetNumeric は i 番目のセルに数値を設定します。
func (r *Record) SetNumeric(i int, v float64) error {
	return r.Set(i, Numeric(v))
}

// SetCategorical は i 番目のセルにカテゴリ値を設定します。
func (r *Record) SetCategorical(i int, v string) error {
	return r.Set(i, Categorical(v))
}

// At は i 番目のセルを返します。
func (r *Record) At(i int) (Value, error) {
	if err := errors.CheckIndex("Record.At", i, len(r.values)); err != nil {
		return nil, err
	}
	return r.values[i], nil
}

// Target は目的属性の値を返します。
func (r *Record) Target() Value {
	if r.target < 0 || r.target >= len(r.values) {
		return nil
	}
	return r.values[r.target]
}

// Values は全セルのコピーを返します。
func (r *Record) Values() []Value {
	return append([]Value(nil), r.values...)
}

// Features は目的属性以外のセルを float64 として返します。
// 数値でないセルが含まれる場合は最初の位置を示す ValueError を返します。
func (r *Record) Features() ([]float64, error) {
	out := make([]float64, 0, max(len(r.values)-1, 0))
	for i, v := range r.values {
		if i == r.target {
			continue
		}
		f, ok := NumericOf(v)
		if !ok {
			return nil, errors.NewValueError("Record.Features",
				fmt.Sprintf("attribute %d is %s, not numeric", i, KindOf(v)))
		}
		out = append(out, f)
	}
	return out, nil
}

// Clone は深いコピーを返します。
func (r *Record) Clone() *Record {
	return &Record{values: r.Values(), target: r.target}
}

// Format は `{name = value, ..., target = value}` の形式で Record を表します。
// 目的属性は常に最後に出力されます。名前が無い属性は "(i)" と表示されます。
func (r *Record) Format(names []string) string {
	parts := make([]string, 0, len(r.values))
	for i, v := range r.values {
		if i == r.target {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s = %s", attributeLabel(names, i), Format(v)))
	}
	if r.target >= 0 && r.target < len(r.values) {
		parts = append(parts, fmt.Sprintf("%s = %s", attributeLabel(names, r.target), Format(r.values[r.target])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (r *Record) String() string {
	return r.Format(nil)
}

func attributeLabel(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("(%d)", i)
}
