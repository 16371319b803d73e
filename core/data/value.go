// Package data はデータセットの表現を提供します。
//
// 1つのセル（属性値）は数値またはカテゴリ（名義）のどちらか一方を保持する
// Value で表されます。Record は固定長の Value の並びで、Dataset は
// 同じ長さの Record の集まりと属性名、スケーリング統計を保持します。
package data

import (
	"fmt"
	"strings"
)

// Kind は Value の種類です。
type Kind int

const (
	// KindNumeric は数値の属性値
	KindNumeric Kind = iota + 1
	// KindCategorical はカテゴリ（名義）の属性値
	KindCategorical
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "unset"
	}
}

// Value は数値かカテゴリのどちらかを保持する属性値です。
// 実装は Numeric と Categorical のみで、未設定のセルは nil です。
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// Numeric は数値の属性値です。
type Numeric float64

// Kind implements Value.
func (Numeric) Kind() Kind { return KindNumeric }

// String は小数点以下2桁で値を表します。
func (n Numeric) String() string { return fmt.Sprintf("%.2f", float64(n)) }

func (Numeric) isValue() {}

// Categorical はカテゴリ（名義）の属性値です。
type Categorical string

// Kind implements Value.
func (Categorical) Kind() Kind { return KindCategorical }

func (c Categorical) String() string { return string(c) }

func (Categorical) isValue() {}

// KindOf は v の種類を返します。nil なら 0 です。
func KindOf(v Value) Kind {
	if v == nil {
		return 0
	}
	return v.Kind()
}

// IsNumeric は v が数値かどうかを返します。
func IsNumeric(v Value) bool {
	_, ok := v.(Numeric)
	return ok
}

// IsCategorical は v がカテゴリかどうかを返します。
func IsCategorical(v Value) bool {
	_, ok := v.(Categorical)
	return ok
}

// NumericOf は数値の中身を返します。v が数値でない場合は (0, false) です。
func NumericOf(v Value) (float64, bool) {
	n, ok := v.(Numeric)
	return float64(n), ok
}

// CategoricalOf はカテゴリの中身を返します。v がカテゴリでない場合は ("", false) です。
func CategoricalOf(v Value) (string, bool) {
	c, ok := v.(Categorical)
	return string(c), ok
}

// Equal は種類ごとに比較します。数値は厳密一致、カテゴリは文字列一致です。
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Numeric:
		bv, ok := b.(Numeric)
		return ok && av == bv
	case Categorical:
		bv, ok := b.(Categorical)
		return ok && av == bv
	default:
		return b == nil
	}
}

// EqualFold は Equal と同じですが、カテゴリは大文字小文字を区別しません。
func EqualFold(a, b Value) bool {
	if ac, ok := a.(Categorical); ok {
		bc, ok := b.(Categorical)
		return ok && strings.EqualFold(string(ac), string(bc))
	}
	return Equal(a, b)
}

// Format は nil を "?" として v を文字列にします。
func Format(v Value) string {
	if v == nil {
		return "?"
	}
	return v.String()
}
