package data

import (
	"fmt"
	"iter"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// Dataset は同じ長さの Record の順序付き集合です。
//
// 属性数と目的属性の位置は作成時に固定され、追加される Record は
// 必ずこれに一致しなければなりません。目的属性の Distinct は追加のたびに
// 更新されるので、クラス数の取得は O(1) です。
//
// 読み込み中は追記専用、評価中は読み取り専用として扱います。
// Scale は数値セルをその場で書き換えます。
type Dataset struct {
	records []*Record
	names   []string
	n       int
	target  int
	classes *Distinct

	// スケーリング統計（Scale 後のみ有効）
	mins   []float64
	maxs   []float64
	scaled bool
}

// Option は Dataset の作成オプションです。
type Option func(*Dataset)

// WithTargetIndex は目的属性の位置を指定します。負の値は末尾から数えます（-1 が最後）。
func WithTargetIndex(t int) Option {
	return func(d *Dataset) {
		d.target = t
	}
}

// WithAttributeNames は属性名を指定します。
func WithAttributeNames(names []string) Option {
	return func(d *Dataset) {
		d.names = append([]string(nil), names...)
	}
}

// New は n 個の属性を持つ空の Dataset を作成します。
// 目的属性はデフォルトで最後の属性です。
func New(n int, opts ...Option) (*Dataset, error) {
	if n < 1 {
		return nil, errors.NewValidationError("n", "dataset needs at least one attribute", n)
	}
	d := &Dataset{n: n, target: n - 1, classes: NewDistinct()}
	for _, opt := range opts {
		opt(d)
	}
	if d.target < 0 {
		d.target += n
	}
	if d.target < 0 || d.target >= n {
		return nil, errors.NewValidationError("target_index", "target index out of range", d.target)
	}
	if d.names != nil && len(d.names) != n {
		return nil, errors.NewDimensionError("New", n, len(d.names), 1)
	}
	return d, nil
}

// FromRecords は Record のリストから Dataset を組み立てます。
// 属性数と目的属性の位置は最初の Record から決まります。
func FromRecords(records []*Record, opts ...Option) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.ErrEmptyData
	}
	first := records[0]
	opts = append([]Option{WithTargetIndex(first.TargetIndex())}, opts...)
	d, err := New(first.Len(), opts...)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := d.Append(r); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Append は Record を追加します。
func (d *Dataset) Append(r *Record) error {
	if r == nil {
		return errors.NewValueError("Dataset.Append", "nil record")
	}
	if r.Len() != d.n {
		return errors.NewDimensionError("Dataset.Append", d.n, r.Len(), 1)
	}
	if r.TargetIndex() != d.target {
		return errors.NewValidationError("target_index", fmt.Sprintf("record target differs from dataset target %d", d.target), r.TargetIndex())
	}
	d.records = append(d.records, r)
	d.classes.Add(r.Target())
	return nil
}

// AppendNumeric は数値だけからなる Record を追加します。
func (d *Dataset) AppendNumeric(values []float64) error {
	if len(values) != d.n {
		return errors.NewDimensionError("Dataset.AppendNumeric", d.n, len(values), 1)
	}
	r := d.NewRecord()
	for i, v := range values {
		r.values[i] = Numeric(v)
	}
	return d.Append(r)
}

// AppendCategorical はカテゴリ値だけからなる Record を追加します。
func (d *Dataset) AppendCategorical(values []string) error {
	if len(values) != d.n {
		return errors.NewDimensionError("Dataset.AppendCategorical", d.n, len(values), 1)
	}
	r := d.NewRecord()
	for i, v := range values {
		r.values[i] = Categorical(v)
	}
	return d.Append(r)
}

// NewRecord はこの Dataset の形に合った空の Record を返します（追加はしません）。
func (d *Dataset) NewRecord() *Record {
	return &Record{values: make([]Value, d.n), target: d.target}
}

// At は row 番目の Record を返します。
func (d *Dataset) At(row int) (*Record, error) {
	if err := errors.CheckIndex("Dataset.At", row, len(d.records)); err != nil {
		return nil, err
	}
	return d.records[row], nil
}

// Len は Record 数を返します。
func (d *Dataset) Len() int { return len(d.records) }

// NumAttributes は属性数を返します。
func (d *Dataset) NumAttributes() int { return d.n }

// TargetIndex は目的属性の位置を返します。
func (d *Dataset) TargetIndex() int { return d.target }

// SetAttributeNames は属性名を設定します。
func (d *Dataset) SetAttributeNames(names []string) error {
	if len(names) != d.n {
		return errors.NewDimensionError("Dataset.SetAttributeNames", d.n, len(names), 1)
	}
	d.names = append([]string(nil), names...)
	return nil
}

// AttributeName は i 番目の属性名を返します。名前が無い場合は "(i)" です。
func (d *Dataset) AttributeName(i int) string {
	return attributeLabel(d.names, i)
}

// AttributeNames は属性名を返します。名前が無い属性は "(i)" で埋められます。
func (d *Dataset) AttributeNames() []string {
	out := make([]string, d.n)
	for i := range out {
		out[i] = d.AttributeName(i)
	}
	return out
}

// Distinct は i 番目の属性の Distinct を全件走査で作成します。
func (d *Dataset) Distinct(i int) (*Distinct, error) {
	if err := errors.CheckIndex("Dataset.Distinct", i, d.n); err != nil {
		return nil, err
	}
	dv := NewDistinct()
	for _, r := range d.records {
		dv.Add(r.values[i])
	}
	return dv, nil
}

// Classes は目的属性の Distinct を返します。
// 返される値は Dataset と共有されるため、変更してはいけません。
func (d *Dataset) Classes() *Distinct { return d.classes }

// NumClasses は目的属性の異なる値の数を返します。
func (d *Dataset) NumClasses() int { return d.classes.Len() }

// All は (行番号, Record) を追加順に返すイテレータです。何度でも再開できます。
func (d *Dataset) All() iter.Seq2[int, *Record] {
	return func(yield func(int, *Record) bool) {
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records は Record スライスのコピーを返します。
func (d *Dataset) Records() []*Record {
	return append([]*Record(nil), d.records...)
}

// Matrix は目的属性以外の数値特徴量を行列として返します。
// 数値でないセルがあれば Record.Features と同じ ValueError を返します。
func (d *Dataset) Matrix() (*mat.Dense, error) {
	if len(d.records) == 0 {
		return nil, errors.ErrEmptyData
	}
	cols := d.n - 1
	if cols == 0 {
		return nil, errors.NewValidationError("attributes", "dataset has no feature attributes", d.n)
	}
	raw := make([]float64, 0, len(d.records)*cols)
	for row, r := range d.records {
		f, err := r.Features()
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		raw = append(raw, f...)
	}
	return mat.NewDense(len(d.records), cols, raw), nil
}

// TargetVector は数値の目的属性をベクトルとして返します。
func (d *Dataset) TargetVector() (*mat.VecDense, error) {
	if len(d.records) == 0 {
		return nil, errors.ErrEmptyData
	}
	y := make([]float64, len(d.records))
	for row, r := range d.records {
		v, ok := NumericOf(r.Target())
		if !ok {
			return nil, errors.NewValueError("Dataset.TargetVector",
				fmt.Sprintf("row %d target is %s, not numeric", row, KindOf(r.Target())))
		}
		y[row] = v
	}
	return mat.NewVecDense(len(y), y), nil
}

// String は1行に1 Record ずつ出力します。
func (d *Dataset) String() string {
	var sb strings.Builder
	for _, r := range d.records {
		sb.WriteString(r.Format(d.names))
		sb.WriteByte('\n')
	}
	return sb.String()
}
