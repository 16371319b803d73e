// Package knn は golearn の k 近傍法を model.Classifier として使えるようにします。
//
// 特徴量（目的属性以外）はすべて数値である必要があります。目的属性は
// 数値でもカテゴリでもよく、内部では golearn のカテゴリ属性として扱い、
// 予測時に元の種類へ戻します。
package knn

import (
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	golearnknn "github.com/sjwhitworth/golearn/knn"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/core/model"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

const (
	// DefaultNeighbours は既定の近傍数
	DefaultNeighbours = 3
	// DefaultDistance は既定の距離関数
	DefaultDistance = "euclidean"
)

// Classifier は golearn の KNNClassifier のアダプタ
type Classifier struct {
	model.BaseEstimator

	neighbours int
	distance   string

	knn *golearnknn.KNNClassifier

	features []base.Attribute
	class    *base.CategoricalAttribute
	// labels はクラス属性の文字列から元の目的属性値への対応
	labels map[string]data.Value
	first  string
}

// Option は Classifier の設定を変更する
type Option func(*Classifier)

// WithNeighbours は近傍数 k を指定する
func WithNeighbours(k int) Option {
	return func(c *Classifier) { c.neighbours = k }
}

// WithDistance は距離関数（"euclidean", "manhattan", "cosine"）を指定する
func WithDistance(name string) Option {
	return func(c *Classifier) { c.distance = name }
}

// New は新しい Classifier を作成する
func New(opts ...Option) *Classifier {
	c := &Classifier{neighbours: DefaultNeighbours, distance: DefaultDistance}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements model.Named.
func (c *Classifier) Name() string { return "KNN" }

// Clone implements model.Cloner.
func (c *Classifier) Clone() model.Classifier {
	return New(WithNeighbours(c.neighbours), WithDistance(c.distance))
}

// GetParams implements model.ParameterGetter.
func (c *Classifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"neighbours": c.neighbours,
		"distance":   c.distance,
	}
}

// Train はデータセットを golearn の DenseInstances に変換して学習する
func (c *Classifier) Train(d *data.Dataset) error {
	c.Reset()
	if c.neighbours < 1 {
		return errors.NewValidationError("neighbours", "must be positive", c.neighbours)
	}
	switch c.distance {
	case "euclidean", "manhattan", "cosine":
	default:
		return errors.NewValidationError("distance", "unsupported distance function", c.distance)
	}
	if d.Len() == 0 {
		return errors.ErrEmptyData
	}

	c.features = c.features[:0]
	for i := range d.NumAttributes() {
		if i != d.TargetIndex() {
			c.features = append(c.features, base.NewFloatAttribute(d.AttributeName(i)))
		}
	}
	c.class = base.NewCategoricalAttribute()
	c.class.SetName(d.AttributeName(d.TargetIndex()))
	c.labels = make(map[string]data.Value)

	rows := make([][]float64, 0, d.Len())
	classes := make([]string, 0, d.Len())
	for row, r := range d.All() {
		f, err := r.Features()
		if err == nil {
			err = errors.CheckFinite("KNN.Train", f...)
		}
		if err != nil {
			return errors.Wrapf(err, "KNN.Train: row %d", row)
		}
		label, err := c.labelOf(r.Target())
		if err != nil {
			return errors.Wrapf(err, "KNN.Train: row %d", row)
		}
		rows = append(rows, f)
		classes = append(classes, label)
	}
	c.first = classes[0]

	grid, err := c.grid(rows, classes)
	if err != nil {
		return err
	}

	// 近傍数が学習件数を超えると golearn の投票処理が範囲外参照になるため切り詰める
	k := min(c.neighbours, d.Len())
	c.knn = golearnknn.NewKnnClassifier(c.distance, "linear", k)
	c.knn.AllowOptimisations = false
	if err := c.knn.Fit(grid); err != nil {
		return errors.NewModelError("KNN.Train", "fit failed", err)
	}
	c.SetFitted()
	return nil
}

// Classify は r の最近傍の多数決でクラスを予測する
func (c *Classifier) Classify(r *data.Record) (model.Result, error) {
	if err := c.CheckFitted("KNN", "Classify"); err != nil {
		return nil, err
	}
	f, err := r.Features()
	if err != nil {
		return nil, err
	}
	if len(f) != len(c.features) {
		return nil, errors.NewDimensionError("KNN.Classify", len(c.features), len(f), 1)
	}

	// 予測用のクラス値は使われないので既知のラベルを入れておく
	query, err := c.grid([][]float64{f}, []string{c.first})
	if err != nil {
		return nil, err
	}
	pred, err := c.knn.Predict(query)
	if err != nil {
		return nil, errors.NewModelError("KNN.Classify", "predict failed", err)
	}
	label := base.GetClass(pred, 0)
	v, ok := c.labels[label]
	if !ok {
		return nil, errors.NewModelError("KNN.Classify", "unknown class "+strconv.Quote(label), nil)
	}
	return v, nil
}

// labelOf は目的属性値をクラス属性の文字列にし、元の値を覚えておく
func (c *Classifier) labelOf(v data.Value) (string, error) {
	var label string
	switch t := v.(type) {
	case data.Categorical:
		label = string(t)
	case data.Numeric:
		label = strconv.FormatFloat(float64(t), 'g', -1, 64)
	default:
		return "", errors.NewValueError("KNN", "target value is unset")
	}
	if prev, ok := c.labels[label]; ok && !data.Equal(prev, v) {
		return "", errors.NewValueError("KNN", "target mixes numeric and categorical value "+label)
	}
	c.labels[label] = v
	return label, nil
}

// grid は学習時と同じ属性オブジェクトで DenseInstances を組み立てる
func (c *Classifier) grid(rows [][]float64, classes []string) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(c.features))
	for i, a := range c.features {
		specs[i] = inst.AddAttribute(a)
	}
	classSpec := inst.AddAttribute(c.class)
	if err := inst.AddClassAttribute(c.class); err != nil {
		return nil, errors.NewModelError("KNN", "class attribute", err)
	}
	if err := inst.Extend(len(rows)); err != nil {
		return nil, errors.NewModelError("KNN", "allocate instances", err)
	}
	for r, row := range rows {
		for i, v := range row {
			inst.Set(specs[i], r, base.PackFloatToBytes(v))
		}
		inst.Set(classSpec, r, c.class.GetSysValFromString(classes[r]))
	}
	return inst, nil
}
