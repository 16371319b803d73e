package data

// Distinct はある属性で観測された値の集合を種類別に保持します。
//
// 数値とカテゴリは別々の集合で管理され、種類をまたいだ統合は行いません
// （"1" と 1.0 は別の値です）。両方の種類が追加された属性は混在
// (IsMixed) として扱い、Len は両集合の要素数の和を返します。
// 数値とカテゴリが等しくなることはないため、和はそのまま異なるセルの数です。
type Distinct struct {
	numeric     []float64
	numericSet  map[float64]struct{}
	categorical []string
	categorySet map[string]struct{}
}

// NewDistinct は空の Distinct を作成します。ゼロ値もそのまま使えます。
func NewDistinct() *Distinct {
	return &Distinct{
		numericSet:  make(map[float64]struct{}),
		categorySet: make(map[string]struct{}),
	}
}

// AddNumeric は数値を追加します。既に存在する場合は何もしません。
func (d *Distinct) AddNumeric(v float64) {
	if _, ok := d.numericSet[v]; ok {
		return
	}
	if d.numericSet == nil {
		d.numericSet = make(map[float64]struct{})
	}
	d.numericSet[v] = struct{}{}
	d.numeric = append(d.numeric, v)
}

// AddCategorical はカテゴリ値を追加します。既に存在する場合は何もしません。
func (d *Distinct) AddCategorical(v string) {
	if _, ok := d.categorySet[v]; ok {
		return
	}
	if d.categorySet == nil {
		d.categorySet = make(map[string]struct{})
	}
	d.categorySet[v] = struct{}{}
	d.categorical = append(d.categorical, v)
}

// Add は種類に応じて値を追加します。nil は無視されます。
func (d *Distinct) Add(v Value) {
	switch x := v.(type) {
	case Numeric:
		d.AddNumeric(float64(x))
	case Categorical:
		d.AddCategorical(string(x))
	}
}

// IsNumeric は数値が一度でも追加されたかを返します。
func (d *Distinct) IsNumeric() bool { return len(d.numeric) > 0 }

// IsCategorical はカテゴリ値が一度でも追加されたかを返します。
func (d *Distinct) IsCategorical() bool { return len(d.categorical) > 0 }

// IsMixed は両方の種類が追加されたかを返します。
func (d *Distinct) IsMixed() bool { return d.IsNumeric() && d.IsCategorical() }

// Len は異なる値の数を返します。
func (d *Distinct) Len() int { return len(d.numeric) + len(d.categorical) }

// NumericValues は数値を追加順に返します。
func (d *Distinct) NumericValues() []float64 {
	return append([]float64(nil), d.numeric...)
}

// CategoricalValues はカテゴリ値を追加順に返します。
func (d *Distinct) CategoricalValues() []string {
	return append([]string(nil), d.categorical...)
}

// Values は全ての値を Value として返します。数値が先、カテゴリが後です。
func (d *Distinct) Values() []Value {
	out := make([]Value, 0, d.Len())
	for _, v := range d.numeric {
		out = append(out, Numeric(v))
	}
	for _, v := range d.categorical {
		out = append(out, Categorical(v))
	}
	return out
}
