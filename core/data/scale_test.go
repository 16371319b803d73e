package data

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// captureWarnings は警告を記録するハンドラを設定し、テスト終了時に元へ戻します。
func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var (
		mu       sync.Mutex
		captured []error
	)
	errors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		captured = append(captured, w)
	})
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), captured...)
	}
}

func column(t *testing.T, d *Dataset, j int) []Value {
	t.Helper()
	out := make([]Value, 0, d.Len())
	for _, r := range d.All() {
		v, err := r.At(j)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestScaleMinMax(t *testing.T) {
	captureWarnings(t)
	d, err := New(2)
	require.NoError(t, err)
	for _, v := range []float64{10, 20, 30} {
		require.NoError(t, d.AppendNumeric([]float64{v, v}))
	}

	d.Scale()

	assert.Equal(t, []Value{Numeric(0), Numeric(0.5), Numeric(1)}, column(t, d, 0))
	assert.Equal(t, []Value{Numeric(10), Numeric(20), Numeric(30)}, column(t, d, 1), "target is never scaled")
	assert.True(t, d.IsScaled())

	lo, hi, ok, err := d.Range(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 30.0, hi)

	_, _, ok, err = d.Range(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScaleIsIdempotent(t *testing.T) {
	captureWarnings(t)
	d, err := New(3)
	require.NoError(t, err)
	for _, row := range [][]float64{{1, -5, 0}, {4, 0, 1}, {7, 15, 0}, {2, 3, 1}} {
		require.NoError(t, d.AppendNumeric(row))
	}

	d.Scale()
	once := d.String()
	d.Scale()
	assert.Equal(t, once, d.String())
}

func TestScaleDegenerateRange(t *testing.T) {
	warnings := captureWarnings(t)
	d, err := New(2, WithAttributeNames([]string{"constant", "class"}))
	require.NoError(t, err)
	for range 3 {
		require.NoError(t, d.AppendNumeric([]float64{5, 1}))
	}

	d.Scale()

	for _, v := range column(t, d, 0) {
		f, ok := NumericOf(v)
		require.True(t, ok)
		assert.Equal(t, 0.0, f)
		assert.False(t, math.IsNaN(f))
	}

	got := warnings()
	require.Len(t, got, 1)
	var w *errors.DegenerateRangeWarning
	require.True(t, errors.As(got[0], &w))
	assert.Equal(t, "constant", w.Attribute)
	assert.Equal(t, 5.0, w.Value)
}

func TestScaleSingleRecord(t *testing.T) {
	captureWarnings(t)
	d, err := New(2)
	require.NoError(t, err)
	require.NoError(t, d.AppendNumeric([]float64{42, 0}))

	d.Scale()
	assert.Equal(t, []Value{Numeric(0)}, column(t, d, 0))
}

func TestScaleLeavesCategoricalCells(t *testing.T) {
	captureWarnings(t)
	d, err := New(2)
	require.NoError(t, err)

	mixed := []Value{Numeric(0), Categorical("n/a"), Numeric(10)}
	for _, v := range mixed {
		r := d.NewRecord()
		require.NoError(t, r.Set(0, v))
		require.NoError(t, r.SetCategorical(1, "c"))
		require.NoError(t, d.Append(r))
	}
	onlyText, err := New(2)
	require.NoError(t, err)
	require.NoError(t, onlyText.AppendCategorical([]string{"a", "b"}))

	d.Scale()
	onlyText.Scale()

	assert.Equal(t, []Value{Numeric(0), Categorical("n/a"), Numeric(1)}, column(t, d, 0))
	assert.Equal(t, []Value{Categorical("a")}, column(t, onlyText, 0))
}

func TestScaleManyAttributesInParallel(t *testing.T) {
	captureWarnings(t)
	const attrs = 32
	d, err := New(attrs + 1)
	require.NoError(t, err)
	for i := range 5 {
		row := make([]float64, attrs+1)
		for j := range attrs {
			row[j] = float64(i * (j + 1))
		}
		require.NoError(t, d.AppendNumeric(row))
	}

	d.Scale()

	for j := range attrs {
		col := column(t, d, j)
		assert.Equal(t, Numeric(0), col[0], fmt.Sprintf("attribute %d", j))
		assert.Equal(t, Numeric(1), col[4], fmt.Sprintf("attribute %d", j))
	}
}

func TestScaleRecord(t *testing.T) {
	captureWarnings(t)
	d, err := New(2)
	require.NoError(t, err)

	r := NewRecord(2)
	require.NoError(t, r.SetNumeric(0, 15))
	err = d.ScaleRecord(r)
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf))

	require.NoError(t, d.AppendNumeric([]float64{10, 0}))
	require.NoError(t, d.AppendNumeric([]float64{20, 1}))
	d.Scale()

	require.NoError(t, d.ScaleRecord(r))
	v, _ := r.At(0)
	assert.Equal(t, Numeric(0.5), v)

	outside := NewRecord(2)
	require.NoError(t, outside.SetNumeric(0, 30))
	require.NoError(t, d.ScaleRecord(outside))
	v, _ = outside.At(0)
	assert.Equal(t, Numeric(2), v, "values outside the training range are not clamped")

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(d.ScaleRecord(NewRecord(3)), &dimErr))
}
