package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/core/model"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

func TestZeroRMajorityClass(t *testing.T) {
	d, err := data.New(2)
	require.NoError(t, err)
	for _, c := range []string{"a", "b", "b", "a", "c"} {
		require.NoError(t, d.AppendCategorical([]string{"x", c}))
	}

	z := NewZeroR()
	require.NoError(t, z.Train(d))

	res, err := z.Classify(d.NewRecord())
	require.NoError(t, err)
	assert.Equal(t, model.CategoricalResult("a"), res, "tie goes to the class seen first")
}

func TestZeroRNumericMean(t *testing.T) {
	d, err := data.New(2)
	require.NoError(t, err)
	for _, v := range []float64{1, 2, 6} {
		require.NoError(t, d.AppendNumeric([]float64{0, v}))
	}

	z := NewZeroR()
	require.NoError(t, z.Train(d))
	res, err := z.Classify(d.NewRecord())
	require.NoError(t, err)
	assert.Equal(t, model.NumericResult(3), res)
}

func TestZeroRClassifyBeforeTrain(t *testing.T) {
	_, err := NewZeroR().Classify(data.NewRecord(2))
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))
}

func TestZeroRTrainErrors(t *testing.T) {
	d, err := data.New(2)
	require.NoError(t, err)
	assert.True(t, errors.Is(NewZeroR().Train(d), errors.ErrEmptyData))

	require.NoError(t, d.AppendNumeric([]float64{0, 1}))
	require.NoError(t, d.AppendCategorical([]string{"x", "yes"}))
	z := NewZeroR()
	assert.Error(t, z.Train(d))
	assert.False(t, z.IsFitted())
}

func TestZeroRRetrainResetsState(t *testing.T) {
	first, err := data.New(1)
	require.NoError(t, err)
	require.NoError(t, first.AppendCategorical([]string{"yes"}))

	second, err := data.New(1)
	require.NoError(t, err)
	require.NoError(t, second.AppendCategorical([]string{"no"}))

	z := NewZeroR()
	require.NoError(t, z.Train(first))
	require.NoError(t, z.Train(second))
	res, err := z.Classify(second.NewRecord())
	require.NoError(t, err)
	assert.Equal(t, model.CategoricalResult("no"), res)

	var _ model.Classifier = z
	assert.Equal(t, "ZeroR", model.NameOf(z))
	assert.False(t, z.Clone().(*ZeroR).IsFitted())
}
