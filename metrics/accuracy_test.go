package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

func cats(vs ...string) []data.Value {
	out := make([]data.Value, len(vs))
	for i, v := range vs {
		out[i] = data.Categorical(v)
	}
	return out
}

func nums(vs ...float64) []data.Value {
	out := make([]data.Value, len(vs))
	for i, v := range vs {
		out[i] = data.Numeric(v)
	}
	return out
}

func TestCorrect(t *testing.T) {
	tests := []struct {
		name      string
		actual    data.Value
		predicted data.Value
		want      bool
		wantErr   bool
	}{
		{"same category", data.Categorical("yes"), data.Categorical("yes"), true, false},
		{"case insensitive", data.Categorical("Iris-Setosa"), data.Categorical("iris-setosa"), true, false},
		{"different category", data.Categorical("yes"), data.Categorical("no"), false, false},
		{"same number", data.Numeric(1), data.Numeric(1), true, false},
		{"numbers are exact", data.Numeric(1), data.Numeric(1.0000001), false, false},
		{"numeric result for categorical target", data.Categorical("1"), data.Numeric(1), false, true},
		{"categorical result for numeric target", data.Numeric(1), data.Categorical("1"), false, true},
		{"unset target", nil, data.Categorical("x"), false, true},
		{"unset result", data.Categorical("x"), nil, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Correct(tt.actual, tt.predicted)
			if tt.wantErr {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(err, &valErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccuracy(t *testing.T) {
	s, err := Accuracy(cats("a", "b", "a", "b"), cats("a", "b", "b", "B"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Correct)
	assert.Equal(t, 4, s.Total)
	assert.InDelta(t, 75.0, s.Accuracy, 1e-12)

	s, err = Accuracy(nums(1, 2, 3), nums(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Accuracy)

	s, err = Accuracy(nums(1, 2), nums(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Accuracy)
}

func TestAccuracyErrors(t *testing.T) {
	_, err := Accuracy(nil, nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = Accuracy(cats("a", "b"), cats("a"))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = Accuracy(cats("a", "b"), []data.Value{data.Categorical("a"), data.Numeric(1)})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestConfusionMatrix(t *testing.T) {
	cm, err := NewConfusionMatrix(
		cats("cat", "dog", "cat", "bird", "dog"),
		cats("cat", "cat", "cat", "dog", "dog"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog", "bird"}, cm.Labels)
	assert.Equal(t, 2, cm.Count("cat", "cat"))
	assert.Equal(t, 1, cm.Count("dog", "cat"))
	assert.Equal(t, 1, cm.Count("dog", "dog"))
	assert.Equal(t, 1, cm.Count("bird", "dog"))
	assert.Equal(t, 0, cm.Count("bird", "bird"))
	assert.Equal(t, 0, cm.Count("fish", "cat"))

	for _, row := range cm.Counts {
		assert.Len(t, row, 3)
	}
	assert.Contains(t, cm.String(), "bird")

	_, err = NewConfusionMatrix(cats("a"), nil)
	assert.Error(t, err)
}

func TestConfusionDiagonalMatchesCorrect(t *testing.T) {
	tests := []struct {
		name      string
		actual    []data.Value
		predicted []data.Value
		labels    []string
	}{
		{
			name:      "categorical case folding",
			actual:    cats("Yes", "no", "YES"),
			predicted: cats("yes", "No", "no"),
			labels:    []string{"Yes", "no"},
		},
		{
			name:      "numeric labels are not rounded",
			actual:    []data.Value{data.Numeric(1.001), data.Numeric(2)},
			predicted: []data.Value{data.Numeric(1.004), data.Numeric(2)},
			labels:    []string{"1.001", "1.004", "2"},
		},
		{
			name:      "signed zero",
			actual:    []data.Value{data.Numeric(0)},
			predicted: []data.Value{data.Numeric(math.Copysign(0, -1))},
			labels:    []string{"0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Accuracy(tt.actual, tt.predicted)
			require.NoError(t, err)
			cm, err := NewConfusionMatrix(tt.actual, tt.predicted)
			require.NoError(t, err)

			assert.Equal(t, tt.labels, cm.Labels)
			assert.Equal(t, score.Correct, cm.Diagonal())
		})
	}
}

func TestConfusionCountIgnoresCase(t *testing.T) {
	cm, err := NewConfusionMatrix(cats("Yes", "yes"), cats("yes", "no"))
	require.NoError(t, err)

	assert.Equal(t, 1, cm.Count("YES", "yes"))
	assert.Equal(t, 1, cm.Count("Yes", "no"))
}
