package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueVariants(t *testing.T) {
	n := Numeric(3.14159)
	c := Categorical("yes")

	assert.True(t, IsNumeric(n))
	assert.False(t, IsCategorical(n))
	assert.True(t, IsCategorical(c))
	assert.False(t, IsNumeric(c))
	assert.False(t, IsNumeric(nil))
	assert.False(t, IsCategorical(nil))

	assert.Equal(t, "3.14", n.String())
	assert.Equal(t, "yes", c.String())
	assert.Equal(t, "?", Format(nil))
	assert.Equal(t, KindNumeric, KindOf(n))
	assert.Equal(t, KindCategorical, KindOf(c))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestWrongVariantAccessReturnsZero(t *testing.T) {
	f, ok := NumericOf(Categorical("a"))
	assert.False(t, ok)
	assert.Zero(t, f)

	s, ok := CategoricalOf(Numeric(1))
	assert.False(t, ok)
	assert.Empty(t, s)

	_, ok = NumericOf(nil)
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
		fold bool
	}{
		{"same numeric", Numeric(1), Numeric(1), true, true},
		{"different numeric", Numeric(1), Numeric(2), false, false},
		{"same text", Categorical("a"), Categorical("a"), true, true},
		{"case differs", Categorical("Yes"), Categorical("yes"), false, true},
		{"kinds differ", Numeric(1), Categorical("1"), false, false},
		{"both unset", nil, nil, true, true},
		{"one unset", Numeric(0), nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.fold, EqualFold(tt.a, tt.b))
		})
	}
}

func TestValueReassignmentChangesVariant(t *testing.T) {
	r := NewRecord(2)
	assert.NoError(t, r.SetNumeric(0, 1))
	v, _ := r.At(0)
	assert.True(t, IsNumeric(v))

	assert.NoError(t, r.SetCategorical(0, "x"))
	v, _ = r.At(0)
	assert.True(t, IsCategorical(v))
}
