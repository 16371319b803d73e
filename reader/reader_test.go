package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
	"github.com/YuminosukeSato/mleval/pkg/log"
)

const irisARFF = `% Iris subset
@relation iris

@attribute sepallength numeric
@attribute 'petal width' REAL
@ATTRIBUTE class {Iris-setosa,Iris-versicolor}

@data
5.1, 0.2, Iris-setosa
% inline comment
7.0, 1.4, Iris-versicolor

6.4, ?, Iris-versicolor
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func quiet() Option { return WithLogger(log.Nop()) }

func TestCSVReaderBasic(t *testing.T) {
	d, err := NewCSVReader(quiet()).Read(strings.NewReader("a;b;c\n1;2;yes\n3;4;no\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, d.NumAttributes())
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"a", "b", "c"}, d.AttributeNames())
	assert.Equal(t, 2, d.NumClasses())

	r, err := d.At(0)
	require.NoError(t, err)
	assert.Equal(t, []data.Value{data.Numeric(1), data.Numeric(2), data.Categorical("yes")}, r.Values())
}

func TestCSVReaderTrimsAndSkipsBlankLines(t *testing.T) {
	d, err := NewCSVReader(quiet()).Read(strings.NewReader("\n x ; y \n 1.5 ; red \n\n2;blue\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, d.AttributeNames())
	assert.Equal(t, 2, d.Len())
	r, _ := d.At(0)
	assert.Equal(t, data.Categorical("red"), r.Target())
}

func TestCSVReaderCustomDelimiterAndTarget(t *testing.T) {
	d, err := NewCSVReader(quiet(), WithDelimiter(","), WithTargetIndex(0)).
		Read(strings.NewReader("label,f1\nyes,1\nno,2\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, d.TargetIndex())
	assert.Equal(t, []string{"yes", "no"}, d.Classes().CategoricalValues())
}

func TestCSVReaderFieldCountMismatch(t *testing.T) {
	_, err := NewCSVReader(quiet()).Read(strings.NewReader("a;b;c\n1;2;yes\n3;4\n"))
	require.Error(t, err)

	var parseErr *errors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)

	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)
}

func TestCSVReaderEmptyInput(t *testing.T) {
	_, err := NewCSVReader(quiet()).Read(strings.NewReader("\n\n"))
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestARFFReader(t *testing.T) {
	d, err := NewARFFReader(quiet()).Read(strings.NewReader(irisARFF))
	require.NoError(t, err)

	assert.Equal(t, []string{"sepallength", "petal width", "class"}, d.AttributeNames())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2, d.NumClasses())

	r, err := d.At(2)
	require.NoError(t, err)
	v, _ := r.At(1)
	assert.Equal(t, data.Categorical("?"), v, "missing marker stays categorical")
	v, _ = r.At(0)
	assert.Equal(t, data.Numeric(6.4), v)
}

func TestARFFReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"missing data section", "@relation x\n@attribute a numeric\n", 2},
		{"data without attributes", "@data\n1,2\n", 1},
		{"wrong field count", "@attribute a numeric\n@attribute b numeric\n@data\n1,2\n1,2,3\n", 5},
		{"unterminated quote", "@attribute 'a numeric\n@data\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewARFFReader(quiet()).Read(strings.NewReader(tt.input))
			assert.Nil(t, d)
			var parseErr *errors.ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.Equal(t, tt.line, parseErr.Line)
		})
	}
}

func TestReadFileDispatchesOnExtension(t *testing.T) {
	csvPath := writeFile(t, "data.CSV", "a;b;c\n1;2;x\n")
	d, err := ReadFile(csvPath, quiet())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())

	arffPath := writeFile(t, "iris.arff", irisARFF)
	d, err = ReadFile(arffPath, quiet())
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	_, err = ReadFile(writeFile(t, "data.txt", "a"), quiet())
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), quiet())
	assert.Error(t, err)
}

func TestReaderLogsLoad(t *testing.T) {
	logger := log.NewTestLogger(log.LevelDebug)
	_, err := NewCSVReader(WithLogger(logger)).Read(strings.NewReader("a;b\n1;x\n2;y\n"))
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("Dataset loaded"))
	assert.True(t, logger.ContainsField(log.SamplesKey, 2.0))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationRead))

	logger.Clear()
	_, err = NewCSVReader(WithLogger(logger)).Read(strings.NewReader("a;b\n1\n"))
	require.Error(t, err)
	assert.True(t, logger.ContainsMessage("Failed to read dataset"))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, data.Numeric(-1.5e2), parseValue("-1.5e2"))
	assert.Equal(t, data.Numeric(3), parseValue("3"))
	assert.Equal(t, data.Categorical("abc"), parseValue("abc"))
	assert.Equal(t, data.Categorical(""), parseValue(""))
	assert.Equal(t, data.Categorical("NaN"), parseValue("NaN"))
}
