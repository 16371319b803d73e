package reader

import (
	"bufio"
	"io"
	"strings"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// DefaultCSVDelimiter は CSV の既定の区切り文字です。
const DefaultCSVDelimiter = ";"

// CSVReader は先頭行をヘッダ（属性名）とする区切りテキストを読み込みます。
type CSVReader struct {
	opts options
}

// NewCSVReader は CSVReader を作成します。既定の区切り文字は ";" です。
func NewCSVReader(opts ...Option) *CSVReader {
	return &CSVReader{opts: newOptions(DefaultCSVDelimiter, opts)}
}

// Read implements Reader.
func (c *CSVReader) Read(r io.Reader) (*data.Dataset, error) {
	return parseLogged(r, "<csv>", c.opts, c.parse)
}

// ReadFile implements Reader.
func (c *CSVReader) ReadFile(path string) (*data.Dataset, error) {
	return readFile(path, c.opts, c.parse)
}

func (c *CSVReader) parse(r io.Reader, source string) (*data.Dataset, error) {
	sc := newScanner(r)
	var (
		d      *data.Dataset
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, c.opts.delimiter)
		if d == nil {
			var err error
			d, err = data.New(len(fields),
				data.WithTargetIndex(c.opts.targetIndex),
				data.WithAttributeNames(fields),
			)
			if err != nil {
				return nil, errors.NewParseError(source, lineNo, "invalid header", err)
			}
			continue
		}
		if err := appendRow(d, fields, source, lineNo); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.NewParseError(source, lineNo, "read failed", err)
	}
	if d == nil {
		return nil, errors.NewParseError(source, 0, "missing header line", errors.ErrEmptyData)
	}
	return d, nil
}

const maxLineBytes = 1 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return sc
}
