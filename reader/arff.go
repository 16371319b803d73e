package reader

import (
	"io"
	"strings"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// DefaultARFFDelimiter は ARFF の既定の区切り文字です。
const DefaultARFFDelimiter = ","

// ARFFReader は @attribute 宣言と @data ブロックからなる ARFF 形式を読み込みます。
//
// @relation と "%" で始まるコメント行は無視されます。属性の型宣言は読み飛ばし、
// 値の種類は各フィールドの内容から決まります。
type ARFFReader struct {
	opts options
}

// NewARFFReader は ARFFReader を作成します。既定の区切り文字は "," です。
func NewARFFReader(opts ...Option) *ARFFReader {
	return &ARFFReader{opts: newOptions(DefaultARFFDelimiter, opts)}
}

// Read implements Reader.
func (a *ARFFReader) Read(r io.Reader) (*data.Dataset, error) {
	return parseLogged(r, "<arff>", a.opts, a.parse)
}

// ReadFile implements Reader.
func (a *ARFFReader) ReadFile(path string) (*data.Dataset, error) {
	return readFile(path, a.opts, a.parse)
}

func (a *ARFFReader) parse(r io.Reader, source string) (*data.Dataset, error) {
	sc := newScanner(r)
	var (
		names  []string
		d      *data.Dataset
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		if d != nil {
			if err := appendRow(d, splitFields(line, a.opts.delimiter), source, lineNo); err != nil {
				return nil, err
			}
			continue
		}

		switch keyword := strings.ToLower(firstWord(line)); keyword {
		case "@attribute":
			name, err := attributeName(line[len(keyword):])
			if err != nil {
				return nil, errors.NewParseError(source, lineNo, "malformed @attribute", err)
			}
			names = append(names, name)
		case "@data":
			if len(names) == 0 {
				return nil, errors.NewParseError(source, lineNo, "@data before any @attribute", nil)
			}
			var err error
			d, err = data.New(len(names),
				data.WithTargetIndex(a.opts.targetIndex),
				data.WithAttributeNames(names),
			)
			if err != nil {
				return nil, errors.NewParseError(source, lineNo, "invalid attribute block", err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.NewParseError(source, lineNo, "read failed", err)
	}
	if d == nil {
		return nil, errors.NewParseError(source, lineNo, "missing @data section", nil)
	}
	return d, nil
}

func firstWord(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}

// attributeName は "@attribute" の後ろから属性名を取り出します。
// 'name with spaces' や "name" のような引用符付きの名前も扱います。
func attributeName(rest string) (string, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", errors.New("attribute name missing")
	}
	if q := rest[0]; q == '\'' || q == '"' {
		end := strings.IndexByte(rest[1:], q)
		if end < 0 {
			return "", errors.Newf("unterminated quoted name %q", rest)
		}
		return rest[1 : end+1], nil
	}
	return firstWord(rest), nil
}
