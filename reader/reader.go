// Package reader はテキスト形式の表データを data.Dataset に読み込みます。
//
// ARFF（@attribute 宣言と @data ブロック）と、先頭行がヘッダの CSV の2形式を扱います。
// 各フィールドは前後の空白を除いた上で、数値として解釈できれば数値、
// そうでなければカテゴリ値になります。
//
// 読み込みに失敗した場合は途中までのデータセットを返さず、エラーだけを返します。
package reader

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
	"github.com/YuminosukeSato/mleval/pkg/log"
)

// Reader は入力からデータセットを作成します。
type Reader interface {
	// Read は r の内容を読み込みます。
	Read(r io.Reader) (*data.Dataset, error)
	// ReadFile は path のファイルを読み込みます。
	ReadFile(path string) (*data.Dataset, error)
}

type options struct {
	delimiter   string
	targetIndex int
	logger      log.Logger
}

// Option は Reader の設定を変更します。
type Option func(*options)

// WithDelimiter は列の区切り文字列を指定します。
func WithDelimiter(delim string) Option {
	return func(o *options) {
		o.delimiter = delim
	}
}

// WithTargetIndex は目的属性の位置を指定します。負の値は末尾から数えます（デフォルト -1）。
func WithTargetIndex(t int) Option {
	return func(o *options) {
		o.targetIndex = t
	}
}

// WithLogger はロガーを指定します。
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(defaultDelimiter string, opts []Option) options {
	o := options{delimiter: defaultDelimiter, targetIndex: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("reader")
	}
	return o
}

// ReadFile は拡張子（.arff / .csv）に応じた Reader で path を読み込みます。
func ReadFile(path string, opts ...Option) (*data.Dataset, error) {
	r, err := ForPath(path, opts...)
	if err != nil {
		return nil, err
	}
	return r.ReadFile(path)
}

// ForPath は拡張子に対応する Reader を返します。
func ForPath(path string, opts ...Option) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".arff":
		return NewARFFReader(opts...), nil
	case ".csv":
		return NewCSVReader(opts...), nil
	default:
		return nil, errors.NewValidationError("path", "unsupported file extension (want .arff or .csv)", path)
	}
}

// readFile はファイルを開いて parse に渡し、読み込み結果をログに出します。
func readFile(path string, o options, parse func(io.Reader, string) (*data.Dataset, error)) (*data.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return parseLogged(f, path, o, parse)
}

func parseLogged(r io.Reader, source string, o options, parse func(io.Reader, string) (*data.Dataset, error)) (*data.Dataset, error) {
	start := time.Now()
	d, err := parse(r, source)
	if err != nil {
		o.logger.Error("Failed to read dataset", err,
			log.OperationKey, log.OperationRead,
			log.SourceKey, source,
		)
		return nil, err
	}
	o.logger.Info("Dataset loaded",
		log.OperationKey, log.OperationRead,
		log.SourceKey, source,
		log.SamplesKey, d.Len(),
		log.FeaturesKey, d.NumAttributes(),
		log.TargetsKey, d.NumClasses(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return d, nil
}

// splitFields は区切り文字で分割し、各フィールドの前後の空白を取り除きます。
func splitFields(line, delim string) []string {
	return lo.Map(strings.Split(line, delim), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
}

// parseValue は数値として解釈できるトークンを数値に、それ以外をカテゴリ値にします。
// NaN や Inf のような有限でない数値はカテゴリ値として扱います。
func parseValue(token string) data.Value {
	if token == "" {
		return data.Categorical(token)
	}
	f, err := cast.ToFloat64E(token)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return data.Categorical(token)
	}
	return data.Numeric(f)
}

// appendRow は1行分のフィールドを Record にして d に追加します。
func appendRow(d *data.Dataset, fields []string, source string, line int) error {
	if len(fields) != d.NumAttributes() {
		return errors.NewParseError(source, line, "invalid number of attributes",
			errors.NewDimensionError("read", d.NumAttributes(), len(fields), 1))
	}
	rec := d.NewRecord()
	for i, tok := range fields {
		if err := rec.Set(i, parseValue(tok)); err != nil {
			return err
		}
	}
	return d.Append(rec)
}
