// Package evaluation は分類器の学習とテストを行い、正解率を報告します。
//
// 3つの評価方法を提供します。
//
//	e, err := evaluation.NewFromFile(knn.New(), "iris.arff")
//	whole, err := e.EvaluateWholeSet()          // 全件で学習・テスト
//	held, err := e.EvaluateSet(testRecords)     // 全件で学習、指定レコードでテスト
//	cv, err := e.EvaluateCV()                   // k 分割交差検証
//
// 分類器の panic は PanicError に変換され、エラーは全て呼び出し元に返されます。
package evaluation

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/core/model"
	"github.com/YuminosukeSato/mleval/core/parallel"
	"github.com/YuminosukeSato/mleval/crossval"
	"github.com/YuminosukeSato/mleval/metrics"
	"github.com/YuminosukeSato/mleval/pkg/config"
	"github.com/YuminosukeSato/mleval/pkg/errors"
	"github.com/YuminosukeSato/mleval/pkg/log"
	"github.com/YuminosukeSato/mleval/reader"
)

// Evaluator は1つの分類器と1つのデータセットを保持して評価を行う
type Evaluator struct {
	clf  model.Classifier
	data *data.Dataset

	cfg           *config.Config
	parallelFolds bool
	logger        log.Logger
	runID         string
}

// Option は Evaluator の設定を変更する
type Option func(*Evaluator)

// WithConfig は設定をまとめて指定する。個別のオプションは後から上書きできる。
// WithLogger を指定しない場合、既定のロガーは cfg.LogLevel で出力を絞る
func WithConfig(cfg *config.Config) Option {
	return func(e *Evaluator) {
		c := *cfg
		e.cfg = &c
	}
}

// WithFolds は交差検証の fold 数を指定する
func WithFolds(k int) Option {
	return func(e *Evaluator) { e.cfg.Folds = k }
}

// WithSeed は分割の乱数シードを指定する
func WithSeed(seed uint64) Option {
	return func(e *Evaluator) { e.cfg.Seed = seed }
}

// WithStratified は層化分割を使うかを指定する
func WithStratified(on bool) Option {
	return func(e *Evaluator) { e.cfg.Stratified = on }
}

// WithScaling は評価前にデータセットを min-max 正規化するかを指定する。
// 既に正規化済みのデータセットは再正規化せず、最初の統計をそのまま使う
func WithScaling(on bool) Option {
	return func(e *Evaluator) { e.cfg.Scale = on }
}

// WithParallelFolds は fold を並列に評価するかを指定する。
// 分類器が model.Cloner を実装している場合だけ有効で、fold ごとに複製を使う
func WithParallelFolds(on bool) Option {
	return func(e *Evaluator) { e.parallelFolds = on }
}

// WithLogger はロガーを指定する
func WithLogger(l log.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

func newEvaluator(clf model.Classifier, opts []Option) *Evaluator {
	e := &Evaluator{clf: clf, cfg: config.Default(), runID: uuid.NewString()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.WithLevel(log.GetLoggerWithName("evaluation"), e.cfg.Level())
	}
	e.logger = e.logger.With(
		log.EstimatorIDKey, e.runID,
		log.ModelNameKey, model.NameOf(clf),
	)
	return e
}

// New はデータセットと分類器から Evaluator を作成する
func New(clf model.Classifier, d *data.Dataset, opts ...Option) (*Evaluator, error) {
	if clf == nil {
		return nil, errors.NewValueError("evaluation.New", "nil classifier")
	}
	if d == nil {
		return nil, errors.NewValueError("evaluation.New", "nil dataset")
	}
	e := newEvaluator(clf, opts)
	e.data = d
	if err := e.prepare(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewFromFile は拡張子（.arff / .csv）に応じてファイルを読み込み、Evaluator を作成する
func NewFromFile(clf model.Classifier, path string, opts ...Option) (*Evaluator, error) {
	if clf == nil {
		return nil, errors.NewValueError("evaluation.NewFromFile", "nil classifier")
	}
	e := newEvaluator(clf, opts)

	ropts := []reader.Option{
		reader.WithTargetIndex(e.cfg.TargetIndex),
		reader.WithLogger(e.logger),
	}
	if e.cfg.Delimiter != "" {
		ropts = append(ropts, reader.WithDelimiter(e.cfg.Delimiter))
	}
	d, err := reader.ReadFile(path, ropts...)
	if err != nil {
		return nil, err
	}
	e.data = d
	if err := e.prepare(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Evaluator) prepare() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	if e.cfg.Scale && !e.data.IsScaled() {
		start := time.Now()
		e.data.Scale()
		e.logger.Debug("Dataset scaled",
			log.OperationKey, log.OperationScale,
			log.PhaseKey, log.PhasePreprocessing,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return nil
}

// Dataset は読み込んだデータセットを返す
func (e *Evaluator) Dataset() *data.Dataset { return e.data }

// RunID はこの Evaluator のログに付く識別子を返す
func (e *Evaluator) RunID() string { return e.runID }

// EvaluateWholeSet は全件で学習し、同じ全件でテストする
func (e *Evaluator) EvaluateWholeSet() (*Report, error) {
	start := time.Now()
	if err := train(e.clf, e.data); err != nil {
		return nil, e.fail(ModeWholeSet, err)
	}
	rep, err := test(e.clf, e.data.Records())
	if err != nil {
		return nil, e.fail(ModeWholeSet, err)
	}
	return e.finish(rep, ModeWholeSet, start), nil
}

// EvaluateSet は全件で学習し、records でテストする。
// データセットが正規化済みなら records の複製を同じ統計で正規化してから分類する
func (e *Evaluator) EvaluateSet(records []*data.Record) (*Report, error) {
	start := time.Now()
	queries := make([]*data.Record, len(records))
	for i, r := range records {
		if r == nil || r.Len() != e.data.NumAttributes() {
			got := 0
			if r != nil {
				got = r.Len()
			}
			return nil, e.fail(ModeHeldOut, errors.NewDimensionError("EvaluateSet", e.data.NumAttributes(), got, 1))
		}
		queries[i] = r
		if e.data.IsScaled() {
			queries[i] = r.Clone()
			if err := e.data.ScaleRecord(queries[i]); err != nil {
				return nil, e.fail(ModeHeldOut, err)
			}
		}
	}

	if err := train(e.clf, e.data); err != nil {
		return nil, e.fail(ModeHeldOut, err)
	}
	rep, err := test(e.clf, queries)
	if err != nil {
		return nil, e.fail(ModeHeldOut, err)
	}
	return e.finish(rep, ModeHeldOut, start), nil
}

// EvaluateCV は k 分割交差検証を行う。fold ごとに学習用データセットで学習し直し、
// テスト用レコードで採点する。報告される正解率は fold ごとの正解率の平均
func (e *Evaluator) EvaluateCV() (*CVReport, error) {
	start := time.Now()
	kf := crossval.NewKFold(
		crossval.WithFolds(e.cfg.Folds),
		crossval.WithSeed(e.cfg.Seed),
		crossval.WithStratified(e.cfg.Stratified),
		crossval.WithLogger(e.logger),
	)
	partition, err := kf.Split(e.data)
	if err != nil {
		return nil, e.fail(ModeCrossValidation, err)
	}

	folds := partition.Folds()
	reports := make([]*Report, len(folds))
	runFold := func(i int, clf model.Classifier) error {
		rep, err := e.evaluateFold(i, folds[i], clf)
		if err != nil {
			return errors.Wrapf(err, "fold %d", i)
		}
		reports[i] = rep
		return nil
	}

	cloner, canClone := e.clf.(model.Cloner)
	if e.parallelFolds && canClone {
		err = parallel.ForEach(len(folds), 1, func(i int) error {
			return runFold(i, cloner.Clone())
		})
	} else {
		for i := range folds {
			if err = runFold(i, e.clf); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, e.fail(ModeCrossValidation, err)
	}

	accs := make([]float64, len(reports))
	for i, r := range reports {
		accs[i] = r.Accuracy
	}
	mean, std := stat.MeanStdDev(accs, nil)

	cv := &CVReport{
		Classifier: model.NameOf(e.clf),
		Folds:      reports,
		Accuracy:   mean,
		StdDev:     std,
		Duration:   time.Since(start),
	}
	e.logger.Info("Evaluation finished",
		log.OperationKey, log.OperationEvaluate,
		log.ModeKey, string(ModeCrossValidation),
		log.FoldsKey, len(reports),
		log.AccuracyKey, cv.Accuracy,
		log.StdDevKey, cv.StdDev,
		log.DurationMsKey, cv.Duration.Milliseconds(),
	)
	return cv, nil
}

func (e *Evaluator) evaluateFold(i int, f *crossval.Fold, clf model.Classifier) (*Report, error) {
	start := time.Now()
	ts, err := f.TrainingSet()
	if err != nil {
		return nil, err
	}
	if err := train(clf, ts); err != nil {
		return nil, err
	}
	e.logger.Debug("Fold trained",
		log.FoldKey, i,
		log.OperationKey, log.OperationTrain,
		log.PhaseKey, log.PhaseTraining,
		log.TrainSizeKey, ts.Len(),
	)
	rep, err := test(clf, f.Test())
	if err != nil {
		return nil, err
	}
	rep.Mode = ModeCrossValidation
	rep.Classifier = model.NameOf(clf)
	rep.Duration = time.Since(start)
	e.logger.Debug("Fold evaluated",
		log.FoldKey, i,
		log.OperationKey, log.OperationClassify,
		log.PhaseKey, log.PhaseTesting,
		log.TrainSizeKey, ts.Len(),
		log.TestSizeKey, rep.Total,
		log.AccuracyKey, rep.Accuracy,
	)
	return rep, nil
}

func (e *Evaluator) finish(rep *Report, mode Mode, start time.Time) *Report {
	rep.Mode = mode
	rep.Classifier = model.NameOf(e.clf)
	rep.Duration = time.Since(start)
	e.logger.Info("Evaluation finished",
		log.OperationKey, log.OperationEvaluate,
		log.ModeKey, string(mode),
		log.SamplesKey, rep.Total,
		log.CorrectKey, rep.Correct,
		log.AccuracyKey, rep.Accuracy,
		log.DurationMsKey, rep.Duration.Milliseconds(),
	)
	return rep
}

func (e *Evaluator) fail(mode Mode, err error) error {
	e.logger.Error("Evaluation failed", err,
		log.OperationKey, log.OperationEvaluate,
		log.ModeKey, string(mode),
	)
	return err
}

// train は分類器の panic を PanicError に変換して学習する
func train(clf model.Classifier, d *data.Dataset) (err error) {
	defer errors.Recover(&err, "Train")
	return clf.Train(d)
}

func classify(clf model.Classifier, r *data.Record) (res model.Result, err error) {
	defer errors.Recover(&err, "Classify")
	return clf.Classify(r)
}

// test は records を分類して採点する
func test(clf model.Classifier, records []*data.Record) (*Report, error) {
	if len(records) == 0 {
		return nil, errors.ErrEmptyData
	}
	actual := make([]data.Value, len(records))
	predicted := make([]data.Value, len(records))
	for i, r := range records {
		res, err := classify(clf, r)
		if err != nil {
			return nil, errors.Wrapf(err, "classify record %d", i)
		}
		if res == nil {
			return nil, errors.NewModelError("Classify", "classifier returned no result", nil)
		}
		actual[i] = r.Target()
		predicted[i] = res
	}

	score, err := metrics.Accuracy(actual, predicted)
	if err != nil {
		return nil, err
	}
	cm, err := metrics.NewConfusionMatrix(actual, predicted)
	if err != nil {
		return nil, err
	}
	rep := &Report{
		Correct:   score.Correct,
		Total:     score.Total,
		Accuracy:  score.Accuracy,
		Confusion: cm,
	}
	// 数値の目的属性なら誤差も記録する（Accuracy が通った時点で種類は揃っている）
	if data.IsNumeric(actual[0]) {
		if reg, err := metrics.NumericErrors(actual, predicted); err == nil {
			rep.Regression = reg
		}
	}
	return rep, nil
}
