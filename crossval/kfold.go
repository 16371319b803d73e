// Package crossval はデータセットを k 個の学習・テストの組（fold）に分割します。
//
// 各 Record はちょうど1つの fold でテストに使われ、それ以外の全ての fold で
// 学習に使われます。同じシードと同じ並びのデータセットからは常に同じ分割が得られます。
package crossval

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
	"github.com/YuminosukeSato/mleval/pkg/log"
)

const (
	// DefaultFolds は既定の fold 数
	DefaultFolds = 10
	// DefaultSeed は既定の乱数シード
	DefaultSeed = 1
)

// KFold は k 分割交差検証の分割器
type KFold struct {
	folds      int
	seed       uint64
	stratified bool
	logger     log.Logger
}

// Option は KFold の設定を変更する
type Option func(*KFold)

// WithFolds は fold 数を指定する
func WithFolds(k int) Option {
	return func(kf *KFold) { kf.folds = k }
}

// WithSeed は乱数シードを指定する
func WithSeed(seed uint64) Option {
	return func(kf *KFold) { kf.seed = seed }
}

// WithStratified は目的属性の値ごとの比率を各 fold で揃えるかを指定する
func WithStratified(on bool) Option {
	return func(kf *KFold) { kf.stratified = on }
}

// WithLogger はロガーを指定する
func WithLogger(l log.Logger) Option {
	return func(kf *KFold) { kf.logger = l }
}

// NewKFold は新しい KFold を作成する（既定: 10 fold、シード 1、層化なし）
func NewKFold(opts ...Option) *KFold {
	kf := &KFold{folds: DefaultFolds, seed: DefaultSeed}
	for _, opt := range opts {
		opt(kf)
	}
	if kf.logger == nil {
		kf.logger = log.GetLoggerWithName("crossval")
	}
	return kf
}

// NSplits は fold 数を返す
func (kf *KFold) NSplits() int { return kf.folds }

// Split はデータセットを分割する。k < 2 または k > 件数の場合は ValidationError
func (kf *KFold) Split(d *data.Dataset) (*Partition, error) {
	n := d.Len()
	if kf.folds < 2 {
		return nil, errors.NewValidationError("folds", "need at least 2 folds", kf.folds)
	}
	if kf.folds > n {
		return nil, errors.NewValidationError("folds", fmt.Sprintf("cannot split %d records into more folds", n), kf.folds)
	}

	rng := rand.New(rand.NewPCG(kf.seed, kf.seed))
	var tests [][]int
	if kf.stratified {
		tests = stratifiedTestIndices(d, kf.folds, rng)
	} else {
		tests = testIndices(n, kf.folds, rng)
	}

	p := &Partition{folds: make([]*Fold, kf.folds)}
	for i, test := range tests {
		p.folds[i] = newFold(d, test)
		kf.logger.Debug("Fold created",
			log.OperationKey, log.OperationSplit,
			log.FoldKey, i,
			log.TrainSizeKey, len(p.folds[i].train),
			log.TestSizeKey, len(test),
		)
	}
	kf.logger.Info("Cross-validation split",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, n,
		log.FoldsKey, kf.folds,
		log.StratifiedKey, kf.stratified,
		log.RandomSeedKey, kf.seed,
	)
	return p, nil
}

// foldSizes は n 件を k 個に分けたときの各サイズ。先頭の n%k 個が1件多い
func foldSizes(n, k int) []int {
	sizes := make([]int, k)
	base, rest := n/k, n%k
	for i := range sizes {
		sizes[i] = base
		if i < rest {
			sizes[i]++
		}
	}
	return sizes
}

// testIndices は各 fold のテスト用インデックスを棄却サンプリングで選ぶ。
// 一様に引いたインデックスが既に他の fold で使われていれば引き直す
func testIndices(n, k int, rng *rand.Rand) [][]int {
	used := make([]bool, n)
	out := make([][]int, k)
	for f, size := range foldSizes(n, k) {
		test := make([]int, 0, size)
		for len(test) < size {
			idx := rng.IntN(n)
			if used[idx] {
				continue
			}
			used[idx] = true
			test = append(test, idx)
		}
		out[f] = test
	}
	return out
}

// stratifiedTestIndices は目的属性の値ごとにインデックスをシャッフルし、
// 前のグループの続きから fold に順番に配る。fold のサイズ差は高々1
func stratifiedTestIndices(d *data.Dataset, k int, rng *rand.Rand) [][]int {
	keys := make([]string, d.Len())
	for i, r := range d.All() {
		t := r.Target()
		keys[i] = data.KindOf(t).String() + ":" + data.Format(t)
	}
	indices := lo.Range(d.Len())
	groups := lo.GroupBy(indices, func(i int) string { return keys[i] })

	out := make([][]int, k)
	next := 0
	for _, key := range lo.Uniq(keys) {
		group := groups[key]
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		for _, idx := range group {
			out[next] = append(out[next], idx)
			next = (next + 1) % k
		}
	}
	return out
}
