package crossval

import (
	"slices"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/pkg/errors"
)

// Partition は1回の分割で作られた fold の集合
type Partition struct {
	folds []*Fold
}

// Len は fold 数を返す
func (p *Partition) Len() int { return len(p.folds) }

// Fold は i 番目の fold を返す。範囲外なら IndexError
func (p *Partition) Fold(i int) (*Fold, error) {
	if err := errors.CheckIndex("Partition.Fold", i, len(p.folds)); err != nil {
		return nil, err
	}
	return p.folds[i], nil
}

// Folds は全 fold を返す
func (p *Partition) Folds() []*Fold {
	return slices.Clone(p.folds)
}

// Fold は学習用とテスト用の互いに素な Record の組。作成後は変更されない
type Fold struct {
	source   *data.Dataset
	testIdx  []int
	trainIdx []int
	test     []*data.Record
	train    []*data.Record
}

// newFold はテスト用インデックスから fold を作る。学習用はそれ以外の全件をデータセット順に並べる
func newFold(d *data.Dataset, test []int) *Fold {
	records := d.Records()
	inTest := make(map[int]struct{}, len(test))
	for _, i := range test {
		inTest[i] = struct{}{}
	}
	trainIdx := lo.Filter(lo.Range(len(records)), func(i int, _ int) bool {
		_, ok := inTest[i]
		return !ok
	})
	pick := func(i int, _ int) *data.Record { return records[i] }
	return &Fold{
		source:   d,
		testIdx:  slices.Clone(test),
		trainIdx: trainIdx,
		test:     lo.Map(test, pick),
		train:    lo.Map(trainIdx, pick),
	}
}

// Test はテスト用 Record のコピーを返す
func (f *Fold) Test() []*data.Record { return slices.Clone(f.test) }

// Train は学習用 Record のコピーを返す
func (f *Fold) Train() []*data.Record { return slices.Clone(f.train) }

// TestIndices はテスト用 Record の元データセットでの行番号を返す
func (f *Fold) TestIndices() []int { return slices.Clone(f.testIdx) }

// TrainIndices は学習用 Record の元データセットでの行番号を返す
func (f *Fold) TrainIndices() []int { return slices.Clone(f.trainIdx) }

// TrainingSet は学習用 Record から属性名と目的属性の位置を引き継いだ Dataset を作る
func (f *Fold) TrainingSet() (*data.Dataset, error) {
	return data.FromRecords(f.train,
		data.WithTargetIndex(f.source.TargetIndex()),
		data.WithAttributeNames(f.source.AttributeNames()),
	)
}
