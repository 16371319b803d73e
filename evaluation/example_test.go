package evaluation_test

import (
	"fmt"

	"github.com/YuminosukeSato/mleval/classifiers/baseline"
	"github.com/YuminosukeSato/mleval/core/data"
	"github.com/YuminosukeSato/mleval/evaluation"
	"github.com/YuminosukeSato/mleval/pkg/log"
)

func ExampleEvaluator_EvaluateWholeSet() {
	d, _ := data.New(2, data.WithAttributeNames([]string{"windy", "play"}))
	for _, row := range [][]string{{"false", "yes"}, {"true", "no"}, {"false", "yes"}} {
		_ = d.AppendCategorical(row)
	}

	e, err := evaluation.New(baseline.NewZeroR(), d, evaluation.WithLogger(log.Nop()))
	if err != nil {
		fmt.Println(err)
		return
	}
	rep, err := e.EvaluateWholeSet()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(rep)
	fmt.Printf("%d/%d correct\n", rep.Correct, rep.Total)

	// Output:
	// Evaluation (whole dataset): 66.67%
	// 2/3 correct
}
