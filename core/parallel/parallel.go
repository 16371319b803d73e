// Package parallel は列単位・範囲単位の処理をCPUコア数に応じて分散させます。
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold はこれ以下の要素数なら逐次処理する目安です。
const DefaultThreshold = 4

// Parallelize は items 個の要素を CPU コア数ぶんの連続した範囲 [start, end) に分け、
// fn を並列に実行して全ての完了を待ちます。各範囲は重ならないため、
// fn は自分の範囲の要素にだけ書き込めば排他制御は不要です。
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold は items が threshold を超える場合だけ並列化します。
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ForEach は各インデックスについて fn を呼び出し、最初に発生したエラー
// （インデックスの小さい順）を返します。
func ForEach(items int, threshold int, fn func(i int) error) error {
	if items <= 0 {
		return nil
	}
	errs := make([]error, items)
	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = fn(i)
		}
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
