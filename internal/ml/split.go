package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// StratifiedSplit shuffles row indices per class with seed and moves
// round(testRatio*classSize) of each class to the test partition, so both
// partitions keep the label balance.
func StratifiedSplit(y []float64, testRatio float64, seed int64) (train, test []int, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in (0, 1), got %v", testRatio)
	}

	if len(y) == 0 {
		return nil, nil, errors.New("no rows to split")
	}

	classes := make(map[float64][]int)
	for i, label := range y {
		classes[label] = append(classes[label], i)
	}

	labels := make([]float64, 0, len(classes))
	for label := range classes {
		labels = append(labels, label)
	}

	slices.Sort(labels)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split

	for _, label := range labels {
		idx := classes[label]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })

		n := int(math.Round(float64(len(idx)) * testRatio))
		test = append(test, idx[:n]...)
		train = append(train, idx[n:]...)
	}

	slices.Sort(train)
	slices.Sort(test)

	if len(train) == 0 || len(test) == 0 {
		return nil, nil, fmt.Errorf("split of %d rows left an empty partition", len(y))
	}

	return train, test, nil
}

func take[T any](values []T, idx []int) []T {
	out := make([]T, len(idx))
	for k, i := range idx {
		out[k] = values[i]
	}

	return out
}
