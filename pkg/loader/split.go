package loader

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gota/gota/dataframe"
)

// ErrBadSplit is returned when a split would leave one side empty.
var ErrBadSplit = errors.New("split: invalid partition")

// TrainTestSplit partitions the indices 0..n-1 into a train and a test set.
// The test side gets ceil(testRatio*n) rows. The same seed always yields the
// same partition.
func TrainTestSplit(n int, testRatio float64, seed int64) (train, test []int, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("%w: test ratio %v outside (0,1)", ErrBadSplit, testRatio)
	}
	nTest := int(math.Ceil(testRatio * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain <= 0 {
		return nil, nil, fmt.Errorf("%w: %d rows with test ratio %v", ErrBadSplit, n, testRatio)
	}

	rnd := rand.New(rand.NewSource(seed))
	indices := rnd.Perm(n)
	return indices[nTest:], indices[:nTest], nil
}

// SplitFrame applies TrainTestSplit to a feature table and its target.
func SplitFrame(X dataframe.DataFrame, y []float64, testRatio float64, seed int64) (XTrain, XTest dataframe.DataFrame, yTrain, yTest []float64, err error) {
	if X.Nrow() != len(y) {
		err = fmt.Errorf("%w: %d rows but %d targets", ErrBadSplit, X.Nrow(), len(y))
		return
	}
	trainIdx, testIdx, err := TrainTestSplit(len(y), testRatio, seed)
	if err != nil {
		return
	}

	XTrain = X.Subset(trainIdx)
	XTest = X.Subset(testIdx)
	if XTrain.Err != nil {
		err = XTrain.Err
		return
	}
	if XTest.Err != nil {
		err = XTest.Err
		return
	}
	yTrain = pick(y, trainIdx)
	yTest = pick(y, testIdx)
	return
}

func pick(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
