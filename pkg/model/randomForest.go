package model

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// RandomForestRegressor averages many bootstrap-trained regression trees.
type RandomForestRegressor struct {
	// Hyperparameters / options
	NEstimators         int
	MaxDepth            int
	MinSamplesSplit     int
	MinSamplesLeaf      int
	MaxFeatures         int
	MinImpurityDecrease float64 // applied to every tree
	Bootstrap           bool
	RandomState         int64
	NJobs               int // trees fitted concurrently; 0 => GOMAXPROCS

	// Internal state
	Trees     []*DecisionTreeRegressor
	nFeatures int
}

// RandomForestOption functional config for RandomForestRegressor
type RandomForestOption func(*RandomForestRegressor)

func WithNEstimators(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.NEstimators = n }
}
func WithBootstrap(b bool) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.Bootstrap = b }
}
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxDepth = d }
}
func WithForestMinSamplesSplit(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.MinSamplesSplit = n }
}
func WithForestMinSamplesLeaf(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.MinSamplesLeaf = n }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxFeatures = k }
}
func WithForestMinImpurityDecrease(v float64) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.MinImpurityDecrease = v }
}
func WithSeed(seed int64) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.RandomState = seed }
}
func WithNJobs(n int) RandomForestOption { return func(rf *RandomForestRegressor) { rf.NJobs = n } }

// NewRandomForestRegressor initializes the forest with sensible defaults.
func NewRandomForestRegressor(opts ...RandomForestOption) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest. Each tree draws its bootstrap sample and its own
// seed from a source seeded with RandomState+i, so the fitted forest does not
// depend on goroutine scheduling.
func (rf *RandomForestRegressor) Fit(X mat.Matrix, y []float64) error {
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return errors.New("randomforest: empty X")
	}
	if len(y) != n {
		return fmt.Errorf("%w: randomforest: %d rows and %d targets", ErrShape, n, len(y))
	}
	if rf.NEstimators < 1 {
		return fmt.Errorf("randomforest: need at least one estimator, got %d", rf.NEstimators)
	}

	rows := rowsOf(X)
	trees := make([]*DecisionTreeRegressor, rf.NEstimators)

	var g errgroup.Group
	g.SetLimit(rf.jobs())
	for i := range rf.NEstimators {
		g.Go(func() error {
			treeRand := rand.New(rand.NewSource(rf.RandomState + int64(i)))

			// bootstrap by index, rows are shared read-only
			sample := make([]int, n)
			for j := range n {
				if rf.Bootstrap {
					sample[j] = treeRand.Intn(n)
				} else {
					sample[j] = j
				}
			}

			tree := NewDecisionTreeRegressor(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithMaxFeatures(rf.MaxFeatures),
				WithMinImpurityDecrease(rf.MinImpurityDecrease),
				WithRandomState(treeRand.Int63()),
			)
			if err := tree.fitIndices(rows, y, sample); err != nil {
				return fmt.Errorf("randomforest: tree %d: %w", i, err)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rf.Trees = trees
	rf.nFeatures = p
	return nil
}

// Predict returns the mean prediction of all trees for each row of X.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) ([]float64, error) {
	if len(rf.Trees) == 0 {
		return nil, ErrNotFitted
	}
	n, p := X.Dims()
	if p != rf.nFeatures {
		return nil, fmt.Errorf("%w: randomforest: fitted on %d features, got %d", ErrShape, rf.nFeatures, p)
	}

	perTree := make([][]float64, len(rf.Trees))
	var g errgroup.Group
	g.SetLimit(rf.jobs())
	for t, tree := range rf.Trees {
		g.Go(func() error {
			preds, err := tree.Predict(X)
			perTree[t] = preds
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// summed in tree order so the result is reproducible
	out := make([]float64, n)
	for _, preds := range perTree {
		for i, v := range preds {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(rf.Trees))
	}
	return out, nil
}

func (rf *RandomForestRegressor) jobs() int {
	if rf.NJobs > 0 {
		return rf.NJobs
	}
	return runtime.GOMAXPROCS(0)
}
