package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeRegressor is a CART regression tree using the squared-error
// criterion.
type DecisionTreeRegressor struct {
	// Hyperparameters / options
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	MaxFeatures         int     // 0 => use all features, >0 => number of features to sample per split
	MinImpurityDecrease float64 // minimal variance reduction to accept a split
	RandomState         int64   // seed for feature subsampling

	// internals
	root      *dtNode
	nFeatures int
}

// dtNode holds a node in the tree.
type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	nanLeft   bool    // where a missing value goes
	left      *dtNode
	right     *dtNode

	n     int
	value float64 // mean target of the samples that reached the node
}

// Option functional config
type Option func(*DecisionTreeRegressor)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeRegressor) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesLeaf = n }
}
func WithMaxFeatures(k int) Option { return func(t *DecisionTreeRegressor) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) Option {
	return func(t *DecisionTreeRegressor) { t.MinImpurityDecrease = v }
}
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeRegressor) { t.RandomState = seed }
}

// NewDecisionTreeRegressor returns a regressor with sensible defaults.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	d := &DecisionTreeRegressor{
		MaxDepth:            0,
		MinSamplesSplit:     2,
		MinSamplesLeaf:      1,
		MaxFeatures:         0,
		MinImpurityDecrease: 0.0,
		RandomState:         time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---------------------------
// Public API: Fit / Predict
// ---------------------------

// Fit trains the tree on X (n x p) and y (n targets).
// Missing feature values must be math.NaN().
func (t *DecisionTreeRegressor) Fit(X mat.Matrix, y []float64) error {
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return errors.New("dtree: empty X")
	}
	if len(y) != n {
		return fmt.Errorf("%w: dtree: %d rows and %d targets", ErrShape, n, len(y))
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndices(rowsOf(X), y, idx)
}

// fitIndices grows the tree on the samples listed in idx. Repeated indices
// (bootstrap draws) count once per occurrence.
func (t *DecisionTreeRegressor) fitIndices(rows [][]float64, y []float64, idx []int) error {
	if len(idx) == 0 {
		return errors.New("dtree: no samples")
	}
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("dtree: target contains NaN or Inf")
		}
	}
	t.nFeatures = len(rows[idx[0]])
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.root = t.buildNode(rows, y, idx, 0, rnd)
	return nil
}

// Predict returns one prediction per row of X.
func (t *DecisionTreeRegressor) Predict(X mat.Matrix) ([]float64, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	n, p := X.Dims()
	if p != t.nFeatures {
		return nil, fmt.Errorf("%w: dtree: fitted on %d features, got %d", ErrShape, t.nFeatures, p)
	}
	out := make([]float64, n)
	for i := range n {
		out[i] = t.predictSingle(mat.Row(nil, i, X))
	}
	return out, nil
}

// Depth returns the depth of the fitted tree (a single leaf has depth 0).
func (t *DecisionTreeRegressor) Depth() int { return depth(t.root) }

// ---------------------------
// Internal builders & helpers
// ---------------------------

// splitResult is the best split found for one feature.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	nanLeft   bool
}

// pair is a feature value and the sample it belongs to.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeRegressor) buildNode(rows [][]float64, y []float64, idx []int, depth int, rnd *rand.Rand) *dtNode {
	vals := make([]float64, len(idx))
	for k, ii := range idx {
		vals[k] = y[ii]
	}
	node := &dtNode{n: len(idx), value: stat.Mean(vals, nil), isLeaf: true}

	minLeaf := max(t.MinSamplesLeaf, 1)
	if len(idx) < t.MinSamplesSplit || len(idx) < 2*minLeaf {
		return node
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return node
	}
	if floats.Min(vals) == floats.Max(vals) {
		return node
	}

	p := t.nFeatures
	featIndices := make([]int, p)
	for j := range p {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		for i := 0; i < t.MaxFeatures; i++ {
			j := i + rnd.Intn(p-i)
			featIndices[i], featIndices[j] = featIndices[j], featIndices[i]
		}
		featIndices = featIndices[:t.MaxFeatures]
	}

	sum := floats.Sum(vals)
	parentSSE := floats.Dot(vals, vals) - sum*sum/float64(len(vals))

	best := splitResult{feature: -1}
	for _, f := range featIndices {
		r := t.findBestSplitForFeature(rows, y, idx, f, parentSSE, minLeaf)
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		return node
	}

	leftIdx := make([]int, 0, len(idx))
	rightIdx := make([]int, 0, len(idx))
	for _, ii := range idx {
		v := rows[ii][best.feature]
		switch {
		case math.IsNaN(v):
			if best.nanLeft {
				leftIdx = append(leftIdx, ii)
			} else {
				rightIdx = append(rightIdx, ii)
			}
		case v <= best.threshold:
			leftIdx = append(leftIdx, ii)
		default:
			rightIdx = append(rightIdx, ii)
		}
	}

	node.isLeaf = false
	node.feature = best.feature
	node.threshold = best.threshold
	node.nanLeft = best.nanLeft
	node.left = t.buildNode(rows, y, leftIdx, depth+1, rnd)
	node.right = t.buildNode(rows, y, rightIdx, depth+1, rnd)
	return node
}

// findBestSplitForFeature scans the sorted values of feature f once, keeping
// running sums so every candidate threshold costs O(1). Missing values are
// tried on both sides.
func (t *DecisionTreeRegressor) findBestSplitForFeature(rows [][]float64, y []float64, idx []int, f int, parentSSE float64, minLeaf int) splitResult {
	result := splitResult{feature: -1}

	valid := make([]pair, 0, len(idx))
	var nanN, nanSum, nanSq float64
	var vSum, vSq float64
	for _, ii := range idx {
		v, target := rows[ii][f], y[ii]
		if math.IsNaN(v) {
			nanN++
			nanSum += target
			nanSq += target * target
			continue
		}
		valid = append(valid, pair{v, ii})
		vSum += target
		vSq += target * target
	}
	if len(valid) < 2 {
		return result
	}
	sort.Slice(valid, func(a, b int) bool { return valid[a].v < valid[b].v })

	n := float64(len(idx))
	placements := []bool{false}
	if nanN > 0 {
		placements = []bool{true, false}
	}

	var lN, lSum, lSq float64
	for s := 1; s < len(valid); s++ {
		target := y[valid[s-1].i]
		lN++
		lSum += target
		lSq += target * target
		if valid[s].v == valid[s-1].v {
			continue
		}

		thr := (valid[s-1].v + valid[s].v) / 2.0
		if thr == valid[s].v {
			thr = valid[s-1].v
		}

		for _, nanLeft := range placements {
			ln, ls, lq := lN, lSum, lSq
			rn, rs, rq := float64(len(valid))-lN, vSum-lSum, vSq-lSq
			if nanLeft {
				ln, ls, lq = ln+nanN, ls+nanSum, lq+nanSq
			} else {
				rn, rs, rq = rn+nanN, rs+nanSum, rq+nanSq
			}
			if ln < float64(minLeaf) || rn < float64(minLeaf) {
				continue
			}
			sse := (lq - ls*ls/ln) + (rq - rs*rs/rn)
			gain := (parentSSE - sse) / n
			if gain > result.gain {
				result = splitResult{gain: gain, feature: f, threshold: thr, nanLeft: nanLeft}
			}
		}
	}

	if result.feature >= 0 && nanN == 0 {
		// no missing values seen here: send them to the larger side
		left := 0
		for _, pv := range valid {
			if pv.v <= result.threshold {
				left++
			}
		}
		result.nanLeft = left >= len(valid)-left
	}
	return result
}

func (t *DecisionTreeRegressor) predictSingle(x []float64) float64 {
	node := t.root
	for !node.isLeaf {
		val := x[node.feature]
		switch {
		case math.IsNaN(val):
			if node.nanLeft {
				node = node.left
			} else {
				node = node.right
			}
		case val <= node.threshold:
			node = node.left
		default:
			node = node.right
		}
	}
	return node.value
}

func depth(node *dtNode) int {
	if node == nil || node.isLeaf {
		return 0
	}
	return 1 + max(depth(node.left), depth(node.right))
}
