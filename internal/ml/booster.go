package ml

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// BoosterParams are the gradient boosting hyperparameters. Names follow the
// XGBoost ones the model was originally tuned with.
type BoosterParams struct {
	NumTrees        int     `json:"n_estimators"`
	MaxDepth        int     `json:"max_depth"`
	LearningRate    float64 `json:"learning_rate"`
	Subsample       float64 `json:"subsample"`
	ColsampleByTree float64 `json:"colsample_bytree"`
	MinChildWeight  float64 `json:"min_child_weight"`
	Gamma           float64 `json:"gamma"`
	Lambda          float64 `json:"reg_lambda"`
	BaseScore       float64 `json:"base_score"`
	ScalePosWeight  float64 `json:"scale_pos_weight"`
	Seed            int64   `json:"seed"`
}

func DefaultBoosterParams() BoosterParams {
	return BoosterParams{
		NumTrees:        200,
		MaxDepth:        5,
		LearningRate:    0.01,
		Subsample:       0.6,
		ColsampleByTree: 0.8,
		MinChildWeight:  3,
		Gamma:           0.1,
		Lambda:          1,
		BaseScore:       0.5,
		ScalePosWeight:  1,
		Seed:            42,
	}
}

func (p BoosterParams) Validate() error {
	switch {
	case p.NumTrees <= 0:
		return fmt.Errorf("n_estimators must be positive, got %d", p.NumTrees)
	case p.MaxDepth <= 0:
		return fmt.Errorf("max_depth must be positive, got %d", p.MaxDepth)
	case p.LearningRate <= 0:
		return fmt.Errorf("learning_rate must be positive, got %v", p.LearningRate)
	case p.Subsample <= 0 || p.Subsample > 1:
		return fmt.Errorf("subsample must be in (0, 1], got %v", p.Subsample)
	case p.ColsampleByTree <= 0 || p.ColsampleByTree > 1:
		return fmt.Errorf("colsample_bytree must be in (0, 1], got %v", p.ColsampleByTree)
	case p.MinChildWeight < 0 || p.Gamma < 0 || p.Lambda < 0:
		return errors.New("min_child_weight, gamma and reg_lambda must not be negative")
	case p.BaseScore <= 0 || p.BaseScore >= 1:
		return fmt.Errorf("base_score must be in (0, 1), got %v", p.BaseScore)
	case p.ScalePosWeight <= 0:
		return fmt.Errorf("scale_pos_weight must be positive, got %v", p.ScalePosWeight)
	}

	return nil
}

// TreeNode is one node of a regression tree stored as a flat array. Rows
// with x[Feature] < Threshold go Left.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t Tree) Predict(x []float64) float64 {
	i := 0

	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}

		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Booster is an additive ensemble of regression trees with a logistic link.
type Booster struct {
	NumFeatures int           `json:"num_features"`
	BaseMargin  float64       `json:"base_margin"`
	Params      BoosterParams `json:"params"`
	Trees       []Tree        `json:"trees"`
}

func (b *Booster) Validate() error {
	if b.NumFeatures <= 0 {
		return errors.New("booster has no features")
	}

	if len(b.Trees) == 0 {
		return errors.New("booster has no trees")
	}

	for t, tree := range b.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", t)
		}

		for i, n := range tree.Nodes {
			if n.Leaf {
				continue
			}

			// Children always come after their parent, so traversal terminates.
			if n.Left <= i || n.Right <= i || n.Left >= len(tree.Nodes) || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has invalid children", t, i)
			}

			if n.Feature < 0 || n.Feature >= b.NumFeatures {
				return fmt.Errorf("tree %d node %d uses feature %d out of %d", t, i, n.Feature, b.NumFeatures)
			}
		}
	}

	return nil
}

func (b *Booster) Margin(x []float64) float64 {
	margin := b.BaseMargin
	for _, t := range b.Trees {
		margin += t.Predict(x)
	}

	return margin
}

// PredictProba returns P(y=1 | x).
func (b *Booster) PredictProba(x []float64) (float64, error) {
	if len(x) != b.NumFeatures {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(x), b.NumFeatures)
	}

	return sigmoid(b.Margin(x)), nil
}

// TrainBooster fits trees on the logistic loss with second order gradients.
// Positive rows are weighted by ScalePosWeight.
func TrainBooster(x [][]float64, y []float64, params BoosterParams) (*Booster, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("params.Validate: %w", err)
	}

	if len(x) == 0 {
		return nil, errors.New("no training rows")
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("got %d rows and %d labels", len(x), len(y))
	}

	numFeatures := len(x[0])
	if numFeatures == 0 {
		return nil, errors.New("training rows have no features")
	}

	weights := make([]float64, len(y))

	for i, row := range x {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), numFeatures)
		}

		switch y[i] {
		case 0:
			weights[i] = 1
		case 1:
			weights[i] = params.ScalePosWeight
		default:
			return nil, fmt.Errorf("label of row %d is %v, expected 0 or 1", i, y[i])
		}
	}

	b := &Booster{
		NumFeatures: numFeatures,
		BaseMargin:  logit(params.BaseScore),
		Params:      params,
		Trees:       make([]Tree, 0, params.NumTrees),
	}

	gr := grower{
		x:      x,
		grad:   make([]float64, len(x)),
		hess:   make([]float64, len(x)),
		sorted: presort(x, numFeatures),
		params: params,
	}

	rng := rand.New(rand.NewSource(params.Seed)) //nolint:gosec // reproducible sampling
	margin := make([]float64, len(x))
	nodeOf := make([]int, len(x))

	for i := range margin {
		margin[i] = b.BaseMargin
	}

	for range params.NumTrees {
		for i := range x {
			p := sigmoid(margin[i])
			gr.grad[i] = weights[i] * (p - y[i])
			gr.hess[i] = weights[i] * p * (1 - p)
		}

		for i := range nodeOf {
			nodeOf[i] = 0
			if params.Subsample < 1 && rng.Float64() >= params.Subsample {
				nodeOf[i] = -1
			}
		}

		tree := gr.grow(nodeOf, sampleFeatures(rng, numFeatures, params.ColsampleByTree))

		for i, row := range x {
			margin[i] += tree.Predict(row)
		}

		b.Trees = append(b.Trees, tree)
	}

	return b, nil
}

type nodeStats struct {
	grad float64
	hess float64
}

type split struct {
	ok        bool
	gain      float64
	feature   int
	threshold float64
	left      nodeStats
}

type accumulator struct {
	left nodeStats
	last float64
	seen bool
}

type grower struct {
	x      [][]float64
	grad   []float64
	hess   []float64
	sorted [][]int
	params BoosterParams
}

// grow builds one tree level by level. nodeOf maps each row to its current
// node, -1 for rows left out of this tree; it is overwritten.
func (gr *grower) grow(nodeOf []int, features []int) Tree {
	nodes := []TreeNode{{Leaf: true}}
	stats := []nodeStats{{}}

	for i, n := range nodeOf {
		if n == 0 {
			stats[0].grad += gr.grad[i]
			stats[0].hess += gr.hess[i]
		}
	}

	frontier := []int{0}

	for depth := 0; depth < gr.params.MaxDepth && len(frontier) > 0; depth++ {
		slot := make([]int, len(nodes))
		for i := range slot {
			slot[i] = -1
		}

		for k, id := range frontier {
			slot[id] = k
		}

		best := make([]split, len(frontier))

		for _, f := range features {
			acc := make([]accumulator, len(frontier))

			for _, i := range gr.sorted[f] {
				id := nodeOf[i]
				if id < 0 || slot[id] < 0 {
					continue
				}

				k := slot[id]
				a := &acc[k]
				v := gr.x[i][f]

				if a.seen && v != a.last {
					gr.consider(&best[k], stats[id], a.left, f, a.last, v)
				}

				a.left.grad += gr.grad[i]
				a.left.hess += gr.hess[i]
				a.last = v
				a.seen = true
			}
		}

		var next []int

		for k, id := range frontier {
			s := best[k]
			if !s.ok {
				nodes[id].Value = gr.weight(stats[id])
				continue
			}

			left, right := len(nodes), len(nodes)+1
			nodes = append(nodes, TreeNode{Leaf: true}, TreeNode{Leaf: true})
			stats = append(stats, s.left, nodeStats{
				grad: stats[id].grad - s.left.grad,
				hess: stats[id].hess - s.left.hess,
			})

			nodes[id] = TreeNode{
				Feature:   s.feature,
				Threshold: s.threshold,
				Left:      left,
				Right:     right,
			}

			next = append(next, left, right)
		}

		for i, id := range nodeOf {
			if id < 0 || nodes[id].Leaf {
				continue
			}

			n := nodes[id]
			if gr.x[i][n.Feature] < n.Threshold {
				nodeOf[i] = n.Left
			} else {
				nodeOf[i] = n.Right
			}
		}

		frontier = next
	}

	for _, id := range frontier {
		nodes[id].Value = gr.weight(stats[id])
	}

	return Tree{Nodes: nodes}
}

func (gr *grower) consider(best *split, total, left nodeStats, feature int, lo, hi float64) {
	right := nodeStats{grad: total.grad - left.grad, hess: total.hess - left.hess}

	if left.hess < gr.params.MinChildWeight || right.hess < gr.params.MinChildWeight {
		return
	}

	lambda := gr.params.Lambda
	gain := 0.5*(left.grad*left.grad/(left.hess+lambda)+
		right.grad*right.grad/(right.hess+lambda)-
		total.grad*total.grad/(total.hess+lambda)) - gr.params.Gamma

	if gain <= 0 || (best.ok && gain <= best.gain) {
		return
	}

	threshold := lo + (hi-lo)/2
	if threshold <= lo {
		threshold = hi
	}

	*best = split{ok: true, gain: gain, feature: feature, threshold: threshold, left: left}
}

func (gr *grower) weight(s nodeStats) float64 {
	return -s.grad / (s.hess + gr.params.Lambda) * gr.params.LearningRate
}

func presort(x [][]float64, numFeatures int) [][]int {
	sorted := make([][]int, numFeatures)

	for f := range numFeatures {
		idx := make([]int, len(x))
		for i := range idx {
			idx[i] = i
		}

		slices.SortStableFunc(idx, func(a, b int) int {
			return cmp.Compare(x[a][f], x[b][f])
		})

		sorted[f] = idx
	}

	return sorted
}

func sampleFeatures(rng *rand.Rand, numFeatures int, ratio float64) []int {
	if ratio >= 1 {
		all := make([]int, numFeatures)
		for i := range all {
			all[i] = i
		}

		return all
	}

	k := max(1, int(float64(numFeatures)*ratio))
	features := rng.Perm(numFeatures)[:k]
	slices.Sort(features)

	return features
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}
