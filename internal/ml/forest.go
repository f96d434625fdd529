package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// RandomForest is a bagged ensemble of CART regression trees. Trees are grown
// on bootstrap samples with per-split feature subsampling; predictions are the
// ensemble mean. A fixed seed makes training fully deterministic.
type RandomForest struct {
	Trees          int    `json:"trees"`
	MaxDepth       int    `json:"max_depth"`
	MinSamplesLeaf int    `json:"min_samples_leaf"`
	MaxFeatures    string `json:"max_features"`
	Seed           int64  `json:"seed"`

	Estimators []*TreeNode `json:"estimators,omitempty"`
}

// TreeNode is one node of a regression tree. Leaves carry the mean target of
// their training sample; internal nodes split on Feature <= Threshold.
type TreeNode struct {
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"value,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
}

func (m *RandomForest) applyDefaults() {
	if m.Trees <= 0 {
		m.Trees = 100
	}
	if m.MaxDepth <= 0 {
		m.MaxDepth = 15
	}
	if m.MinSamplesLeaf <= 0 {
		m.MinSamplesLeaf = 2
	}
	if m.MaxFeatures == "" {
		m.MaxFeatures = "sqrt"
	}
	if m.Seed == 0 {
		m.Seed = 42
	}
}

// Family returns the model family identifier
func (m *RandomForest) Family() string { return FamilyRandomForest }

// featuresPerSplit resolves the MaxFeatures setting against p features
func (m *RandomForest) featuresPerSplit(p int) int {
	switch m.MaxFeatures {
	case "sqrt":
		k := int(math.Sqrt(float64(p)))
		if k < 1 {
			k = 1
		}
		return k
	default:
		return p
	}
}

// Fit grows the configured number of trees on bootstrap samples of X
func (m *RandomForest) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 || n != len(y) {
		return fmt.Errorf("invalid training data: %d rows, %d targets", n, len(y))
	}
	m.applyDefaults()

	p := len(X[0])
	k := m.featuresPerSplit(p)

	m.Estimators = make([]*TreeNode, m.Trees)
	for t := 0; t < m.Trees; t++ {
		rng := rand.New(rand.NewSource(m.Seed + int64(t)))

		indices := make([]int, n)
		for i := range indices {
			indices[i] = rng.Intn(n)
		}

		m.Estimators[t] = m.growTree(X, y, indices, 0, k, rng)
	}

	return nil
}

// growTree recursively builds one regression tree over the sample indices
func (m *RandomForest) growTree(X [][]float64, y []float64, indices []int, depth, k int, rng *rand.Rand) *TreeNode {
	mean, sse := meanAndSSE(y, indices)

	if depth >= m.MaxDepth || len(indices) < 2*m.MinSamplesLeaf || sse == 0 {
		return &TreeNode{Leaf: true, Value: mean}
	}

	feature, threshold, ok := m.bestSplit(X, y, indices, k, rng)
	if !ok {
		return &TreeNode{Leaf: true, Value: mean}
	}

	var left, right []int
	for _, idx := range indices {
		if X[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) < m.MinSamplesLeaf || len(right) < m.MinSamplesLeaf {
		return &TreeNode{Leaf: true, Value: mean}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      m.growTree(X, y, left, depth+1, k, rng),
		Right:     m.growTree(X, y, right, depth+1, k, rng),
	}
}

// bestSplit searches k randomly chosen features for the threshold minimizing
// the summed squared error of the two children
func (m *RandomForest) bestSplit(X [][]float64, y []float64, indices []int, k int, rng *rand.Rand) (int, float64, bool) {
	p := len(X[0])
	candidates := rng.Perm(p)[:k]

	type pair struct {
		value  float64
		target float64
	}

	bestScore := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	pairs := make([]pair, len(indices))
	for _, feature := range candidates {
		for i, idx := range indices {
			pairs[i] = pair{value: X[idx][feature], target: y[idx]}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

		// Prefix sums over the sorted sample let each split point be scored
		// in constant time.
		var totalSum, totalSq float64
		for _, pr := range pairs {
			totalSum += pr.target
			totalSq += pr.target * pr.target
		}

		var leftSum, leftSq float64
		n := float64(len(pairs))
		for i := 0; i < len(pairs)-1; i++ {
			leftSum += pairs[i].target
			leftSq += pairs[i].target * pairs[i].target

			// Cannot split between equal values
			if pairs[i].value == pairs[i+1].value {
				continue
			}

			nl := float64(i + 1)
			nr := n - nl
			if int(nl) < m.MinSamplesLeaf || int(nr) < m.MinSamplesLeaf {
				continue
			}

			leftSSE := leftSq - leftSum*leftSum/nl
			rightSum := totalSum - leftSum
			rightSSE := (totalSq - leftSq) - rightSum*rightSum/nr
			score := leftSSE + rightSSE

			if score < bestScore {
				bestScore = score
				bestFeature = feature
				bestThreshold = (pairs[i].value + pairs[i+1].value) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func meanAndSSE(y []float64, indices []int) (mean, sse float64) {
	if len(indices) == 0 {
		return 0, 0
	}
	for _, idx := range indices {
		mean += y[idx]
	}
	mean /= float64(len(indices))
	for _, idx := range indices {
		diff := y[idx] - mean
		sse += diff * diff
	}
	return mean, sse
}

// Predict averages the predictions of every tree
func (m *RandomForest) Predict(x []float64) (float64, error) {
	if len(m.Estimators) == 0 {
		return 0, fmt.Errorf("model is not fitted")
	}

	var sum float64
	for _, root := range m.Estimators {
		node := root
		for !node.Leaf {
			if x[node.Feature] <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		sum += node.Value
	}
	return sum / float64(len(m.Estimators)), nil
}
