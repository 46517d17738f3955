package solforest

import (
	"github.com/esolpred/esolpred/pkg/errors"
)

// TreeNode is one node of a regression tree in flat-array form.  Internal
// nodes route on Feature/Threshold to the Left or Right child index; leaves
// carry the regression Value.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
	Leaf      bool
}

// Tree is a single regression tree.  Node 0 is the root.
type Tree struct {
	Nodes []TreeNode
}

// predict walks the tree for one feature vector.  The walk is bounded by the
// node count so a corrupt artifact with a routing cycle fails instead of
// spinning.
func (t *Tree) predict(x []float64) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, errors.New(errors.CodePrediction, "forest: tree has no nodes")
	}
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(x) {
			return 0, errors.Newf(errors.CodePrediction,
				"forest: tree routes on feature %d but row has %d features",
				node.Feature, len(x))
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, errors.Newf(errors.CodePrediction,
				"forest: tree child index %d is out of range", idx)
		}
	}
	return 0, errors.New(errors.CodePrediction, "forest: tree walk did not reach a leaf")
}

// Forest is an ensemble of regression trees.  The prediction for a row is
// the mean of the tree outputs.
type Forest struct {
	// NumFeatures is the feature-vector width the forest was trained on.
	NumFeatures int
	Trees       []Tree
}

// Predict evaluates the forest on every row of X, returning one value per
// row in input order.
func (f *Forest) Predict(X [][]float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, errors.New(errors.CodePrediction, "forest: artifact contains no trees")
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if f.NumFeatures > 0 && len(row) != f.NumFeatures {
			return nil, errors.Newf(errors.CodePrediction,
				"forest: row has %d features, model expects %d", len(row), f.NumFeatures)
		}
		var sum float64
		for t := range f.Trees {
			v, err := f.Trees[t].predict(row)
			if err != nil {
				return nil, err
			}
			sum += v
		}
		out[i] = sum / float64(len(f.Trees))
	}
	return out, nil
}
