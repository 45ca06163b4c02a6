package ml

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Evaluation holds hold-out metrics at the 0.5 decision threshold.
type Evaluation struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	AUC       float64 `json:"auc"`
}

func Evaluate(y, proba []float64) Evaluation {
	var tp, fp, tn, fn float64

	for i, p := range proba {
		predicted := p > 0.5
		actual := y[i] == 1

		switch {
		case predicted && actual:
			tp++
		case predicted && !actual:
			fp++
		case !predicted && actual:
			fn++
		default:
			tn++
		}
	}

	e := Evaluation{AUC: auc(y, proba)}

	if total := tp + fp + tn + fn; total > 0 {
		e.Accuracy = (tp + tn) / total
	}

	if tp+fp > 0 {
		e.Precision = tp / (tp + fp)
	}

	if tp+fn > 0 {
		e.Recall = tp / (tp + fn)
	}

	return e
}

func auc(y, proba []float64) float64 {
	type scored struct {
		p        float64
		positive bool
	}

	pairs := make([]scored, len(proba))
	for i, p := range proba {
		pairs[i] = scored{p: p, positive: y[i] == 1}
	}

	slices.SortFunc(pairs, func(a, b scored) int { return cmp.Compare(a.p, b.p) })

	scores := make([]float64, len(pairs))
	classes := make([]bool, len(pairs))
	positives := 0

	for i, s := range pairs {
		scores[i] = s.p
		classes[i] = s.positive

		if s.positive {
			positives++
		}
	}

	if positives == 0 || positives == len(pairs) {
		return 0
	}

	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)

	return integrate.Trapezoidal(fpr, tpr)
}
