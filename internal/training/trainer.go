package training

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/roviahq/rovia/internal/mlmodel"
	"github.com/roviahq/rovia/pkg/logger"
)

// Trainer fits a logistic regression click model by gradient descent.
type Trainer struct {
	log          logger.Logger
	seed         int64
	learningRate float64
	iterations   int
	testFraction float64
}

// TrainerOption applies a configuration option to the Trainer.
type TrainerOption func(*Trainer)

// WithSeed fixes the split and shuffle seed.
func WithSeed(seed int64) TrainerOption {
	return func(t *Trainer) { t.seed = seed }
}

// WithLearningRate overrides the gradient descent step size.
func WithLearningRate(lr float64) TrainerOption {
	return func(t *Trainer) {
		if lr > 0 {
			t.learningRate = lr
		}
	}
}

// WithIterations overrides the gradient descent iteration count.
func WithIterations(n int) TrainerOption {
	return func(t *Trainer) {
		if n > 0 {
			t.iterations = n
		}
	}
}

// NewTrainer creates a trainer with default hyperparameters.
func NewTrainer(opts ...TrainerOption) *Trainer {
	t := &Trainer{
		log:          logger.Named("training"),
		seed:         42,
		learningRate: 0.1,
		iterations:   500,
		testFraction: 0.25,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result holds the fitted model and its held-out evaluation.
type Result struct {
	Artifact  *mlmodel.Artifact
	AUC       float64
	Accuracy  float64
	Rows      int
	Positives int
	TestRows  int
}

// Train fits the model on a stratified 75/25 split with balanced class
// weights and evaluates on the held-out quarter.
func (t *Trainer) Train(ctx context.Context, rows []TrainingRow) (*Result, error) {
	positives := 0
	for _, r := range rows {
		if r.Label == 1 {
			positives++
		}
	}
	if positives == 0 {
		return nil, ErrNoPositives
	}
	if positives == len(rows) {
		return nil, ErrNoNegatives
	}

	features := make([][]float64, len(rows))
	labels := make([]float64, len(rows))
	for i, r := range rows {
		vec := make([]float64, len(FeatureColumns))
		for j, col := range FeatureColumns {
			vec[j] = r.Feature(col)
		}
		features[i] = vec
		labels[i] = float64(r.Label)
	}

	trainIdx, testIdx := t.stratifiedSplit(labels)
	bias, weights := t.fit(features, labels, trainIdx)

	evalIdx := testIdx
	if len(evalIdx) == 0 {
		evalIdx = trainIdx
	}
	auc, acc := evaluate(features, labels, evalIdx, bias, weights)

	weightMap := make(map[string]float64, len(FeatureColumns))
	for j, col := range FeatureColumns {
		weightMap[col] = weights[j]
	}

	t.log.Info(ctx, "model trained",
		logger.Int("rows", len(rows)),
		logger.Int("positives", positives),
		logger.Int("test_rows", len(testIdx)),
		logger.Float64("auc", auc),
		logger.Float64("accuracy", acc))

	return &Result{
		Artifact: &mlmodel.Artifact{
			Model:       mlmodel.LRModel{Bias: bias, Weights: weightMap},
			FeatureCols: append([]string(nil), FeatureColumns...),
		},
		AUC:       auc,
		Accuracy:  acc,
		Rows:      len(rows),
		Positives: positives,
		TestRows:  len(testIdx),
	}, nil
}

// stratifiedSplit holds out roughly a quarter of each class. A class too
// small to spare a sample stays entirely in the training split.
func (t *Trainer) stratifiedSplit(labels []float64) (trainIdx, testIdx []int) {
	rng := rand.New(rand.NewSource(t.seed))
	byClass := map[float64][]int{}
	for i, y := range labels {
		byClass[y] = append(byClass[y], i)
	}

	classes := make([]float64, 0, len(byClass))
	for y := range byClass {
		classes = append(classes, y)
	}
	sort.Float64s(classes)

	for _, y := range classes {
		idx := byClass[y]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		n := int(float64(len(idx)) * t.testFraction)
		if n == 0 && len(idx) >= 4 {
			n = 1
		}
		testIdx = append(testIdx, idx[:n]...)
		trainIdx = append(trainIdx, idx[n:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx
}

// fit runs full-batch gradient descent on the cross-entropy loss, weighting
// each sample inversely to its class frequency in the training split.
func (t *Trainer) fit(features [][]float64, labels []float64, trainIdx []int) (float64, []float64) {
	nPos, nNeg := 0.0, 0.0
	for _, i := range trainIdx {
		if labels[i] == 1 {
			nPos++
		} else {
			nNeg++
		}
	}
	total := nPos + nNeg
	wPos, wNeg := 1.0, 1.0
	if nPos > 0 && nNeg > 0 {
		wPos = total / (2 * nPos)
		wNeg = total / (2 * nNeg)
	}

	dim := len(FeatureColumns)
	bias := 0.0
	weights := make([]float64, dim)
	gradW := make([]float64, dim)

	for iter := 0; iter < t.iterations; iter++ {
		gradB := 0.0
		for j := range gradW {
			gradW[j] = 0
		}
		for _, i := range trainIdx {
			p := sigmoid(bias + dot(weights, features[i]))
			sw := wNeg
			if labels[i] == 1 {
				sw = wPos
			}
			g := sw * (p - labels[i])
			gradB += g
			for j, x := range features[i] {
				gradW[j] += g * x
			}
		}
		step := t.learningRate / total
		bias -= step * gradB
		for j := range weights {
			weights[j] -= step * gradW[j]
		}
	}
	return bias, weights
}

func evaluate(features [][]float64, labels []float64, idx []int, bias float64, weights []float64) (auc, accuracy float64) {
	probs := make([]float64, len(idx))
	correct := 0
	for k, i := range idx {
		probs[k] = sigmoid(bias + dot(weights, features[i]))
		pred := 0.0
		if probs[k] >= 0.5 {
			pred = 1
		}
		if pred == labels[i] {
			correct++
		}
	}
	if len(idx) > 0 {
		accuracy = float64(correct) / float64(len(idx))
	}

	ys := make([]float64, len(idx))
	for k, i := range idx {
		ys[k] = labels[i]
	}
	return rocAUC(ys, probs), accuracy
}

// rocAUC computes the area under the ROC curve via the rank statistic, with
// tied scores sharing their average rank. Returns 0.5 when only one class is
// present since ranking quality is undefined there.
func rocAUC(labels, scores []float64) float64 {
	type pair struct {
		score float64
		label float64
	}
	pairs := make([]pair, len(scores))
	for i := range scores {
		pairs[i] = pair{scores[i], labels[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	nPos, nNeg := 0.0, 0.0
	sumPosRanks := 0.0
	i := 0
	for i < len(pairs) {
		j := i
		for j < len(pairs) && pairs[j].score == pairs[i].score {
			j++
		}
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if pairs[k].label == 1 {
				nPos++
				sumPosRanks += avgRank
			} else {
				nNeg++
			}
		}
		i = j
	}
	if nPos == 0 || nNeg == 0 {
		return 0.5
	}
	return (sumPosRanks - nPos*(nPos+1)/2) / (nPos * nNeg)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(w, x []float64) float64 {
	var s float64
	for i := range w {
		s += w[i] * x[i]
	}
	return s
}
