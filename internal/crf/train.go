package crf

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// TrainOptions tham số huấn luyện perceptron
type TrainOptions struct {
	Iterations int
	Seed       int64
	Logger     *zap.Logger
}

// Train huấn luyện model bằng perceptron cấu trúc trung bình. Mọi thuộc
// tính và nhãn gặp trong corpus đều có trọng số, chuyển nhãn nối đầy đủ.
// Iterations <= 0 dùng 100 vòng.
func Train(seqs []TrainingSequence, opts TrainOptions) (*Model, error) {
	if len(seqs) == 0 {
		return nil, ErrEmptyCorpus
	}
	if opts.Iterations <= 0 {
		opts.Iterations = 100
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := NewModel()
	gold := make([][]int, len(seqs))
	for i, s := range seqs {
		if len(s.Features) != len(s.Labels) {
			return nil, fmt.Errorf("crf: chuỗi %d có %d vị trí nhưng %d nhãn", i, len(s.Features), len(s.Labels))
		}
		gold[i] = make([]int, len(s.Labels))
		for t, label := range s.Labels {
			gold[i][t] = m.Labels.ID(label)
		}
		for _, f := range s.Features {
			for attr := range f {
				m.Attributes.ID(attr)
			}
		}
	}
	m.NumLabels = m.Labels.Len()
	m.Weights = make([]float64, m.NumWeights())

	// acc cộng dồn c*delta, trọng số trung bình là w - acc/c
	acc := make([]float64, len(m.Weights))
	c := 1.0

	rng := rand.New(rand.NewSource(opts.Seed))
	order := rng.Perm(len(seqs))

	for epoch := 1; epoch <= opts.Iterations; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		mistakes := 0
		for _, idx := range order {
			s := seqs[idx]
			if len(s.Features) == 0 {
				continue
			}
			pred := m.viterbi(s.Features)
			if !sameIDs(pred, gold[idx]) {
				mistakes++
				m.update(s.Features, gold[idx], 1, c, acc)
				m.update(s.Features, pred, -1, c, acc)
			}
			c++
		}

		logger.Debug("crf epoch",
			zap.Int("epoch", epoch),
			zap.Int("mistakes", mistakes),
			zap.Int("sequences", len(seqs)))
	}

	for i := range m.Weights {
		m.Weights[i] -= acc[i] / c
	}
	return m, nil
}

func (m *Model) update(features []map[string]float64, labels []int, delta, c float64, acc []float64) {
	for t, f := range features {
		for attr, val := range f {
			a, ok := m.Attributes.Lookup(attr)
			if !ok {
				continue
			}
			idx := m.StateIndex(a, labels[t])
			m.Weights[idx] += delta * val
			acc[idx] += c * delta * val
		}
		if t > 0 {
			idx := m.TransIndex(labels[t-1], labels[t])
			m.Weights[idx] += delta
			acc[idx] += c * delta
		}
	}
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
