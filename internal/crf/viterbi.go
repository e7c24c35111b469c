package crf

import "math"

// Predict trả về chuỗi nhãn có điểm cao nhất
func (m *Model) Predict(features []map[string]float64) []string {
	path := m.viterbi(features)
	if path == nil {
		return nil
	}
	labels := make([]string, len(path))
	for t, id := range path {
		labels[t] = m.Labels.Items[id]
	}
	return labels
}

// emissions điểm trạng thái [vị trí][nhãn], thuộc tính lạ bị bỏ qua
func (m *Model) emissions(features []map[string]float64) [][]float64 {
	out := make([][]float64, len(features))
	for t, f := range features {
		row := make([]float64, m.NumLabels)
		for attr, val := range f {
			a, ok := m.Attributes.Lookup(attr)
			if !ok {
				continue
			}
			base := m.StateIndex(a, 0)
			for y, w := range m.Weights[base : base+m.NumLabels] {
				row[y] += w * val
			}
		}
		out[t] = row
	}
	return out
}

func (m *Model) viterbi(features []map[string]float64) []int {
	n := m.NumLabels
	if len(features) == 0 || n == 0 {
		return nil
	}

	emit := m.emissions(features)
	prev := emit[0]
	back := make([][]int, len(features))

	for t := 1; t < len(features); t++ {
		cur := make([]float64, n)
		back[t] = make([]int, n)
		for y := 0; y < n; y++ {
			best, from := math.Inf(-1), 0
			for p, s := range prev {
				if s += m.Weights[m.TransIndex(p, y)]; s > best {
					best, from = s, p
				}
			}
			cur[y] = best + emit[t][y]
			back[t][y] = from
		}
		prev = cur
	}

	path := make([]int, len(features))
	path[len(path)-1] = argmax(prev)
	for t := len(path) - 1; t > 0; t-- {
		path[t-1] = back[t][path[t]]
	}
	return path
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}
