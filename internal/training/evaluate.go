package training

import (
	"fmt"

	"github.com/thai-address-parser/internal/tagger"
)

// LabelScore precision / recall / F1 của một nhãn
type LabelScore struct {
	Label     tagger.Tag `json:"label"`
	Precision float64    `json:"precision"`
	Recall    float64    `json:"recall"`
	F1        float64    `json:"f1"`
	Support   int        `json:"support"`
}

// Report kết quả đánh giá trên từng token
type Report struct {
	Labels     []LabelScore `json:"labels"`
	WeightedF1 float64      `json:"weighted_f1"`
	Tokens     int          `json:"tokens"`
}

// Evaluate so sánh nhãn dự đoán với nhãn đúng trên mọi token. F1 có trọng
// số theo support, chỉ tính các nhãn khác OTHER.
func Evaluate(gold, pred [][]tagger.Tag) (Report, error) {
	if len(gold) != len(pred) {
		return Report{}, fmt.Errorf("số chuỗi không khớp: %d và %d", len(gold), len(pred))
	}

	tp := make(map[tagger.Tag]int)
	fp := make(map[tagger.Tag]int)
	support := make(map[tagger.Tag]int)
	var report Report

	for i := range gold {
		if len(gold[i]) != len(pred[i]) {
			return Report{}, fmt.Errorf("chuỗi %d: %d nhãn đúng và %d nhãn dự đoán", i, len(gold[i]), len(pred[i]))
		}
		for j, g := range gold[i] {
			p := pred[i][j]
			report.Tokens++
			support[g]++
			if g == p {
				tp[g]++
			} else {
				fp[p]++
			}
		}
	}

	total := 0
	weighted := 0.0
	for _, label := range tagger.AllTags {
		if label == tagger.TagOther {
			continue
		}
		s := LabelScore{Label: label, Support: support[label]}
		if n := tp[label] + fp[label]; n > 0 {
			s.Precision = float64(tp[label]) / float64(n)
		}
		if s.Support > 0 {
			s.Recall = float64(tp[label]) / float64(s.Support)
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		report.Labels = append(report.Labels, s)
		total += s.Support
		weighted += s.F1 * float64(s.Support)
	}
	if total > 0 {
		report.WeightedF1 = weighted / float64(total)
	}
	return report, nil
}
