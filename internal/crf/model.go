// Package crf gán nhãn chuỗi bằng CRF tuyến tính: giải mã Viterbi, huấn
// luyện perceptron trung bình và lưu model dạng JSON.
package crf

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus không có chuỗi nào để huấn luyện
	ErrEmptyCorpus = errors.New("crf: corpus huấn luyện rỗng")
	// ErrModelFormat file model không đúng định dạng
	ErrModelFormat = errors.New("crf: model không đúng định dạng")
)

// Vocab đánh số chuỗi (nhãn hoặc thuộc tính) theo thứ tự gặp lần đầu.
// Trong file model chỉ lưu Items, bảng tra dựng lại khi đọc.
type Vocab struct {
	Items []string
	index map[string]int
}

// ID trả về số của s, thêm mới nếu chưa có
func (v *Vocab) ID(s string) int {
	if id, ok := v.index[s]; ok {
		return id
	}
	if v.index == nil {
		v.index = make(map[string]int)
	}
	id := len(v.Items)
	v.index[s] = id
	v.Items = append(v.Items, s)
	return id
}

// Lookup tra số của s, không thêm mới
func (v *Vocab) Lookup(s string) (int, bool) {
	id, ok := v.index[s]
	return id, ok
}

func (v *Vocab) Len() int { return len(v.Items) }

func (v Vocab) MarshalJSON() ([]byte, error) {
	if v.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Items)
}

func (v *Vocab) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*v = Vocab{}
	for _, s := range items {
		if _, dup := v.Lookup(s); dup {
			return fmt.Errorf("trùng giá trị %q", s)
		}
		v.ID(s)
	}
	return nil
}

// Model tham số CRF. Weights gồm khối trạng thái (thuộc tính x nhãn) rồi
// tới khối chuyển nhãn (nhãn x nhãn).
type Model struct {
	Labels     Vocab     `json:"labels"`
	Attributes Vocab     `json:"attributes"`
	NumLabels  int       `json:"num_labels"`
	Weights    []float64 `json:"weights"`

	Version string `json:"-"` // fingerprint file model, gán khi Save/Load
}

func NewModel() *Model {
	return &Model{}
}

// StateIndex vị trí trọng số của cặp (thuộc tính, nhãn)
func (m *Model) StateIndex(attr, label int) int {
	return attr*m.NumLabels + label
}

// TransIndex vị trí trọng số chuyển prev -> next
func (m *Model) TransIndex(prev, next int) int {
	return (m.Attributes.Len()+prev)*m.NumLabels + next
}

func (m *Model) NumWeights() int {
	return (m.Attributes.Len() + m.NumLabels) * m.NumLabels
}

// TrainingSequence một chuỗi đã gán nhãn
type TrainingSequence struct {
	Features []map[string]float64
	Labels   []string
}
