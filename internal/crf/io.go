package crf

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
)

// Save ghi model ra file JSON và gán Version
func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("crf: lỗi encode model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("crf: lỗi ghi model: %w", err)
	}
	m.Version = fingerprint(data)
	return nil
}

// Load đọc model do Save ghi ra
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("crf: lỗi đọc model: %w", err)
	}
	return Decode(data)
}

// Decode parse model JSON và kiểm tra kích thước khối trọng số
func Decode(data []byte) (*Model, error) {
	m := NewModel()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFormat, err)
	}
	if m.NumLabels != m.Labels.Len() {
		return nil, fmt.Errorf("%w: num_labels %d nhưng có %d nhãn", ErrModelFormat, m.NumLabels, m.Labels.Len())
	}
	if len(m.Weights) != m.NumWeights() {
		return nil, fmt.Errorf("%w: %d trọng số, cần %d", ErrModelFormat, len(m.Weights), m.NumWeights())
	}
	m.Version = fingerprint(data)
	return m, nil
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("sha256:%x", sum[:6])
}
