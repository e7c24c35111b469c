//go:build !(cgo && libpostal)

package external

import (
	"context"

	"github.com/thai-address-parser/internal/features"
	"github.com/thai-address-parser/internal/tagger"
)

// LibpostalClassifier bản thay thế khi build không có libpostal
type LibpostalClassifier struct{}

// NewLibpostalClassifier tạo mới LibpostalClassifier
func NewLibpostalClassifier() *LibpostalClassifier {
	return &LibpostalClassifier{}
}

// Predict luôn trả về ErrClassifierUnavailable
func (c *LibpostalClassifier) Predict(context.Context, []features.Record) ([]string, error) {
	return nil, tagger.ErrClassifierUnavailable
}

// Available libpostal có trong binary
func Available() bool { return false }
