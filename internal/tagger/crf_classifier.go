package tagger

import (
	"context"

	"github.com/thai-address-parser/internal/crf"
	"github.com/thai-address-parser/internal/features"
)

// CRFClassifier Classifier dựa trên model CRF đã train
type CRFClassifier struct {
	model *crf.Model
}

// NewCRFClassifier tạo mới CRFClassifier, model nil thì mọi lần gọi đều lỗi
func NewCRFClassifier(model *crf.Model) *CRFClassifier {
	return &CRFClassifier{model: model}
}

// Predict chạy Viterbi trên feature của chuỗi
func (c *CRFClassifier) Predict(ctx context.Context, seq []features.Record) ([]string, error) {
	if c.model == nil || c.model.NumLabels == 0 {
		return nil, ErrClassifierUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.model.Predict(features.Attributes(seq)), nil
}

// Version phiên bản model, rỗng nếu chưa load
func (c *CRFClassifier) Version() string {
	if c.model == nil {
		return ""
	}
	return c.model.Version
}
