package tagger

import (
	"context"
	"errors"
	"fmt"

	"github.com/thai-address-parser/internal/features"
)

// ErrClassifierUnavailable classifier không chạy được (thiếu model, lỗi inference)
var ErrClassifierUnavailable = errors.New("classifier không khả dụng")

// Classifier nhận một chuỗi feature, trả về chuỗi nhãn cùng độ dài
type Classifier interface {
	Predict(ctx context.Context, seq []features.Record) ([]string, error)
}

// Decoder gọi classifier cho một chuỗi token
type Decoder struct {
	extractor  *features.Extractor
	classifier Classifier
}

// NewDecoder tạo mới Decoder
func NewDecoder(extractor *features.Extractor, classifier Classifier) *Decoder {
	return &Decoder{extractor: extractor, classifier: classifier}
}

// Decode gán nhãn cho từng token. Không có token thì không gọi classifier.
// Mọi lỗi từ classifier đều bọc ErrClassifierUnavailable.
func (d *Decoder) Decode(ctx context.Context, tokens []string) ([]Tag, error) {
	if len(tokens) == 0 {
		return []Tag{}, nil
	}
	if d.classifier == nil {
		return nil, ErrClassifierUnavailable
	}

	raw, err := d.classifier.Predict(ctx, d.extractor.Sequence(tokens))
	if err != nil {
		if errors.Is(err, ErrClassifierUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}
	if len(raw) != len(tokens) {
		return nil, fmt.Errorf("%w: nhận %d nhãn cho %d token", ErrClassifierUnavailable, len(raw), len(tokens))
	}

	tags := make([]Tag, len(raw))
	for i, s := range raw {
		tag, err := ParseTag(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
		}
		tags[i] = tag
	}
	return tags, nil
}
