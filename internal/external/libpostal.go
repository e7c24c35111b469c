//go:build cgo && libpostal

package external

import (
	"context"
	"strings"

	"github.com/openvenues/gopostal/parser"
	"github.com/thai-address-parser/internal/features"
)

// LibpostalClassifier gán nhãn bằng parser của libpostal
type LibpostalClassifier struct {
	options parser.ParserOptions
}

// NewLibpostalClassifier tạo mới LibpostalClassifier
func NewLibpostalClassifier() *LibpostalClassifier {
	return &LibpostalClassifier{options: parser.ParserOptions{Language: "th", Country: "th"}}
}

// Predict parse cả chuỗi một lần rồi gán nhãn lại cho từng token
func (c *LibpostalClassifier) Predict(ctx context.Context, seq []features.Record) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := make([]string, len(seq))
	for i, r := range seq {
		words[i] = r.Word
	}

	parsed := parser.ParseAddressOptions(strings.Join(words, ""), c.options)
	comps := make([]Component, len(parsed))
	for i, p := range parsed {
		comps[i] = Component{Label: p.Label, Value: p.Value}
	}
	return LabelTokens(words, comps), nil
}

// Available libpostal có trong binary
func Available() bool { return true }
