// Package parser ghép các bước chuẩn hoá, tách từ, gán nhãn và tra địa danh
// thành một địa chỉ có cấu trúc.
package parser

import (
	"context"
	"fmt"
	"time"

	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/internal/normalizer"
	"github.com/thai-address-parser/internal/resolver"
	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/tokenizer"
	"go.uber.org/zap"
)

// Options tuỳ chọn của một lần parse
type Options struct {
	Engine       string // tên tokenizer, rỗng là mặc định
	WithEntities bool   // trả về entity để hiển thị
}

// AddressParser parser địa chỉ chính
type AddressParser struct {
	normalizer *normalizer.Normalizer
	tokenizers *tokenizer.Registry
	decoder    *tagger.Decoder
	resolver   *resolver.Resolver
	logger     *zap.Logger
}

// NewAddressParser tạo mới AddressParser
func NewAddressParser(
	norm *normalizer.Normalizer,
	tokenizers *tokenizer.Registry,
	decoder *tagger.Decoder,
	res *resolver.Resolver,
	logger *zap.Logger,
) *AddressParser {
	return &AddressParser{
		normalizer: norm,
		tokenizers: tokenizers,
		decoder:    decoder,
		resolver:   res,
		logger:     logger,
	}
}

// Parse parse một địa chỉ. Văn bản rỗng sau chuẩn hoá cho kết quả rỗng mà
// không gọi classifier.
func (ap *AddressParser) Parse(ctx context.Context, raw string, opts Options) (*models.AddressResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	engine := opts.Engine
	if engine == "" {
		engine = ap.tokenizers.Default()
	}
	tk, err := ap.tokenizers.Get(engine)
	if err != nil {
		return nil, err
	}

	text := ap.normalizer.Normalize(raw)
	result := &models.AddressResult{
		Raw:    raw,
		Tokens: []string{},
		Tags:   []tagger.Tag{},
		Engine: engine,
	}
	if text == "" {
		if opts.WithEntities {
			result.Entities = []tagger.Entity{}
		}
		return result, nil
	}

	tokens, err := tokenizer.Split(text, tk.Tokenize(text))
	if err != nil {
		return nil, fmt.Errorf("tokenizer %s: %w", engine, err)
	}
	words := tokenizer.Texts(tokens)

	tags, err := ap.decoder.Decode(ctx, words)
	if err != nil {
		ap.logger.Error("Lỗi gán nhãn địa chỉ", zap.String("engine", engine), zap.Error(err))
		return nil, err
	}

	result.Parsed = ap.Assemble(text, words, tags)
	result.Tokens = words
	result.Tags = tags
	if opts.WithEntities {
		result.Entities = tagger.Entities(words, tags)
	}

	ap.logger.Debug("Đã parse địa chỉ",
		zap.String("engine", engine),
		zap.Int("tokens", len(words)),
		zap.String("province", result.Parsed.Province),
		zap.Duration("took", time.Since(start)))

	return result, nil
}

// ParseAddresses parse tuần tự một danh sách địa chỉ, dừng ở lỗi đầu tiên
func (ap *AddressParser) ParseAddresses(ctx context.Context, raws []string, opts Options) ([]*models.AddressResult, error) {
	results := make([]*models.AddressResult, len(raws))
	for i, raw := range raws {
		r, err := ap.Parse(ctx, raw, opts)
		if err != nil {
			return nil, fmt.Errorf("địa chỉ thứ %d: %w", i, err)
		}
		results[i] = r
	}
	return results, nil
}

// Normalize chuẩn hoá văn bản như bước đầu của Parse
func (ap *AddressParser) Normalize(raw string) string {
	return ap.normalizer.Normalize(raw)
}

// Resolver resolver dùng để tra địa danh
func (ap *AddressParser) Resolver() *resolver.Resolver {
	return ap.resolver
}
