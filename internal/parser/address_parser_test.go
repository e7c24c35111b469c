package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thai-address-parser/internal/features"
	"github.com/thai-address-parser/internal/fuzzy"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/lexicon"
	"github.com/thai-address-parser/internal/normalizer"
	"github.com/thai-address-parser/internal/resolver"
	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/tokenizer"
	"go.uber.org/zap"
)

// spaceTokenizer tách theo khoảng trắng, giữ khoảng trắng thành token riêng
type spaceTokenizer struct{}

func (spaceTokenizer) Tokenize(text string) []string {
	var out []string
	for i, word := range strings.Split(text, " ") {
		if i > 0 {
			out = append(out, " ")
		}
		if word != "" {
			out = append(out, word)
		}
	}
	return out
}

// ruleClassifier gán nhãn theo nội dung token, khoảng trắng lấy nhãn hai bên
// nếu hai bên giống nhau
type ruleClassifier struct {
	calls int
	err   error
}

func (c *ruleClassifier) Predict(_ context.Context, seq []features.Record) ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	labels := make([]string, len(seq))
	for i, rec := range seq {
		labels[i] = labelFor(rec.Word)
	}
	for i, rec := range seq {
		if rec.IsSpace && i > 0 && i < len(seq)-1 && labels[i-1] == labels[i+1] {
			labels[i] = labels[i-1]
		}
	}
	return labels, nil
}

func labelFor(word string) string {
	switch {
	case word == " ":
		return "O"
	case strings.HasPrefix(word, "นาย") || word == "ใจดี":
		return "NAME"
	case strings.HasPrefix(word, "ต.") || strings.HasPrefix(word, "อ.") || strings.HasPrefix(word, "จ."):
		return "LOC"
	case strings.Contains(word, "-"):
		return "PHONE"
	case len(word) == 5 && strings.Trim(word, "0123456789") == "":
		return "POST"
	case strings.Contains(word, "@"):
		return "EMAIL"
	default:
		return "ADDR"
	}
}

func newTestParser(t *testing.T, classifier tagger.Classifier) *AddressParser {
	t.Helper()

	idx, err := gazetteer.Load(context.Background(), gazetteer.EmbeddedSource{})
	require.NoError(t, err)
	norm, err := normalizer.NewDefaultNormalizer()
	require.NoError(t, err)

	registry, err := tokenizer.NewRegistry("space", map[string]tokenizer.Tokenizer{
		"space":                   spaceTokenizer{},
		tokenizer.EngineCharClass: tokenizer.NewCharClass(),
	})
	require.NoError(t, err)

	decoder := tagger.NewDecoder(features.NewExtractor(lexicon.New(nil, nil)), classifier)
	res := resolver.New(idx, norm, fuzzy.WRatio)
	return NewAddressParser(norm, registry, decoder, res, zap.NewNop())
}

func TestParse_EndToEnd(t *testing.T) {
	c := &ruleClassifier{}
	p := newTestParser(t, c)

	raw := "ผู้รับ นายสมชาย ใจดี\n123/4 ถนนสุขุมวิท ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่ 50200 081-234-5678"
	result, err := p.Parse(context.Background(), raw, Options{WithEntities: true})
	require.NoError(t, err)
	assert.Equal(t, 1, c.calls)

	got := result.Parsed
	assert.Equal(t, "นายสมชาย ใจดี 123/4 ถนนสุขุมวิท ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่ 50200 081-234-5678", got.Text)
	assert.Equal(t, "นายสมชาย ใจดี", got.Name)
	assert.Equal(t, "123/4 ถนนสุขุมวิท", got.Address)
	assert.Equal(t, "ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่", got.Location)
	assert.Equal(t, "ศรีภูมิ", got.Subdistrict)
	assert.Equal(t, "เมืองเชียงใหม่", got.District)
	assert.Equal(t, "เชียงใหม่", got.Province)
	assert.Equal(t, "50200", got.PostalCode)
	assert.Equal(t, "0812345678", got.PhoneNumber)
	assert.Empty(t, got.Email)

	assert.Equal(t, "space", result.Engine)
	assert.Equal(t, raw, result.Raw)
	assert.Len(t, result.Tags, len(result.Tokens))
	assert.Equal(t, got.Text, strings.Join(result.Tokens, ""))
	require.NotEmpty(t, result.Entities)
	assert.Equal(t, tagger.TagName, result.Entities[0].Label)
}

func TestParse_EmptyInput(t *testing.T) {
	c := &ruleClassifier{}
	p := newTestParser(t, c)

	for _, raw := range []string{"", "   ", "\n\n", "จัดส่ง"} {
		result, err := p.Parse(context.Background(), raw, Options{})
		require.NoError(t, err)
		assert.True(t, result.Parsed.IsEmpty())
		assert.Empty(t, result.Tokens)
	}
	assert.Equal(t, 0, c.calls)
}

func TestParse_Errors(t *testing.T) {
	p := newTestParser(t, &ruleClassifier{err: errors.New("model crashed")})

	_, err := p.Parse(context.Background(), "นายสมชาย", Options{})
	assert.ErrorIs(t, err, tagger.ErrClassifierUnavailable)

	_, err = p.Parse(context.Background(), "นายสมชาย", Options{Engine: "deepcut"})
	assert.ErrorIs(t, err, tokenizer.ErrUnknownEngine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Parse(ctx, "นายสมชาย", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_ClassifierMissing(t *testing.T) {
	p := newTestParser(t, nil)
	_, err := p.Parse(context.Background(), "นายสมชาย", Options{})
	assert.ErrorIs(t, err, tagger.ErrClassifierUnavailable)
}

func TestParseAddresses(t *testing.T) {
	p := newTestParser(t, &ruleClassifier{})
	results, err := p.ParseAddresses(context.Background(), []string{"นายสมชาย", "", "จ.ภูเก็ต"}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "ภูเก็ต", results[2].Parsed.Province)
}

func TestAssemble_PostalCode(t *testing.T) {
	p := newTestParser(t, nil)

	got := p.Assemble("10330", []string{"10", "330"}, []tagger.Tag{tagger.TagPost, tagger.TagPost})
	assert.Equal(t, "10330", got.PostalCode)

	got = p.Assemble("10330 10500", []string{"10330", " ", "10500"},
		[]tagger.Tag{tagger.TagPost, tagger.TagOther, tagger.TagPost})
	assert.Equal(t, "10330;10500", got.PostalCode)
}

func TestAssemble_Phone(t *testing.T) {
	p := newTestParser(t, nil)

	tokens := []string{"08", "1-234", "5678", "-"}
	tags := []tagger.Tag{tagger.TagPhone, tagger.TagPhone, tagger.TagPhone, tagger.TagPhone}
	got := p.Assemble(strings.Join(tokens, ""), tokens, tags)

	assert.Equal(t, "0812345678", got.PhoneNumber)
	assert.NotContains(t, got.PhoneNumber, "-")
}

func TestAssemble_EmailFallback(t *testing.T) {
	p := newTestParser(t, nil)

	text := "นายสมชาย ติดต่อ somchai.j@example.com ด่วน"
	tokens := []string{text}
	tags := []tagger.Tag{tagger.TagName}

	got := p.Assemble(text, tokens, tags)
	assert.Equal(t, "somchai.j@example.com", got.Email)
	assert.Empty(t, got.Province)
	assert.Empty(t, got.District)
	assert.Empty(t, got.Subdistrict)

	got = p.Assemble("a@b.co", []string{"a@b.co"}, []tagger.Tag{tagger.TagEmail})
	assert.Equal(t, "a@b.co", got.Email)
}

func TestAssemble_BangkokCanonical(t *testing.T) {
	p := newTestParser(t, nil)

	tokens := []string{"แขวงลุมพินี", " ", "เขตปทุมวัน", " ", "กทม.", " ", "10330"}
	tags := []tagger.Tag{tagger.TagLoc, tagger.TagLoc, tagger.TagLoc, tagger.TagLoc, tagger.TagLoc, tagger.TagOther, tagger.TagPost}
	got := p.Assemble(strings.Join(tokens, ""), tokens, tags)

	assert.Equal(t, "กรุงเทพมหานคร", got.Province)
	assert.Equal(t, "ปทุมวัน", got.District)
	assert.Equal(t, "ลุมพินี", got.Subdistrict)
	assert.Equal(t, "10330", got.PostalCode)
}
