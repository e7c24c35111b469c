package training

import (
	"context"
	"fmt"
	"time"

	"github.com/thai-address-parser/internal/crf"
	"github.com/thai-address-parser/internal/features"
	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/tokenizer"
	"go.uber.org/zap"
)

// Options tham số train
type Options struct {
	Iterations int
	Seed       int64
	TestSize   float64
}

// Result model đã train và kết quả trên tập test
type Result struct {
	Model     *crf.Model
	Report    Report
	TrainSize int
	TestSize  int
}

// Pipeline chuyển Example thành chuỗi feature cho CRF. Span trong corpus
// tính trên văn bản gốc nên token được tách trên chính văn bản đó.
type Pipeline struct {
	tokenizer tokenizer.Tokenizer
	extractor *features.Extractor
	logger    *zap.Logger
}

// NewPipeline tạo mới Pipeline
func NewPipeline(tk tokenizer.Tokenizer, extractor *features.Extractor, logger *zap.Logger) *Pipeline {
	return &Pipeline{tokenizer: tk, extractor: extractor, logger: logger}
}

// Tokens tách và gán nhãn một Example
func (p *Pipeline) Tokens(ex Example) ([]string, []tagger.Tag, error) {
	tokens, err := tokenizer.Split(ex.Text, p.tokenizer.Tokenize(ex.Text))
	if err != nil {
		return nil, nil, err
	}
	return tokenizer.Texts(tokens), Align(tokens, ex.Labels), nil
}

// Sequences bỏ qua Example chưa gán nhãn
func (p *Pipeline) Sequences(ctx context.Context, examples []Example) ([]crf.TrainingSequence, error) {
	seqs := make([]crf.TrainingSequence, 0, len(examples))
	for i, ex := range examples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !ex.Labeled() {
			continue
		}
		words, tags, err := p.Tokens(ex)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		labels := make([]string, len(tags))
		for j, t := range tags {
			labels[j] = string(t)
		}
		seqs = append(seqs, crf.TrainingSequence{
			Features: features.Attributes(p.extractor.Sequence(words)),
			Labels:   labels,
		})
	}
	return seqs, nil
}

// Train chia corpus, train trên phần train và đánh giá trên phần test
func (p *Pipeline) Train(ctx context.Context, examples []Example, opts Options) (*Result, error) {
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	start := time.Now()
	trainSet, testSet := Split(examples, opts.TestSize, opts.Seed)

	seqs, err := p.Sequences(ctx, trainSet)
	if err != nil {
		return nil, err
	}
	model, err := crf.Train(seqs, crf.TrainOptions{
		Iterations: opts.Iterations,
		Seed:       opts.Seed,
		Logger:     p.logger,
	})
	if err != nil {
		return nil, err
	}

	report, err := p.Evaluate(ctx, model, testSet)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Train CRF hoàn tất",
		zap.Int("train_examples", len(trainSet)),
		zap.Int("test_examples", len(testSet)),
		zap.Int("labels", model.NumLabels),
		zap.Int("attributes", model.Attributes.Len()),
		zap.Float64("weighted_f1", report.WeightedF1),
		zap.Duration("took", time.Since(start)))

	return &Result{
		Model:     model,
		Report:    report,
		TrainSize: len(trainSet),
		TestSize:  len(testSet),
	}, nil
}

// Evaluate dự đoán từng Example đã gán nhãn và so với nhãn đúng
func (p *Pipeline) Evaluate(ctx context.Context, model *crf.Model, examples []Example) (Report, error) {
	classifier := tagger.NewCRFClassifier(model)
	decoder := tagger.NewDecoder(p.extractor, classifier)

	var gold, pred [][]tagger.Tag
	for i, ex := range examples {
		if !ex.Labeled() {
			continue
		}
		words, tags, err := p.Tokens(ex)
		if err != nil {
			return Report{}, fmt.Errorf("example %d: %w", i, err)
		}
		predicted, err := decoder.Decode(ctx, words)
		if err != nil {
			return Report{}, fmt.Errorf("example %d: %w", i, err)
		}
		gold = append(gold, tags)
		pred = append(pred, predicted)
	}
	return Evaluate(gold, pred)
}
