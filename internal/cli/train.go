package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thai-address-parser/app/bootstrap"
	"github.com/thai-address-parser/internal/crf"
	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/training"
)

// trainOutput kết quả lệnh train
type trainOutput struct {
	ModelPath    string          `json:"model_path"`
	ModelVersion string          `json:"model_version"`
	TrainSize    int             `json:"train_size"`
	TestSize     int             `json:"test_size"`
	Report       training.Report `json:"report"`
}

// pipeline tokenizer và extractor theo cấu hình, không cần model
func (o *rootOptions) pipeline(cmd *cobra.Command) (*training.Pipeline, *bootstrap.Components, error) {
	components, err := o.components(cmd.Context(), bootstrap.Options{Classifier: tagger.NewCRFClassifier(nil)})
	if err != nil {
		return nil, nil, err
	}
	tk, err := components.Tokenizers.Get(components.Config.TokenizerEngine)
	if err != nil {
		return nil, nil, err
	}
	return training.NewPipeline(tk, components.Extractor, o.logger), components, nil
}

func newTrainCmd(root *rootOptions) *cobra.Command {
	var (
		corpusPath string
		output     string
		opts       training.Options
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train model CRF từ corpus JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, components, err := root.pipeline(cmd)
			if err != nil {
				return err
			}
			examples, err := training.ReadCorpusFile(corpusPath)
			if err != nil {
				return err
			}

			result, err := p.Train(cmd.Context(), examples, opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = components.Config.ModelPath
			}
			if err := result.Model.Save(output); err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), trainOutput{
				ModelPath:    output,
				ModelVersion: result.Model.Version,
				TrainSize:    result.TrainSize,
				TestSize:     result.TestSize,
				Report:       result.Report,
			})
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Corpus JSON lines {text, labels}")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File model (mặc định model_path trong cấu hình)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 100, "Số vòng train")
	cmd.Flags().Float64Var(&opts.TestSize, "test-size", training.DefaultTestSize, "Tỉ lệ tập test")
	cmd.Flags().Int64Var(&opts.Seed, "seed", training.DefaultSeed, "Seed chia tập train / test")
	_ = cmd.MarkFlagRequired("corpus")
	return cmd
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	var (
		corpusPath string
		modelPath  string
		split      bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Đánh giá model CRF trên corpus, in precision / recall / F1",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, components, err := root.pipeline(cmd)
			if err != nil {
				return err
			}
			if modelPath == "" {
				modelPath = components.Config.ModelPath
			}
			model, err := crf.Load(modelPath)
			if err != nil {
				return err
			}

			examples, err := training.ReadCorpusFile(corpusPath)
			if err != nil {
				return err
			}
			if split {
				_, examples = training.Split(examples, training.DefaultTestSize, training.DefaultSeed)
			}
			if len(examples) == 0 {
				return errors.New("không có example để đánh giá")
			}

			report, err := p.Evaluate(cmd.Context(), model, examples)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", modelPath, err)
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Corpus JSON lines {text, labels}")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "File model (mặc định model_path trong cấu hình)")
	cmd.Flags().BoolVar(&split, "split", false, "Chỉ đánh giá phần test (25%, seed 42) giống lệnh train")
	_ = cmd.MarkFlagRequired("corpus")
	return cmd
}
