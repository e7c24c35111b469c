// Package cli các lệnh của thaiaddress: parse, batch, train, evaluate, seed.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/thai-address-parser/app/bootstrap"
	"github.com/thai-address-parser/app/config"
	"github.com/thai-address-parser/helpers/utils"
	"github.com/thai-address-parser/internal/tagger"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath    string
	appConfigPath string
	engine        string

	logger     *zap.Logger
	classifier tagger.Classifier // nil là load theo cấu hình
}

// NewRootCmd lệnh gốc thaiaddress
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil, nil)
}

func newRootCmd(logger *zap.Logger, classifier tagger.Classifier) *cobra.Command {
	opts := &rootOptions{logger: logger, classifier: classifier}
	cmd := &cobra.Command{
		Use:           "thaiaddress",
		Short:         "Tách địa chỉ giao hàng tiếng Thái",
		Long:          "Tách địa chỉ giao hàng tiếng Thái thành tên, địa chỉ, ตำบล / อำเภอ / จังหวัด, mã bưu chính, điện thoại và email.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}
			logger, err := utils.NewLogger(os.Getenv("APP_ENV"))
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "File cấu hình parser (mặc định: $PARSER_CONFIG hoặc cấu hình mặc định)")
	cmd.PersistentFlags().StringVar(&opts.appConfigPath, "app-config", "", "File cấu hình kết nối MongoDB / Meilisearch (mặc định: config/app.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.engine, "engine", "e", "", "Tokenizer: longest hoặc charclass (mặc định theo cấu hình)")

	cmd.AddCommand(
		newParseCmd(opts),
		newBatchCmd(opts),
		newTrainCmd(opts),
		newEvaluateCmd(opts),
		newSeedCmd(opts),
	)
	return cmd
}

// Execute chạy lệnh gốc với ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *rootOptions) parserConfig() (config.ParserCfg, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv("PARSER_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.ParserCfg{}, err
	}
	if o.engine != "" {
		cfg.TokenizerEngine = o.engine
	}
	return cfg, nil
}

// components build dữ liệu tham chiếu. classifier khác nil thì không load model.
func (o *rootOptions) components(ctx context.Context, opts bootstrap.Options) (*bootstrap.Components, error) {
	cfg, err := o.parserConfig()
	if err != nil {
		return nil, err
	}
	if opts.Classifier == nil {
		opts.Classifier = o.classifier
	}
	return bootstrap.Build(ctx, cfg, opts, o.logger)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
