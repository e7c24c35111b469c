package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thai-address-parser/app/bootstrap"
	"github.com/thai-address-parser/app/config"
	"github.com/thai-address-parser/app/services"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/tagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// seedOutput kết quả lệnh seed
type seedOutput struct {
	GazetteerVersion string                        `json:"gazetteer_version"`
	Validation       *services.GazetteerValidation `json:"validation"`
	SQLiteRecords    int                           `json:"sqlite_records,omitempty"`
	Seed             *services.SeedResult          `json:"seed,omitempty"`
	DryRun           bool                          `json:"dry_run"`
}

func newSeedCmd(root *rootOptions) *cobra.Command {
	var (
		sqlitePath     string
		rebuildIndexes bool
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Ghi gazetteer vào SQLite, MongoDB admin_units và Meilisearch",
		Long: "Validate gazetteer đang cấu hình rồi ghi vào file SQLite (--sqlite), " +
			"MongoDB và Meilisearch (theo mongo.url / meilisearch.url trong app config).",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			appCfg, err := config.LoadApp(root.appConfigPath)
			if err != nil {
				return err
			}

			var db *mongo.Database
			if appCfg.MongoURL != "" {
				db, err = bootstrap.ConnectMongo(ctx, appCfg.MongoURL, root.logger)
				if err != nil {
					return err
				}
				defer db.Client().Disconnect(context.Background())
			}

			components, err := root.components(ctx, bootstrap.Options{Mongo: db, Classifier: tagger.NewCRFClassifier(nil)})
			if err != nil {
				return err
			}

			var searcher services.Searcher
			if s, err := bootstrap.NewSearcher(appCfg, root.logger); err != nil {
				return err
			} else if s != nil {
				searcher = s
			}

			admin := services.NewAdminService(db, components.Index, searcher, nil, root.logger)
			out := seedOutput{
				GazetteerVersion: components.GazetteerVersion(),
				Validation:       admin.Validate(),
				DryRun:           dryRun,
			}
			if dryRun {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			seeded := false
			if sqlitePath != "" {
				n, err := seedSQLite(ctx, sqlitePath, components.Index.Records())
				if err != nil {
					return err
				}
				out.SQLiteRecords = n
				seeded = true
				root.logger.Info("Seed SQLite thành công", zap.String("path", sqlitePath), zap.Int("records", n))
			}

			if db != nil || (searcher != nil && rebuildIndexes) {
				result, err := admin.SeedGazetteer(ctx, rebuildIndexes)
				if err != nil {
					return err
				}
				out.Seed = result
				seeded = true
			}

			if !seeded {
				return services.ErrNothingToSeed
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "File SQLite đích (bảng thai_address)")
	cmd.Flags().BoolVar(&rebuildIndexes, "rebuild-indexes", false, "Cấu hình lại và nạp index Meilisearch")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Chỉ validate, không ghi")
	return cmd
}

func seedSQLite(ctx context.Context, path string, records []gazetteer.Record) (int, error) {
	store, err := gazetteer.OpenSQLite(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.Replace(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
