package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/app/services"
	"github.com/thai-address-parser/internal/features"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/training"
	"go.uber.org/zap"
)

// locClassifier gán LOC cho token chữ, POST cho số 5 chữ số
type locClassifier struct{}

func (locClassifier) Predict(_ context.Context, seq []features.Record) ([]string, error) {
	labels := make([]string, len(seq))
	for i, rec := range seq {
		switch {
		case rec.IsSpace:
			labels[i] = "O"
		case rec.IsDigit && rec.IsLen5:
			labels[i] = "POST"
		default:
			labels[i] = "LOC"
		}
	}
	return labels, nil
}

func run(t *testing.T, classifier tagger.Classifier, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(zap.NewNop(), classifier)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// parserConfig ghi file cấu hình parser trỏ tới modelPath
func parserConfig(t *testing.T, modelPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parser.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("model_path: %q\n", modelPath)), 0o644))
	return path
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	names := []string{"สมชาย", "สมหญิง", "วิชัย"}
	codes := []string{"10330", "50200", "83000"}

	var b strings.Builder
	for i := 0; i < 12; i++ {
		name := names[i%len(names)]
		code := codes[i%len(codes)]
		n := len([]rune(name))
		ex := training.Example{
			Text:   name + " " + code,
			Labels: []training.Span{{Start: n + 1, Stop: n + 6, Label: "รหัสไปรษณีย์"}, {Start: 0, Stop: n, Label: "ชื่อ"}},
		}
		line, err := json.Marshal(ex)
		require.NoError(t, err)
		b.Write(line)
		b.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestParseCmd(t *testing.T) {
	cfg := parserConfig(t, filepath.Join(t.TempDir(), "missing.json"))

	out, err := run(t, locClassifier{}, "parse", "--config", cfg, "--entities", "จ.ภูเก็ต")
	require.NoError(t, err)

	var result models.AddressResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "จ.ภูเก็ต", result.Raw)
	assert.Equal(t, "ภูเก็ต", result.Parsed.Province)
	assert.NotEmpty(t, result.Entities)

	_, err = run(t, locClassifier{}, "parse", "--config", cfg, "--engine", "deepcut", "จ.ภูเก็ต")
	assert.Error(t, err)

	_, err = run(t, locClassifier{}, "parse", "--config", cfg)
	assert.Error(t, err)
}

func TestParseCmd_NoModel(t *testing.T) {
	cfg := parserConfig(t, filepath.Join(t.TempDir(), "missing.json"))

	_, err := run(t, nil, "parse", "--config", cfg, "จ.ภูเก็ต")
	assert.ErrorIs(t, err, tagger.ErrClassifierUnavailable)
}

func TestBatchCmd(t *testing.T) {
	dir := t.TempDir()
	cfg := parserConfig(t, filepath.Join(dir, "missing.json"))
	input := filepath.Join(dir, "addresses.txt")
	output := filepath.Join(dir, "results.ndjson")
	require.NoError(t, os.WriteFile(input, []byte("จ.ภูเก็ต\n\nกทม 10330\n"), 0o644))

	_, err := run(t, locClassifier{}, "batch", "--config", cfg, "-i", input, "-o", output, "--chunk-size", "1")
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	var results []models.AddressResult
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r models.AddressResult
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		results = append(results, r)
	}
	require.Len(t, results, 2)
	assert.Equal(t, "ภูเก็ต", results[0].Parsed.Province)
	assert.Equal(t, "10330", results[1].Parsed.PostalCode)
}

func TestTrainEvaluateParse(t *testing.T) {
	dir := t.TempDir()
	corpus := writeCorpus(t)
	modelPath := filepath.Join(dir, "crf_model.json")
	cfg := parserConfig(t, modelPath)

	out, err := run(t, nil, "train", "--config", cfg, "--corpus", corpus, "--iterations", "5")
	require.NoError(t, err)

	var trained trainOutput
	require.NoError(t, json.Unmarshal([]byte(out), &trained))
	assert.Equal(t, modelPath, trained.ModelPath)
	assert.NotEmpty(t, trained.ModelVersion)
	assert.Equal(t, 12, trained.TrainSize+trained.TestSize)
	assert.Equal(t, 3, trained.TestSize)
	assert.FileExists(t, modelPath)

	out, err = run(t, nil, "evaluate", "--config", cfg, "--corpus", corpus)
	require.NoError(t, err)
	var report training.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Positive(t, report.Tokens)

	out, err = run(t, nil, "evaluate", "--config", cfg, "--corpus", corpus, "--split")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Positive(t, report.Tokens)

	out, err = run(t, nil, "parse", "--config", cfg, "สมชาย 10330")
	require.NoError(t, err)
	var result models.AddressResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, trained.ModelVersion, result.ModelVersion)

	_, err = run(t, nil, "train", "--config", cfg)
	assert.Error(t, err)
}

func TestSeedCmd(t *testing.T) {
	dir := t.TempDir()
	cfg := parserConfig(t, filepath.Join(dir, "missing.json"))
	sqlitePath := filepath.Join(dir, "gazetteer.db")

	out, err := run(t, nil, "seed", "--config", cfg, "--dry-run")
	require.NoError(t, err)
	var dry seedOutput
	require.NoError(t, json.Unmarshal([]byte(out), &dry))
	assert.True(t, dry.DryRun)
	assert.True(t, dry.Validation.Passed)

	out, err = run(t, nil, "seed", "--config", cfg, "--sqlite", sqlitePath)
	require.NoError(t, err)
	var seeded seedOutput
	require.NoError(t, json.Unmarshal([]byte(out), &seeded))
	assert.Positive(t, seeded.SQLiteRecords)

	store, err := gazetteer.OpenSQLite(sqlitePath)
	require.NoError(t, err)
	defer store.Close()
	records, err := store.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, seeded.SQLiteRecords)

	_, err = run(t, nil, "seed", "--config", cfg)
	assert.ErrorIs(t, err, services.ErrNothingToSeed)
}
