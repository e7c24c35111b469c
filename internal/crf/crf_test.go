package crf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handModel nhãn A, B; thuộc tính f1, f2
func handModel() *Model {
	m := NewModel()
	m.Labels.ID("A")
	m.Labels.ID("B")
	f1 := m.Attributes.ID("f1")
	f2 := m.Attributes.ID("f2")
	m.NumLabels = 2
	m.Weights = make([]float64, m.NumWeights())
	m.Weights[m.StateIndex(f1, 0)] = 1
	m.Weights[m.StateIndex(f2, 1)] = 0.5
	m.Weights[m.TransIndex(0, 0)] = -5
	return m
}

func TestPredict_HandWeighted(t *testing.T) {
	m := handModel()

	// AA = 1+1-5, AB = 1+0.5, BA = 1, BB = 0.5
	got := m.Predict([]map[string]float64{{"f1": 1}, {"f1": 1, "f2": 1}})
	assert.Equal(t, []string{"A", "B"}, got)

	single := m.Predict([]map[string]float64{{"f1": 1, "unknown": 3}})
	assert.Equal(t, []string{"A"}, single)

	assert.Nil(t, m.Predict(nil))
}

func TestModel_Layout(t *testing.T) {
	m := handModel()
	assert.Equal(t, 8, m.NumWeights())
	assert.Equal(t, 3, m.StateIndex(1, 1))
	assert.Equal(t, 4, m.TransIndex(0, 0))
	assert.Equal(t, 6, m.TransIndex(1, 0))

	_, ok := m.Attributes.Lookup("missing")
	assert.False(t, ok)
	id, ok := m.Attributes.Lookup("f2")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}

func seq(words []string, labels []string) TrainingSequence {
	feats := make([]map[string]float64, len(words))
	for i, w := range words {
		feats[i] = map[string]float64{"bias": 1, "word=" + w: 1}
		if i > 0 {
			feats[i]["prev=" + words[i-1]] = 1
		}
	}
	return TrainingSequence{Features: feats, Labels: labels}
}

func TestTrain_SeparatesToyCorpus(t *testing.T) {
	corpus := []TrainingSequence{
		seq([]string{"นาย", "สมชาย", "10330"}, []string{"NAME", "NAME", "POST"}),
		seq([]string{"สมชาย", "0812345678"}, []string{"NAME", "PHONE"}),
		seq([]string{"10330", "0812345678"}, []string{"POST", "PHONE"}),
		seq([]string{"นาย", "สมหญิง", "0899999999"}, []string{"NAME", "NAME", "PHONE"}),
	}

	m, err := Train(corpus, TrainOptions{Iterations: 20, Seed: 42})
	require.NoError(t, err)

	for _, s := range corpus {
		assert.Equal(t, s.Labels, m.Predict(s.Features))
	}
}

func TestTrain_Errors(t *testing.T) {
	_, err := Train(nil, TrainOptions{})
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	bad := []TrainingSequence{{Features: []map[string]float64{{"a": 1}}, Labels: nil}}
	_, err = Train(bad, TrainOptions{})
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	m := handModel()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, m.Save(path))
	assert.NotEmpty(t, m.Version)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Version, loaded.Version)
	assert.Equal(t, m.Predict([]map[string]float64{{"f1": 1}, {"f2": 1}}),
		loaded.Predict([]map[string]float64{{"f1": 1}, {"f2": 1}}))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"labels":["A"],"attributes":[],"weights":[1,2],"num_labels":1}`))
	assert.ErrorIs(t, err, ErrModelFormat)

	_, err = Decode([]byte(`{"labels":["A","A"],"attributes":[],"weights":[1,2,3,4],"num_labels":2}`))
	assert.ErrorIs(t, err, ErrModelFormat)

	_, err = Decode([]byte(`{"labels":["A","B"],"attributes":[],"weights":[1,2,3,4],"num_labels":3}`))
	assert.ErrorIs(t, err, ErrModelFormat)

	_, err = Decode([]byte(`not json`))
	assert.ErrorIs(t, err, ErrModelFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
