package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/search"
	"go.uber.org/zap"
)

// stubSearcher ghi lại document được seed
type stubSearcher struct {
	seeded       []search.Document
	indexesBuilt bool
	lastLevel    int
}

func (s *stubSearcher) Search(query string, level int, province string, limit int) ([]search.Document, error) {
	s.lastLevel = level
	var out []search.Document
	for _, d := range s.seeded {
		if d.Name == query {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubSearcher) BuildIndexes() error {
	s.indexesBuilt = true
	return nil
}

func (s *stubSearcher) SeedDocuments(docs []search.Document) (int, error) {
	s.seeded = docs
	return 1, nil
}

func loadIndex(t *testing.T) *gazetteer.Index {
	t.Helper()
	idx, err := gazetteer.Load(context.Background(), gazetteer.EmbeddedSource{})
	require.NoError(t, err)
	return idx
}

func TestGazetteerService(t *testing.T) {
	idx := loadIndex(t)
	gs := NewGazetteerService(idx, nil)

	provinces := gs.Provinces()
	assert.ElementsMatch(t, idx.Provinces(), provinces)
	assert.Equal(t, "กรุงเทพมหานคร", provinces[0])

	districts, err := gs.Districts("เชียงใหม่")
	require.NoError(t, err)
	assert.Contains(t, districts, "เมืองเชียงใหม่")

	_, err = gs.Districts("ไม่มีจังหวัดนี้")
	assert.ErrorIs(t, err, ErrProvinceNotFound)

	postalDistricts, subdistricts, err := gs.Postal("10330")
	require.NoError(t, err)
	assert.Equal(t, []string{"ปทุมวัน"}, postalDistricts)
	assert.Contains(t, subdistricts, "ลุมพินี")

	_, _, err = gs.Postal("99999")
	assert.ErrorIs(t, err, ErrPostalNotFound)

	_, err = gs.Search("ภูเก็ต", "", "", 10)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestAdminService_SeedAndSearch(t *testing.T) {
	idx := loadIndex(t)
	searcher := &stubSearcher{}
	admin := NewAdminService(nil, idx, searcher, nil, zap.NewNop())

	validation := admin.Validate()
	assert.True(t, validation.Passed, validation.Warnings)
	assert.Equal(t, len(idx.Units()), validation.Units)

	result, err := admin.SeedGazetteer(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, searcher.indexesBuilt)
	assert.Equal(t, 1, result.IndexesBuilt)
	assert.Equal(t, len(idx.Units()), result.UnitsProcessed)
	assert.Len(t, searcher.seeded, result.UnitsProcessed)

	gs := NewGazetteerService(idx, searcher)
	docs, err := gs.Search("ภูเก็ต", "province", "", 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, gazetteer.LevelProvince, searcher.lastLevel)

	_, err = gs.Search("ภูเก็ต", "village", "", 10)
	assert.ErrorIs(t, err, search.ErrInvalidLevel)

	_, err = admin.SeedGazetteer(context.Background(), false)
	assert.ErrorIs(t, err, ErrNothingToSeed)
}

func TestAdminService_ValidateGazetteerData(t *testing.T) {
	admin := NewAdminService(nil, loadIndex(t), nil, nil, zap.NewNop())

	validation := admin.ValidateGazetteerData(nil)
	assert.False(t, validation.Passed)

	validation = admin.ValidateGazetteerData([]gazetteer.Unit{
		{ID: "3-a", Level: gazetteer.LevelSubdistrict, Name: "ก", PostalCodes: []string{"1033"}},
		{ID: "3-a", Level: gazetteer.LevelSubdistrict, Name: "ข", PostalCodes: []string{}},
	})
	assert.False(t, validation.Passed)
	assert.Len(t, validation.Warnings, 3)
}

func TestAdminService_InvalidateCache(t *testing.T) {
	idx := loadIndex(t)
	admin := NewAdminService(nil, idx, nil, nil, zap.NewNop())

	version, removed, err := admin.InvalidateCache(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, idx.Version(), version)
	assert.Zero(t, removed)
}
