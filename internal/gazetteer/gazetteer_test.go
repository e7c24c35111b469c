package gazetteer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecords = []Record{
	{"กรุงเทพมหานคร", "ปทุมวัน", "ลุมพินี", "10330"},
	{"กรุงเทพมหานคร", "ปทุมวัน", "รองเมือง", "10330"},
	{"กรุงเทพมหานคร", "บางรัก", "สีลม", "10500"},
	{"กรุงเทพมหานคร", "ห้วยขวาง", "บางกะปิ", "10310"},
	{"กรุงเทพมหานคร", "บางกะปิ", "คลองจั่น", "10240"},
	{" เชียงใหม่ ", "เมืองเชียงใหม่", "ศรีภูมิ", "50200"},
	{"", "ไม่มีจังหวัด", "ไม่มี", "99999"},
}

func TestNewIndex(t *testing.T) {
	idx, err := NewIndex(testRecords)
	require.NoError(t, err)

	assert.Equal(t, []string{"กรุงเทพมหานคร", "เชียงใหม่"}, idx.Provinces())
	assert.Equal(t, []string{"ปทุมวัน", "บางรัก", "ห้วยขวาง", "บางกะปิ", "เมืองเชียงใหม่"}, idx.Districts())
	assert.Equal(t, []string{"ลุมพินี", "รองเมือง", "สีลม", "บางกะปิ", "คลองจั่น", "ศรีภูมิ"}, idx.Subdistricts())
	assert.Len(t, idx.Records(), 6)

	districts, ok := idx.DistrictsOfProvince("กรุงเทพมหานคร")
	require.True(t, ok)
	assert.Equal(t, []string{"ปทุมวัน", "บางรัก", "ห้วยขวาง", "บางกะปิ"}, districts)

	subs, ok := idx.SubdistrictsByPostal("10330")
	require.True(t, ok)
	assert.Equal(t, []string{"ลุมพินี", "รองเมือง"}, subs)

	byPostal, ok := idx.DistrictsByPostal("10330")
	require.True(t, ok)
	assert.Equal(t, []string{"ปทุมวัน"}, byPostal)

	_, ok = idx.SubdistrictsOfProvince("ภูเก็ต")
	assert.False(t, ok)
	_, ok = idx.DistrictsByPostal("99999")
	assert.False(t, ok)

	assert.True(t, strings.HasPrefix(idx.Version(), "sha256:"))
}

func TestNewIndex_VersionTracksContent(t *testing.T) {
	a, err := NewIndex(testRecords)
	require.NoError(t, err)
	b, err := NewIndex(testRecords)
	require.NoError(t, err)
	c, err := NewIndex(testRecords[:2])
	require.NoError(t, err)

	assert.Equal(t, a.Version(), b.Version())
	assert.NotEqual(t, a.Version(), c.Version())
}

func TestNewIndex_Empty(t *testing.T) {
	_, err := NewIndex(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = NewIndex([]Record{{District: "x"}})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadCSV(t *testing.T) {
	data := "\ufeffProvince,District,Subdistrict,postal_code\n" +
		"กรุงเทพมหานคร,ปทุมวัน,ลุมพินี,10330\n" +
		"เชียงใหม่,เมืองเชียงใหม่,ศรีภูมิ\n"

	records, err := ReadCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{"กรุงเทพมหานคร", "ปทุมวัน", "ลุมพินี", "10330"},
		{"เชียงใหม่", "เมืองเชียงใหม่", "ศรีภูมิ", ""},
	}, records)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader("province,district,subdistrict\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadCSV(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thai.csv")
	require.NoError(t, os.WriteFile(path, []byte("province,district,subdistrict,zipcode\nภูเก็ต,กะทู้,ป่าตอง,83150\n"), 0o644))

	idx, err := Load(context.Background(), NewCSVSource(path))
	require.NoError(t, err)
	assert.Equal(t, []string{"ภูเก็ต"}, idx.Provinces())

	_, err = NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")).Records(context.Background())
	assert.Error(t, err)
}

func TestEmbeddedSource(t *testing.T) {
	idx, err := Load(context.Background(), EmbeddedSource{})
	require.NoError(t, err)
	assert.Contains(t, idx.Provinces(), "กรุงเทพมหานคร")
	assert.Contains(t, idx.Provinces(), "พระนครศรีอยุธยา")

	districts, ok := idx.DistrictsByPostal("50200")
	require.True(t, ok)
	assert.Equal(t, []string{"เมืองเชียงใหม่"}, districts)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "gazetteer.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	records, err := store.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.Replace(ctx, testRecords[:3]))
	require.NoError(t, store.Replace(ctx, testRecords[:2]))

	records, err = store.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, testRecords[:2], records)
}

func TestUnits(t *testing.T) {
	idx, err := NewIndex([]Record{
		{"เชียงใหม่", "เมืองเชียงใหม่", "ศรีภูมิ", "50200"},
		{"เชียงใหม่", "เมืองเชียงใหม่", "หายยา", "50100"},
		{"เชียงใหม่", "หางดง", "หางดง", "50230"},
	})
	require.NoError(t, err)

	units := idx.Units()
	require.Len(t, units, 1+2+3)

	assert.Equal(t, LevelProvince, units[0].Level)
	assert.Equal(t, []string{"50200", "50100", "50230"}, units[0].PostalCodes)

	assert.Equal(t, LevelDistrict, units[1].Level)
	assert.Equal(t, "เมืองเชียงใหม่", units[1].Name)
	assert.Equal(t, []string{"50200", "50100"}, units[1].PostalCodes)

	last := units[5]
	assert.Equal(t, LevelSubdistrict, last.Level)
	assert.Equal(t, "หางดง", last.Name)
	assert.Equal(t, "หางดง", last.District)

	seen := make(map[string]bool)
	for _, u := range units {
		assert.Regexp(t, `^[0-9a-f-]+$`, u.ID)
		assert.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
	}
}

func TestUnitRecords(t *testing.T) {
	got := unitRecords(unitDoc{Name: "ลุมพินี", Province: "กรุงเทพมหานคร", District: "ปทุมวัน", PostalCodes: []string{"10330", "10331"}})
	assert.Len(t, got, 2)
	assert.Equal(t, "10331", got[1].PostalCode)

	got = unitRecords(unitDoc{Name: "x", Province: "y"})
	assert.Equal(t, []Record{{Province: "y", Subdistrict: "x"}}, got)
}
