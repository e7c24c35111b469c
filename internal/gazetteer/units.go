package gazetteer

import (
	"bytes"
	"context"
	"crypto/sha256"
	_ "embed"
	"fmt"
)

//go:embed data/thai_address_sample.csv
var sampleCSV []byte

// EmbeddedSource gazetteer mẫu đi kèm binary
type EmbeddedSource struct{}

// Records đọc file CSV nhúng
func (EmbeddedSource) Records(ctx context.Context) ([]Record, error) {
	return ReadCSV(ctx, bytes.NewReader(sampleCSV))
}

// Unit một đơn vị hành chính duy nhất (tỉnh, huyện hoặc xã)
type Unit struct {
	ID          string   `json:"id"`
	Level       int      `json:"level"`
	Name        string   `json:"name"`
	Province    string   `json:"province"`
	District    string   `json:"district,omitempty"`
	PostalCodes []string `json:"postal_codes"`
}

// Units tách Index thành danh sách đơn vị, thứ tự xuất hiện đầu tiên.
// Tỉnh đứng trước, sau đó tới huyện và xã.
func (idx *Index) Units() []Unit {
	type key struct {
		level                        int
		province, district, subdist string
	}
	var order []key
	units := make(map[key]*Unit)
	codes := make(map[key]*orderedSet)

	add := func(k key, name, code string) {
		u, ok := units[k]
		if !ok {
			u = &Unit{
				ID:       unitID(k.level, k.province, k.district, k.subdist),
				Level:    k.level,
				Name:     name,
				Province: k.province,
			}
			if k.level == LevelSubdistrict {
				u.District = k.district
			}
			units[k] = u
			codes[k] = newOrderedSet()
			order = append(order, k)
		}
		codes[k].add(code)
	}

	for _, r := range idx.records {
		add(key{level: LevelProvince, province: r.Province}, r.Province, r.PostalCode)
		if r.District != "" {
			add(key{level: LevelDistrict, province: r.Province, district: r.District}, r.District, r.PostalCode)
		}
		if r.Subdistrict != "" {
			add(key{level: LevelSubdistrict, province: r.Province, district: r.District, subdist: r.Subdistrict}, r.Subdistrict, r.PostalCode)
		}
	}

	out := make([]Unit, 0, len(order))
	for level := LevelProvince; level <= LevelSubdistrict; level++ {
		for _, k := range order {
			if k.level != level {
				continue
			}
			u := units[k]
			u.PostalCodes = codes[k].items
			if u.PostalCodes == nil {
				u.PostalCodes = []string{}
			}
			out = append(out, *u)
		}
	}
	return out
}

// unitID chỉ gồm chữ và số, hợp lệ làm primary key Meilisearch
func unitID(level int, path ...string) string {
	h := sha256.New()
	for _, p := range path {
		fmt.Fprintf(h, "%s/", p)
	}
	return fmt.Sprintf("%d-%x", level, h.Sum(nil)[:8])
}
