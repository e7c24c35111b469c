package gazetteer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// tên cột chấp nhận cho mã bưu chính
var postalColumns = []string{"zipcode", "postal_code", "postcode"}

// CSVSource đọc gazetteer từ file CSV có header
type CSVSource struct {
	path string
}

// NewCSVSource tạo mới CSVSource
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Records đọc toàn bộ file
func (s *CSVSource) Records(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("mở gazetteer csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}

// ReadCSV đọc các dòng gazetteer. Header cần có province, district,
// subdistrict và một trong zipcode / postal_code / postcode.
func ReadCSV(ctx context.Context, r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("đọc header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		cols[name] = i
	}

	find := func(names ...string) (int, error) {
		for _, n := range names {
			if i, ok := cols[n]; ok {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: %s", ErrMissingColumn, names[0])
	}
	provinceCol, err := find("province")
	if err != nil {
		return nil, err
	}
	districtCol, err := find("district")
	if err != nil {
		return nil, err
	}
	subdistrictCol, err := find("subdistrict")
	if err != nil {
		return nil, err
	}
	postalCol, err := find(postalColumns...)
	if err != nil {
		return nil, err
	}

	field := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var records []Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("đọc dòng %d: %w", line, err)
		}
		records = append(records, Record{
			Province:    field(row, provinceCol),
			District:    field(row, districtCol),
			Subdistrict: field(row, subdistrictCol),
			PostalCode:  field(row, postalCol),
		})
	}
	return records, nil
}
