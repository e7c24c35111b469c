package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thai-address-parser/app/requests"
)

// DefaultChunkSize số địa chỉ mỗi lần gọi ParseBatch khi xử lý stream
const DefaultChunkSize = 1000

const maxLineBytes = 1 << 20

// ProcessStream đọc mỗi dòng một địa chỉ từ r, ghi kết quả NDJSON vào w
// theo đúng thứ tự input. Dòng trống bị bỏ qua. Trả về số địa chỉ đã ghi.
func (as *AddressService) ProcessStream(ctx context.Context, r io.Reader, w io.Writer, options requests.ParseOptions, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	total := 0
	chunk := make([]string, 0, chunkSize)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		results, err := as.ParseBatch(ctx, chunk, options, nil)
		if err != nil {
			return err
		}
		for _, result := range results {
			if err := encoder.Encode(result); err != nil {
				return fmt.Errorf("lỗi ghi NDJSON: %w", err)
			}
		}
		total += len(results)
		chunk = chunk[:0]
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		chunk = append(chunk, line)
		if len(chunk) == chunkSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return total, fmt.Errorf("lỗi đọc input: %w", err)
	}
	err := flush()
	return total, err
}
