package training

import (
	"math"
	"math/rand"

	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/tokenizer"
)

// Giá trị mặc định khi chia tập train / test
const (
	DefaultSeed     int64   = 42
	DefaultTestSize float64 = 0.25
)

// Align gán cho mỗi token nhãn của span cuối cùng giao với khoảng rune của
// token, không có span nào thì OTHER
func Align(tokens []tokenizer.Token, spans []Span) []tagger.Tag {
	tags := make([]tagger.Tag, len(tokens))
	for i, tok := range tokens {
		start := tok.Offset
		stop := start + len([]rune(tok.Text))

		tag := tagger.TagOther
		for _, s := range spans {
			if max(start, s.Start) < min(stop, s.Stop) {
				tag = MapLabel(s.Label)
			}
		}
		tags[i] = tag
	}
	return tags
}

// Split xáo trộn theo seed rồi lấy ceil(testSize * n) phần tử đầu làm tập test
func Split(examples []Example, testSize float64, seed int64) (train, test []Example) {
	if len(examples) == 0 {
		return nil, nil
	}
	if testSize <= 0 || testSize >= 1 {
		testSize = DefaultTestSize
	}

	nTest := int(math.Ceil(testSize * float64(len(examples))))
	perm := rand.New(rand.NewSource(seed)).Perm(len(examples))

	test = make([]Example, 0, nTest)
	train = make([]Example, 0, len(examples)-nTest)
	for i, j := range perm {
		if i < nTest {
			test = append(test, examples[j])
		} else {
			train = append(train, examples[j])
		}
	}
	return train, test
}
