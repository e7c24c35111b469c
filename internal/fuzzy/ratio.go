package fuzzy

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Ratio 100 * (1 - khoảng cách Levenshtein / độ dài rune lớn hơn)
func Ratio(a, b string) int {
	return round(ratio([]rune(a), []rune(b)))
}

func ratio(a, b []rune) float64 {
	n := max(len(a), len(b))
	if n == 0 || len(a) == 0 || len(b) == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(string(a), string(b))
	return 100 * (1 - float64(d)/float64(n))
}

// PartialRatio điểm tốt nhất của chuỗi ngắn so với mọi cửa sổ cùng độ dài
// của chuỗi dài
func PartialRatio(a, b string) int {
	return round(partialRatio([]rune(a), []rune(b)))
}

func partialRatio(a, b []rune) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		if r := ratio(short, long[i:i+len(short)]); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSort(a, b string, partial bool) float64 {
	return score(sortedTokens(a), sortedTokens(b), partial)
}

func tokenSet(a, b string, partial bool) float64 {
	setA := tokenSetOf(a)
	setB := tokenSetOf(b)

	var sect, diffAB, diffBA []string
	for t := range setA {
		if setB[t] {
			sect = append(sect, t)
		} else {
			diffAB = append(diffAB, t)
		}
	}
	for t := range setB {
		if !setA[t] {
			diffBA = append(diffBA, t)
		}
	}
	sort.Strings(sect)
	sort.Strings(diffAB)
	sort.Strings(diffBA)

	base := strings.Join(sect, " ")
	combinedAB := strings.TrimSpace(base + " " + strings.Join(diffAB, " "))
	combinedBA := strings.TrimSpace(base + " " + strings.Join(diffBA, " "))

	return max(
		score(base, combinedAB, partial),
		score(base, combinedBA, partial),
		score(combinedAB, combinedBA, partial),
	)
}

func tokenSetOf(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}

func score(a, b string, partial bool) float64 {
	if partial {
		return partialRatio([]rune(a), []rune(b))
	}
	return ratio([]rune(a), []rune(b))
}

// WRatio kết hợp ratio, partial ratio, token sort và token set với hệ số
// theo tỉ lệ độ dài hai chuỗi
func WRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	base := ratio(ra, rb)

	lenRatio := float64(max(len(ra), len(rb))) / float64(min(len(ra), len(rb)))
	const unbaseScale = 0.95

	if lenRatio < 1.5 {
		return round(max(
			base,
			tokenSort(a, b, false)*unbaseScale,
			tokenSet(a, b, false)*unbaseScale,
		))
	}

	partialScale := 0.9
	if lenRatio > 8 {
		partialScale = 0.6
	}
	return round(max(
		base,
		partialRatio(ra, rb)*partialScale,
		tokenSort(a, b, true)*unbaseScale*partialScale,
		tokenSet(a, b, true)*unbaseScale*partialScale,
	))
}

// JaroWinkler điểm Jaro-Winkler * 100
func JaroWinkler(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return round(smetrics.JaroWinkler(a, b, 0.7, 4) * 100)
}

func round(f float64) int {
	return int(math.Round(f))
}
