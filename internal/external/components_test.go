package external

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelTokens(t *testing.T) {
	words := []string{"99/1", " ", "ถนนสีลม", " ", "บางรัก", " ", "10500", " ", "0812345678", " ", "A@B.CO"}
	comps := []Component{
		{Label: "house_number", Value: "99/1"},
		{Label: "road", Value: "ถนนสีลม"},
		{Label: "city_district", Value: "บางรัก"},
		{Label: "postcode", Value: "10500"},
	}

	assert.Equal(t,
		[]string{"ADDR", "O", "ADDR", "O", "LOC", "O", "POST", "O", "PHONE", "O", "EMAIL"},
		LabelTokens(words, comps))
}

func TestLabelTokens_UnknownComponent(t *testing.T) {
	got := LabelTokens([]string{"x"}, []Component{{Label: "world_region", Value: "x"}})
	assert.Equal(t, []string{"O"}, got)
}

func TestLibpostalClassifier_Context(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLibpostalClassifier().Predict(ctx, nil)
	assert.Error(t, err)
}
