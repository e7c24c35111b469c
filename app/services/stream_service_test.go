package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/app/requests"
	"github.com/thai-address-parser/internal/tagger"
	"go.uber.org/zap"
)

func TestAddressService_ProcessStream(t *testing.T) {
	as := NewAddressService(newComponents(t, locClassifier{}), nil, zap.NewNop())
	input := "จ.ภูเก็ต\r\n\nกทม 10330\nจ.เชียงใหม่ 50200\n"

	var out bytes.Buffer
	n, err := as.ProcessStream(context.Background(), strings.NewReader(input), &out, requests.ParseOptions{}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var results []models.AddressResult
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var r models.AddressResult
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		results = append(results, r)
	}
	require.Len(t, results, 3)
	assert.Equal(t, "จ.ภูเก็ต", results[0].Raw)
	assert.Equal(t, "กรุงเทพมหานคร", results[1].Parsed.Province)
	assert.Equal(t, "50200", results[2].Parsed.PostalCode)
}

func TestAddressService_ProcessStreamError(t *testing.T) {
	as := NewAddressService(newComponents(t, locClassifier{err: errors.New("boom")}), nil, zap.NewNop())

	var out bytes.Buffer
	n, err := as.ProcessStream(context.Background(), strings.NewReader("จ.ภูเก็ต\n"), &out, requests.ParseOptions{}, 0)
	assert.ErrorIs(t, err, tagger.ErrClassifierUnavailable)
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
}

func TestAddressService_ProcessStreamInvalidUTF8(t *testing.T) {
	as := NewAddressService(newComponents(t, locClassifier{}), nil, zap.NewNop())
	input := "จ.ภูเก็ต\n\xff\xfe bad\nจ.เชียงใหม่ 50200\n"

	var out bytes.Buffer
	n, err := as.ProcessStream(context.Background(), strings.NewReader(input), &out, requests.ParseOptions{}, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var results []models.AddressResult
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var r models.AddressResult
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		results = append(results, r)
	}
	require.Len(t, results, 3)
	assert.Equal(t, "ภูเก็ต", results[0].Parsed.Province)
	assert.Equal(t, "เชียงใหม่", results[2].Parsed.Province)
	assert.Equal(t, "50200", results[2].Parsed.PostalCode)
}

func TestAddressService_ParseAddressInvalidUTF8(t *testing.T) {
	as := NewAddressService(newComponents(t, locClassifier{}), nil, zap.NewNop())

	result, _, err := as.ParseAddress(context.Background(), "นายสมชาย \xff 10330", requests.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "10330", result.Parsed.PostalCode)
}
