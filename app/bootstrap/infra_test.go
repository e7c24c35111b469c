package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thai-address-parser/app/config"
	"go.uber.org/zap"
)

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "shipping", DatabaseName("mongodb://localhost:27017/shipping"))
	assert.Equal(t, DefaultDatabase, DatabaseName("mongodb://localhost:27017"))
	assert.Equal(t, DefaultDatabase, DatabaseName("not a uri"))
}

func TestNewSearcher_Disabled(t *testing.T) {
	searcher, err := NewSearcher(config.AppCfg{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, searcher)
}
