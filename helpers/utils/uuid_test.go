package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	assert.True(t, IsUUID(id))
	assert.NotEqual(t, id, GenerateUUID())
	assert.False(t, IsUUID("job-1"))
}

func TestGenerateShortID(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f]{8}$`, GenerateShortID())
}
