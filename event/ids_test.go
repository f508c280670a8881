package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIDIsUniqueAndPrefixed(t *testing.T) {
	a := GenerateID("voicequality")
	b := GenerateID("voicequality")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "voicequality-")
}

func TestGenerateIDWithoutPrefix(t *testing.T) {
	id := GenerateID("")
	assert.NotEmpty(t, id)
}
