package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Business Checking", Account{Name: "Business Checking"}.DisplayName())
	assert.Equal(t, "Unknown Account", Account{ID: "77", Type: "Bank"}.DisplayName())
}
