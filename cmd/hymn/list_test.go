package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCmd_Structure(t *testing.T) {
	assert.Equal(t, "list", listCmd.Use)
	assert.NotEmpty(t, listCmd.Short)
}

func TestValidateCmd_Structure(t *testing.T) {
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
}

func TestRemoveCmd_Structure(t *testing.T) {
	assert.Equal(t, "remove <id>", removeCmd.Use)
	assert.NotEmpty(t, removeCmd.Short)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long stri…", truncate("long string here", 10))
	assert.Equal(t, "exactly한글", truncate("exactly한글", 9))
}
