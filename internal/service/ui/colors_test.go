package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSection(t *testing.T) {
	assert.Empty(t, Section("sources", "  \n"))

	out := Section("sources", "- a\n")
	assert.Contains(t, out, "SOURCES")
	assert.Contains(t, out, "- a\n")
}

func TestBullets(t *testing.T) {
	assert.Equal(t, "- one\n- two\n", Bullets([]string{"one", "two"}))
	assert.Empty(t, Bullets(nil))
}

func TestCheck(t *testing.T) {
	ok := Check(true, "API key", "AIza****")
	assert.Contains(t, ok, "[ok]")
	assert.Contains(t, ok, " API key ")
	assert.Contains(t, ok, "AIza****")

	bad := Check(false, "Models", "")
	assert.Contains(t, bad, "[!!]")
	assert.True(t, len(bad) > 0 && bad[len(bad)-1] == '\n')
}
