package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
}

func TestFull(t *testing.T) {
	full := Full()
	assert.Contains(t, full, "docbuild")
	assert.Contains(t, full, Version)
}

func TestShort(t *testing.T) {
	assert.Equal(t, Version, Short())
}
