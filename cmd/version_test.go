package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	assert.Equal(t, "triviaz (devel)", versionString(""))
	assert.Equal(t, "triviaz (devel) (0123456789ab)", versionString("0123456789abcdef0123"))
}
