package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientKey(t *testing.T) {
	a := ClientKey("203.0.113.7")

	assert.Len(t, a, 32)
	assert.Equal(t, a, ClientKey(" 203.0.113.7 "))
	assert.Equal(t, ClientKey("2001:DB8::1"), ClientKey("2001:db8::1"))
	assert.NotEqual(t, a, ClientKey("203.0.113.8"))
}
