package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "roster:student:42", Key("student", "42"))
	assert.Equal(t, "roster:", Key())
}
