package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisable(t *testing.T) {
	Disable()
	assert.Equal(t, "plain", ColorError("plain"))
	assert.Equal(t, "https://x.example", ColorURL("https://x.example"))
}
