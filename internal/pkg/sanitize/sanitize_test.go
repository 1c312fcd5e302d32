package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentStripsScript(t *testing.T) {
	out := Content(`hello <script>alert("x")</script>world`)
	assert.Equal(t, "hello world", out)
}

func TestContentKeepsPlainText(t *testing.T) {
	assert.Equal(t, "今天食堂的饭真好吃", Content("今天食堂的饭真好吃"))
}

func TestContentTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "hello", Content("  hello \n"))
}

func TestContentEmptyAfterCleaning(t *testing.T) {
	assert.Empty(t, Content("<script>alert(1)</script>"))
	assert.Empty(t, Content("   "))
}
