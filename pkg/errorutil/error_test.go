package errorutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	orig := Retriable("upstream flaky")
	assert.Same(t, orig, Wrap(orig), "already-typed errors pass through")

	wrapped := Wrap(fmt.Errorf("plain failure"))
	assert.False(t, wrapped.Retryable, "unknown errors default to non-retryable")
	assert.Nil(t, Wrap(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Retriable("try again")))
	assert.False(t, IsRetryable(NonRetriable("bad input")))

	// 错误链上的标记也能识别
	chained := fmt.Errorf("processor[1] failed: %w", RetriableWithDetails("db gone", "dial tcp refused"))
	assert.True(t, IsRetryable(chained))

	assert.False(t, IsRetryable(fmt.Errorf("plain")))
	assert.False(t, IsRetryable(nil))
}
