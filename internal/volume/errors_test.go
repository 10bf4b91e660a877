package volume

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsIgnoresPathAndWrappedCause(t *testing.T) {
	a := New(NotFound, "/a/b")
	b := Wrap(NotFound, "/c/d", fmt.Errorf("boom"))
	assert.True(t, errors.Is(a, b))
	assert.True(t, errors.Is(b, a))
}

func TestErrorIsDistinguishesKind(t *testing.T) {
	a := New(NotFound, "/a")
	b := New(NotADirectory, "/a")
	assert.False(t, errors.Is(a, b))
}

func TestErrorUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("disk read failed")
	err := Wrap(CorruptChain, "/x", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorMessageFormat(t *testing.T) {
	assert.Equal(t, "not found", New(NotFound, "").Error())
	assert.Equal(t, "/a/b: not found", New(NotFound, "/a/b").Error())
}
