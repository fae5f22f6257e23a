package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := errors.New("boom")

	t.Run("matches outer code", func(t *testing.T) {
		err := Wrap(base, CodeTimeout, "timed out")
		assert.True(t, HasCode(err, CodeTimeout))
		assert.False(t, HasCode(err, CodeInternal))
		assert.ErrorIs(t, err, base)
	})

	t.Run("matches nested code", func(t *testing.T) {
		inner := New(CodeValidation, "bad field")
		err := Wrap(inner, CodeInternal, "save failed")
		assert.True(t, HasCode(err, CodeValidation))
		assert.True(t, Is(err, CodeInternal))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(base, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(base))
	})

	t.Run("wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})
}

func TestMessageOf(t *testing.T) {
	err := Wrap(errors.New("dial tcp: refused"), CodeUnavailable, "service unavailable")
	assert.Equal(t, "service unavailable", MessageOf(err, "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("x"), "fallback"))
}
