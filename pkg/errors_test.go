package pkg

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	t.Run("code and cause are both matchable", func(t *testing.T) {
		err := WrapErrorf(os.ErrNotExist, ErrDataNotFound, "settlement data for %s", "slovakia/city")

		assert.True(t, errors.Is(err, ErrDataNotFound))
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.False(t, errors.Is(err, ErrMalformedData))
		assert.Equal(t, ErrDataNotFound, ErrorCode(err))
		assert.Contains(t, err.Error(), "slovakia/city")
	})

	t.Run("wrapped again with fmt keeps the code", func(t *testing.T) {
		err := NewErrorf(ErrInvalidQuery, "query is empty")
		wrapped := errors.Join(errors.New("search"), err)

		assert.True(t, errors.Is(wrapped, ErrInvalidQuery))
		assert.Equal(t, ErrInvalidQuery, ErrorCode(wrapped))
		assert.Equal(t, "query is empty", err.Error())
	})

	t.Run("plain errors map to internal", func(t *testing.T) {
		assert.Equal(t, ErrInternalServerError, ErrorCode(errors.New("boom")))
	})
}
