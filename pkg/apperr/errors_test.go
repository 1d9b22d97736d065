package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindAuth, KindOf(Auth(CauseExpired, "expired", nil)))
	assert.Equal(t, KindUpload, KindOf(Upload("upload", errors.New("s3 down"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("user does not exist"))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestCauseOf(t *testing.T) {
	assert.Equal(t, CauseInvalid, CauseOf(Auth(CauseInvalid, "invalid", nil)))
	assert.Equal(t, AuthCause(""), CauseOf(Validation("bad")))
	assert.Equal(t, AuthCause(""), CauseOf(errors.New("plain")))
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("connection refused")
	err := Internal("failed to load user", root)

	assert.ErrorIs(t, err, root)
	assert.Equal(t, "failed to load user: connection refused", err.Error())
	assert.Equal(t, "failed to load user", Message(err))
	assert.Equal(t, "internal server error", Message(root))
}
