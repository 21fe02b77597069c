package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"sponsorship-backend/internal/errors"
)

func TestErrorCodeMatching(t *testing.T) {
	err := errors.Conflict("member already has an active sponsorship")

	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.NotErrorIs(t, err, errors.ErrValidation)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("driver: bad connection")
	err := errors.Wrap(cause, errors.CodeInternal, "failed to persist sponsorship")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, errors.ErrInternal)
	assert.Contains(t, err.Error(), "failed to persist sponsorship")
	assert.Contains(t, err.Error(), "bad connection")
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[error]int{
		errors.Validation("v"):   http.StatusBadRequest,
		errors.TokenInvalid("t"): http.StatusBadRequest,
		errors.Unauthorized("u"): http.StatusUnauthorized,
		errors.TokenExpired("t"): http.StatusUnauthorized,
		errors.Forbidden("f"):    http.StatusForbidden,
		errors.NotFound("n"):     http.StatusNotFound,
		errors.Conflict("c"):     http.StatusConflict,
		errors.Internal("i"):     http.StatusInternalServerError,
	}
	for err, want := range cases {
		var domainErr *errors.Error
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, want, domainErr.HTTPStatus())
	}
}
