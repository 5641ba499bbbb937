package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("upstream %d", int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	cases := map[Kind]int{
		KindInvalidInput: http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindUnavailable:  http.StatusServiceUnavailable,
		KindNotFound:     http.StatusNotFound,
		KindBadGateway:   http.StatusBadGateway,
		KindUnknown:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(E(kind, "x")), kind)
	}
}

func TestHTTPStatusUsesUpstreamStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusConflict, HTTPStatus(statusErr(http.StatusConflict)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("load guild: %w", statusErr(http.StatusNotFound))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(statusErr(http.StatusOK)))
}

func TestHTTPStatusDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrors.New("boom")))
}

func TestWrapUnwraps(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("dial tcp: refused")
	err := Wrap(KindBadGateway, "backend unreachable", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindBadGateway, KindOf(err))
	assert.Equal(t, "backend unreachable", err.Error())
	assert.Equal(t, "dial tcp: refused", Error{Err: cause}.Error())
	assert.Equal(t, "not_found", Error{Kind: KindNotFound}.Error())
}

func TestPublicMessageHidesInternalErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal Server Error", PublicMessage(stderrors.New("sql: connection refused")))
	assert.Equal(t, "guild is required", PublicMessage(E(KindInvalidInput, "guild is required")))
	assert.Empty(t, PublicMessage(nil))
}
