package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	DispenserID string `json:"dispenserId" validate:"required,max=8"`
}

func (r *sampleRequest) Validate() error {
	return Struct(r)
}

func newContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func requireBadRequest(t *testing.T, err error, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestBindAndValidate(t *testing.T) {
	req := &sampleRequest{}
	require.NoError(t, BindAndValidate(newContext(`{"dispenserId":"D1"}`), req))
	assert.Equal(t, "D1", req.DispenserID)
}

func TestBindAndValidate_Missing(t *testing.T) {
	requireBadRequest(t, BindAndValidate(newContext(`{}`), &sampleRequest{}), "Missing dispenserId")
	requireBadRequest(t, BindAndValidate(newContext(`{"dispenserId":""}`), &sampleRequest{}), "Missing dispenserId")
}

func TestBindAndValidate_Max(t *testing.T) {
	err := BindAndValidate(newContext(`{"dispenserId":"123456789"}`), &sampleRequest{})
	requireBadRequest(t, err, "dispenserId must not exceed 8 characters")
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	requireBadRequest(t, BindAndValidate(newContext(`{"dispenserId":`), &sampleRequest{}), "Invalid request body")
	requireBadRequest(t, BindAndValidate(newContext(`{"dispenserId":42}`), &sampleRequest{}), "Invalid request body")
}
