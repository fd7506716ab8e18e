package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	ProductID *int64 `json:"productId" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Note      string `json:"note" validate:"max=5"`
}

func (p *orderPayload) Validate() error { return Struct(p) }

func newContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	out := map[string]string{}
	for _, fe := range httpErr.Errors {
		out[fe.Field] = fe.Error
	}
	return out
}

func TestBindAndValidate_Valid(t *testing.T) {
	var p orderPayload
	require.NoError(t, BindAndValidate(newContext(`{"productId":3,"date":"2024-02-29"}`), &p))
	require.NotNil(t, p.ProductID)
	assert.Equal(t, int64(3), *p.ProductID)
	assert.Equal(t, "2024-02-29", p.Date)
}

func TestBindAndValidate_FieldMessages(t *testing.T) {
	var p orderPayload
	err := BindAndValidate(newContext(`{"productId":0,"date":"2024-13-01","note":"too long"}`), &p)

	fields := fieldErrors(t, err)
	assert.Equal(t, "must be greater than 0", fields["productId"])
	assert.Equal(t, "must be a date in the format 2006-01-02", fields["date"])
	assert.Equal(t, "must not exceed 5 characters", fields["note"])
}

func TestBindAndValidate_Required(t *testing.T) {
	var p orderPayload
	fields := fieldErrors(t, BindAndValidate(newContext(`{}`), &p))
	assert.Equal(t, "is required", fields["productId"])
	assert.Equal(t, "is required", fields["date"])
}

func TestBindAndValidate_BindFailure(t *testing.T) {
	var p orderPayload
	err := BindAndValidate(newContext(`{"productId":"x"}`), &p)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}
