package envelope

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternalzzx/blog-server/internal/errs"
)

func record(t *testing.T, fn func(c echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, fn(e.NewContext(req, rec)))
	return rec
}

func TestJSON(t *testing.T) {
	rec := record(t, func(c echo.Context) error {
		return JSON(c, http.StatusOK, map[string]string{"uuid": "abc"})
	})

	assert.Equal(t, http.StatusOK, rec.Code, "code is mirrored into the status line")
	assert.JSONEq(t, `{"code":200,"data":{"uuid":"abc"}}`, rec.Body.String())
}

func TestFault(t *testing.T) {
	t.Run("structured fault", func(t *testing.T) {
		rec := record(t, func(c echo.Context) error {
			return Fault(c, errs.NewNotFoundError("User not found"))
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"code":404,"data":"User not found"}`, rec.Body.String())
	})

	t.Run("bare error", func(t *testing.T) {
		rec := record(t, func(c echo.Context) error {
			return Fault(c, errors.New("pq: duplicate key"))
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":400,"data":"Request error"}`, rec.Body.String())
	})
}
