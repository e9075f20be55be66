package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ginContextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/users?"+rawQuery, http.NoBody)
	return c
}

func TestParseLimitOffset(t *testing.T) {
	t.Run("Should default absent parameters", func(t *testing.T) {
		limit, offset, reqErr := ParseLimitOffset(ginContextWithQuery(t, ""))
		require.Nil(t, reqErr)
		assert.Equal(t, DefaultLimit, limit)
		assert.Zero(t, offset)
	})

	t.Run("Should accept the boundary values", func(t *testing.T) {
		limit, offset, reqErr := ParseLimitOffset(ginContextWithQuery(t, "limit=100&offset=0"))
		require.Nil(t, reqErr)
		assert.Equal(t, 100, limit)
		assert.Zero(t, offset)

		limit, _, reqErr = ParseLimitOffset(ginContextWithQuery(t, "limit=1"))
		require.Nil(t, reqErr)
		assert.Equal(t, 1, limit)
	})

	t.Run("Should reject an out-of-range limit instead of clamping", func(t *testing.T) {
		for _, q := range []string{"limit=0", "limit=101", "limit=-5"} {
			_, _, reqErr := ParseLimitOffset(ginContextWithQuery(t, q))
			require.NotNil(t, reqErr, q)
			assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		}
	})

	t.Run("Should reject a negative offset", func(t *testing.T) {
		_, _, reqErr := ParseLimitOffset(ginContextWithQuery(t, "offset=-1"))
		require.NotNil(t, reqErr)
		assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	})

	t.Run("Should reject non-numeric parameters", func(t *testing.T) {
		_, _, reqErr := ParseLimitOffset(ginContextWithQuery(t, "limit=ten"))
		require.NotNil(t, reqErr)
		_, _, reqErr = ParseLimitOffset(ginContextWithQuery(t, "offset=none"))
		require.NotNil(t, reqErr)
	})
}

func TestParseCursor(t *testing.T) {
	t.Run("Should start from the beginning without a cursor", func(t *testing.T) {
		cursor, limit, reqErr := ParseCursor(ginContextWithQuery(t, ""))
		require.Nil(t, reqErr)
		assert.Zero(t, cursor)
		assert.Equal(t, DefaultLimit, limit)
	})

	t.Run("Should accept a positive cursor", func(t *testing.T) {
		cursor, limit, reqErr := ParseCursor(ginContextWithQuery(t, "cursor=42&limit=5"))
		require.Nil(t, reqErr)
		assert.Equal(t, int64(42), cursor)
		assert.Equal(t, 5, limit)
	})

	t.Run("Should reject a cursor below one", func(t *testing.T) {
		for _, q := range []string{"cursor=0", "cursor=-3"} {
			_, _, reqErr := ParseCursor(ginContextWithQuery(t, q))
			require.NotNil(t, reqErr, q)
			assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		}
	})

	t.Run("Should reject a non-numeric cursor", func(t *testing.T) {
		_, _, reqErr := ParseCursor(ginContextWithQuery(t, "cursor=abc"))
		require.NotNil(t, reqErr)
	})
}
