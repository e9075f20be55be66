package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Page size bounds shared by both pagination strategies. Out-of-range values
// are rejected rather than clamped; only an absent limit falls back to the
// default.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseLimitOffset extracts and validates the limit/offset query parameters
// for offset pagination.
func ParseLimitOffset(c *gin.Context) (int, int, *RequestError) {
	limit, reqErr := parseLimit(c.Query("limit"))
	if reqErr != nil {
		return 0, 0, reqErr
	}
	raw := strings.TrimSpace(c.Query("offset"))
	offset := 0
	if raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, NewValidationError("offset must be an integer", err)
		}
		offset = val
	}
	if offset < 0 {
		return 0, 0, NewValidationError("offset must be >= 0", nil)
	}
	return limit, offset, nil
}

// ParseCursor extracts and validates the cursor/limit query parameters for
// cursor pagination. A zero cursor means "start from the beginning".
func ParseCursor(c *gin.Context) (int64, int, *RequestError) {
	limit, reqErr := parseLimit(c.Query("limit"))
	if reqErr != nil {
		return 0, 0, reqErr
	}
	raw := strings.TrimSpace(c.Query("cursor"))
	if raw == "" {
		return 0, limit, nil
	}
	cursor, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, 0, NewValidationError("cursor must be an integer", err)
	}
	if cursor < 1 {
		return 0, 0, NewValidationError("cursor must be >= 1", nil)
	}
	return cursor, limit, nil
}

func parseLimit(raw string) (int, *RequestError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError("limit must be an integer", err)
	}
	if val < 1 || val > MaxLimit {
		return 0, NewValidationError(
			fmt.Sprintf("limit must be between 1 and %d", MaxLimit), nil)
	}
	return val, nil
}
