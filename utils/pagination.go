package utils

import (
	"math"
	"strconv"

	"karigar/models"

	"github.com/gin-gonic/gin"
)

// ParsePage reads page/limit query params, falling back to the defaults and clamping limit to maxLimit.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) models.Page {
	return NormalizePage(atoiOr(c.Query("page"), 1), atoiOr(c.Query("limit"), defaultLimit), defaultLimit, maxLimit)
}

// NormalizePage applies defaults and bounds to a requested window.
func NormalizePage(page, limit, defaultLimit, maxLimit int) models.Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	// (page-1)*limit must not wrap negative
	if limit > 0 && page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return models.Page{Page: page, Limit: limit}
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
