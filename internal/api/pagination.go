package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/ranking"
	"github.com/spotlog/spotlog/pkg/config"
)

// sliceResponse is the envelope for every paginated list. There is no
// total-count or total-pages field: pages probe one row ahead instead
// of running a COUNT.
type sliceResponse struct {
	Content          interface{} `json:"content"`
	Page             int         `json:"page"`
	Size             int         `json:"size"`
	NumberOfElements int         `json:"number_of_elements"`
	HasNext          bool        `json:"has_next"`
}

func newSlice(content interface{}, n int, q ranking.Query, hasNext bool) sliceResponse {
	return sliceResponse{
		Content:          content,
		Page:             q.Page,
		Size:             q.Size,
		NumberOfElements: n,
		HasNext:          hasNext,
	}
}

// parsePageQuery reads page, size, sort, asc and keyword parameters.
// Shape errors fail fast with InvalidRequest; the sort key itself is
// validated against the per-kind whitelist by the ranking engine.
func parsePageQuery(c *gin.Context, limits config.PaginationConfig) (ranking.Query, error) {
	q := ranking.Query{
		Page: 0,
		Size: limits.DefaultSize,
		Sort: ranking.SortCreatedAt,
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return q, errs.InvalidRequest("page must be a non-negative integer")
		}
		q.Page = page
	}

	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return q, errs.InvalidRequest("size must be a positive integer")
		}
		if size > limits.MaxSize {
			size = limits.MaxSize
		}
		q.Size = size
	}

	if raw := c.Query("sort"); raw != "" {
		q.Sort = ranking.SortKey(raw)
	}

	if raw := c.Query("asc"); raw != "" {
		asc, err := strconv.ParseBool(raw)
		if err != nil {
			return q, errs.InvalidRequest("asc must be a boolean")
		}
		q.Ascending = asc
	}

	q.Keyword = c.Query("keyword")
	if raw := c.Query("search_type"); raw != "" {
		q.SearchBy = ranking.SearchField(raw)
	}

	return q, nil
}
