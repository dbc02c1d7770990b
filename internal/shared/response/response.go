package response

import (
	"github.com/gin-gonic/gin"
)

const MaxPageSize = 100

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// Success writes {"success": true, "<key>": data}. An empty key writes only
// the success flag, plus meta when given.
func Success(c *gin.Context, status int, key string, data any, meta *PaginationMeta) {
	body := gin.H{"success": true}
	if key != "" {
		body[key] = data
	}
	if meta != nil {
		body["meta"] = meta
	}
	c.JSON(status, body)
}

// Message writes {"success": true, "message": msg}.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": msg,
	})
}

// Error writes {"success": false, "error": message, "code": errorCode}.
func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	body := gin.H{
		"success": false,
		"error":   message,
		"code":    errorCode,
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// Paginate slices items by the page/page_size query params and returns the
// page together with its meta. Without page params the full list is returned.
func Paginate[T any](c *gin.Context, items []T) ([]T, *PaginationMeta) {
	if c.Query("page") == "" && c.Query("page_size") == "" {
		return items, nil
	}

	page := queryInt(c, "page", 1)
	pageSize := min(queryInt(c, "page_size", 10), MaxPageSize)

	total := int64(len(items))
	start, end := len(items), len(items)
	if page-1 < (len(items)+pageSize-1)/pageSize {
		start = (page - 1) * pageSize
		end = min(start+pageSize, len(items))
	}

	meta := NewPaginationMeta(total, page, pageSize)
	return items[start:end], &meta
}
