package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// MutationResponse answers a create/update/delete with the reloaded list.
type MutationResponse[T any] struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Mutated[T any](c *gin.Context, status int, message string, id int64, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(status, MutationResponse[T]{
		Message: message,
		ID:      id,
		Data:    data,
		Total:   len(data),
	})
}
