// Package handler wires the HTTP endpoints, translating between gin
// requests and the service layer.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carehub/pkg/apperr"
	"carehub/pkg/response"
)

// idParam parses the :id path parameter. On failure it writes the error
// envelope and returns false.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, "Invalid identifier", apperr.Validation("The id path parameter must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// uuidQuery parses an optional UUID query parameter. On failure it
// writes the error envelope and returns ok=false.
func uuidQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Fail(c, "Invalid query parameter", apperr.FieldErrors(map[string]string{name: "must be a valid UUID"}))
		return nil, false
	}
	return &id, true
}

// listEnvelope is the shape of every paginated collection response.
type listEnvelope struct {
	Items any `json:"items"`
	Meta  any `json:"meta"`
}
