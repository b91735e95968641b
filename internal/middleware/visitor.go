package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	VisitorCookie  = "visitor_id"
	ContextVisitor = "visitorID"

	visitorMaxAge = 30 * 24 * time.Hour
)

// Visitor tags anonymous booking clients with a long-lived cookie so their
// confirmation views stay apart.
func Visitor(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, id, int(visitorMaxAge.Seconds()), "/", "", secure, true)
		}
		c.Set(ContextVisitor, id)
		c.Next()
	}
}

func VisitorID(c *gin.Context) string {
	return c.GetString(ContextVisitor)
}
