package routes

import (
	"crypto/subtle"
	"net/http"

	"policy_checkout/pkg"

	"github.com/gin-gonic/gin"
)

const adminTokenHeader = "X-Admin-Token"

var errAdminUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "admin token required", http.StatusUnauthorized)

func adminAuth(token string) gin.HandlerFunc {
	if token == "" {
		return func(c *gin.Context) { c.Next() }
	}
	want := []byte(token)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(adminTokenHeader))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatusJSON(errAdminUnauthorized.HTTPStatus, errAdminUnauthorized.ToHTTPError())
			return
		}
		c.Next()
	}
}
