// Package httpctx reads request-scoped identity that the auth middleware
// stashes on the gin context. Handlers go through these accessors instead of
// touching the context keys directly.
package httpctx

import "github.com/gin-gonic/gin"

// Context keys set by the token middleware. Anything that fakes
// authentication in tests must use the same keys.
const (
	UserIDKey  = "userID"
	IsAdminKey = "isAdmin"
)

// CurrentUserID returns the authenticated user's database ID. The second
// return is false for anonymous requests.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok
}

// IsAdminRequest reports whether the request carries an admin identity.
// Anonymous requests are never admin.
func IsAdminRequest(c *gin.Context) bool {
	val, exists := c.Get(IsAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}
