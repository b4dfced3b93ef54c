package guard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend/auth"
	"storefront-backend/logger"
	"storefront-backend/models"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"

	userKey = "session_user"
)

func session(c *gin.Context, codec *auth.Codec) (auth.Snapshot, bool) {
	token := auth.TokenFromRequest(c.Request)
	if token == "" {
		return auth.Snapshot{}, false
	}
	snap, err := codec.Decode(token)
	if err != nil || !snap.IsAuthenticated {
		return auth.Snapshot{}, false
	}
	return snap, true
}

// Pages mengarahkan halaman dashboard ke /login bila belum login,
// dan /login ke /dashboard bila sudah. Ini hanya kenyamanan navigasi;
// pemeriksaan akses yang sebenarnya ada di RequireSession.
func Pages(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		onDashboard := strings.HasPrefix(path, DashboardPath)
		onLogin := strings.HasPrefix(path, LoginPath)
		if !onDashboard && !onLogin {
			c.Next()
			return
		}

		snap, ok := session(c, codec)
		switch {
		case onDashboard && !ok:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		case onLogin && ok:
			c.Redirect(http.StatusFound, DashboardPath)
			c.Abort()
			return
		}
		if ok {
			c.Set(userKey, snap.User)
		}
		c.Next()
	}
}

// RequireSession menolak request API tanpa token sesi yang valid.
func RequireSession(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := session(c, codec)
		if !ok {
			logger.FromGin(c).Warn("unauthorized request", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(userKey, snap.User)
		c.Next()
	}
}

// CurrentUser mengambil user yang dipasang oleh Pages atau RequireSession.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
