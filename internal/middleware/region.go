package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/region"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
)

const (
	RegionKey     = "request_region"
	RegionCodeKey = "request_region_code"
)

// RegionMiddleware resolves the active region from the request host's
// subdomain and attaches it to the context. When the subdomain matches no
// active region the configured default region is used; when even the default
// is absent or inactive the region in context is nil and handlers that need
// one must fail with a not-found error rather than assume a tenant.
func RegionMiddleware(db *gorm.DB, defaultCode string) gin.HandlerFunc {
	repo := region.NewRegionRepository(db)
	return func(c *gin.Context) {
		host := c.Request.Host
		if i := strings.Index(host, ":"); i >= 0 {
			host = host[:i]
		}

		resolved, err := repo.GetActiveByCode(subdomain(host))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve region"})
			return
		}
		code := defaultCode
		if resolved == nil {
			resolved, err = repo.GetActiveByCode(defaultCode)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve region"})
				return
			}
		} else {
			code = resolved.Code
		}

		c.Set(RegionCodeKey, code)
		if resolved != nil {
			c.Set(RegionKey, resolved)
		}
		c.Next()
	}
}

func subdomain(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return ""
	}
	return strings.ToLower(parts[0])
}

// GetRegion returns the resolved region from context, or nil when none
// resolved.
func GetRegion(c *gin.Context) *region.Region {
	val, exists := c.Get(RegionKey)
	if !exists {
		return nil
	}
	r, ok := val.(*region.Region)
	if !ok {
		return nil
	}
	return r
}

// RequireRegion returns the resolved region or writes a 404 and returns nil.
// Handlers must check the returned value and stop when it is nil.
func RequireRegion(c *gin.Context) *region.Region {
	r := GetRegion(c)
	if r == nil {
		responses.NotFound(c, "Region")
	}
	return r
}
