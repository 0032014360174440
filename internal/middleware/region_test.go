package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/transferportal/internal/region"
)

func setupRegionTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&region.Region{}))
	return db
}

func regionRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(RegionMiddleware(db, "bc"))
	router.GET("/probe", func(c *gin.Context) {
		code := ""
		var id uint
		if r := GetRegion(c); r != nil {
			code = r.Code
			id = r.ID
		}
		c.JSON(http.StatusOK, gin.H{"code": code, "id": id})
	})
	return router
}

func probe(t *testing.T, router *gin.Engine, host string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Host = host
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegionResolvedFromSubdomain(t *testing.T) {
	db := setupRegionTest(t)
	require.NoError(t, db.Create(&region.Region{Code: "bc", Name: "British Columbia", IsActive: true}).Error)
	require.NoError(t, db.Create(&region.Region{Code: "ab", Name: "Alberta", IsActive: true}).Error)
	router := regionRouter(db)

	w := probe(t, router, "ab.transferportal.ca")
	assert.Contains(t, w.Body.String(), `"code":"ab"`)

	// Subdomain matching is case-insensitive and ignores the port.
	w = probe(t, router, "AB.transferportal.ca:8090")
	assert.Contains(t, w.Body.String(), `"code":"ab"`)
}

func TestRegionFallsBackToDefault(t *testing.T) {
	db := setupRegionTest(t)
	require.NoError(t, db.Create(&region.Region{Code: "bc", Name: "British Columbia", IsActive: true}).Error)
	router := regionRouter(db)

	// Unknown subdomain resolves to the default region.
	w := probe(t, router, "nowhere.transferportal.ca")
	assert.Contains(t, w.Body.String(), `"code":"bc"`)

	// Bare host has no subdomain at all.
	w = probe(t, router, "localhost:8090")
	assert.Contains(t, w.Body.String(), `"code":"bc"`)
}

func TestInactiveRegionIsSkipped(t *testing.T) {
	db := setupRegionTest(t)
	require.NoError(t, db.Create(&region.Region{Code: "bc", Name: "British Columbia", IsActive: true}).Error)
	require.NoError(t, db.Create(&region.Region{Code: "ab", Name: "Alberta", IsActive: false}).Error)
	router := regionRouter(db)

	w := probe(t, router, "ab.transferportal.ca")
	assert.Contains(t, w.Body.String(), `"code":"bc"`)
}

func TestNoRegionResolvable(t *testing.T) {
	db := setupRegionTest(t)
	router := regionRouter(db)

	// Empty region table: requests go through but no region is attached and
	// region-requiring handlers must 404.
	w := probe(t, router, "bc.transferportal.ca")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":""`)
}
