package dto

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// CachePolicy is the advertised cache lifetime of one operation.
type CachePolicy time.Duration

// Cache lifetimes per operation. Genres are reference data and change rarely.
const (
	CacheGenres  = CachePolicy(24 * time.Hour)
	CacheDetail  = CachePolicy(time.Hour)
	CachePopular = CachePolicy(time.Hour)
	CacheSearch  = CachePolicy(time.Hour)
)

// Header renders the Cache-Control value for shared and private caches.
func (p CachePolicy) Header() string {
	secs := int64(time.Duration(p) / time.Second)
	return fmt.Sprintf("public, max-age=%d, s-maxage=%d", secs, secs)
}

// Apply sets the Cache-Control header on a successful response.
func (p CachePolicy) Apply(c *gin.Context) {
	c.Header("Cache-Control", p.Header())
}
