package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/movie-gateway/internal/platform/config"
)

// CORS returns middleware that allows cross-origin GET requests.
// Preflight requests are answered with 204 and never reach a handler.
// With no configured origins any origin is allowed.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{
			"Origin",
			"Accept",
			"Content-Type",
			HeaderRequestID,
			HeaderCorrelationID,
		},
		ExposeHeaders: []string{
			"Retry-After",
			"Cache-Control",
			HeaderRequestID,
			HeaderCorrelationID,
		},
		MaxAge: cfg.MaxAge,
	}

	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(corsCfg)
}
