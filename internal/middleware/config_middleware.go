package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rmorales/eventhub/config"
)

// ConfigMiddleware injects the loaded settings into the request scope
// so handlers can reach the JWT secret and token lifetime.
func ConfigMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	}
}

func GetConfig(c *gin.Context) *config.Config {
	cfg, exists := c.Get("config")
	if !exists {
		return nil
	}
	return cfg.(*config.Config)
}
