package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Paths probed by vulnerability scanners. None of them overlap with the
// api/ routes this service exposes.
var scannerPaths = []string{
	".env", "php", "mysql", "admin", "cgi-bin", "wp-login.php",
	"wp-admin", "xmlrpc.php", "config.php", "passwd", "shadow",
	"cmd.exe", "bin/bash", "bin/sh", "shell", "actuator", "console",
	"manager/html", "login.do", "favicon.ico",
}

func BlockBadActorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestPath := c.Request.URL.Path

		for _, path := range scannerPaths {
			if strings.Contains(requestPath, path) {
				c.JSON(403, gin.H{"error": "Forbidden"})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
