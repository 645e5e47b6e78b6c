package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin matches origins one subdomain level below a fixed suffix,
// e.g. "https://*.amble.pages.dev" matches "https://abc123.amble.pages.dev"
// but not "https://a.b.amble.pages.dev".
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin parses a pattern like "https://*.example.com".
// Returns nil for exact origins and malformed patterns: the scheme is
// required, the wildcard must be the entire leftmost label, and at least
// two domain labels must follow it.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	host := pattern[len(scheme):]
	if !strings.HasPrefix(host, "*.") {
		return nil
	}

	suffix := host[1:] // keep the leading dot
	if strings.Contains(suffix, "*") {
		return nil
	}
	if strings.Count(suffix, ".") < 2 {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := origin[len(w.scheme):]
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	label := host[:len(host)-len(w.suffix)]
	return label != "" && !strings.Contains(label, ".")
}

// CORS middleware to handle cross-origin requests.
// Reads CORS_ALLOWED_ORIGINS environment variable to restrict origins;
// entries may be exact origins or wildcard patterns like
// "https://*.example.com". If not set, defaults to "*" (allow all origins).
func CORS() gin.HandlerFunc {
	allowedOriginsStr := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := allowedOriginsStr == ""

	var exactOrigins []string
	var wildcards []*wildcardOrigin
	if !allowAll {
		for _, entry := range strings.Split(allowedOriginsStr, ",") {
			entry = strings.TrimSpace(entry)
			if wildcard := parseWildcardOrigin(entry); wildcard != nil {
				wildcards = append(wildcards, wildcard)
			} else {
				exactOrigins = append(exactOrigins, entry)
			}
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			allowed := false
			for _, allowedOrigin := range exactOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
			if !allowed {
				for _, wildcard := range wildcards {
					if wildcard.matches(origin) {
						allowed = true
						break
					}
				}
			}

			if allowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			} else if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(403)
				return
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
