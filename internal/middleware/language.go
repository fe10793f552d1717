package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxLocale = "locale"

// Language resolves the response locale from Accept-Language.
// Spanish is the storefront default; English when the header asks for it.
func Language(c *gin.Context) {
	locale := "es"
	if strings.HasPrefix(strings.ToLower(c.GetHeader("Accept-Language")), "en") {
		locale = "en"
	}
	c.Set(CtxLocale, locale)
	c.Next()
}

// Locale returns the request locale, defaulting to Spanish.
func Locale(c *gin.Context) string {
	if locale := c.GetString(CtxLocale); locale != "" {
		return locale
	}
	return "es"
}
