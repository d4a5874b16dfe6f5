package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web/header.html
var headerHTML []byte

// GetHeader serves the shared header fragment injected into every page.
// GET /header.html
func GetHeader(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", headerHTML)
}
