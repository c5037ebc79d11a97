package ui

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed guide.md
var guideSource []byte

// handleGuide renders the dashboard-design guide that ships with the app
func (s *Server) handleGuide(c *gin.Context) {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	html := markdown.ToHTML(guideSource, p, renderer)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
