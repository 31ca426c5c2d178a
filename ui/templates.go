package ui

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data any) {
	// Render to a buffer first so a failing template never sends a partial page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[UI] Template error for %s: %v", templateName, err)
		log.Printf("[UI] Template data type: %T", data)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	content := buf.String()
	if !strings.Contains(content, "</html>") {
		log.Printf("[UI] WARNING: rendered template %s appears truncated - missing </html> tag", templateName)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("[UI] Error writing template response: %v", err)
	}
}

// formatCell prints a table cell the way the dashboard tables show it
func formatCell(v any) string {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return "—"
		}
		return fmt.Sprintf("%.3f", t)
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
