package main

import (
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldengirlWebsite/internal/models"
)

func TestLoadTemplatesCoversEveryPage(t *testing.T) {
	templates := loadTemplates()

	for name := range pageTemplates {
		tmpl, ok := templates[name]
		require.True(t, ok, "missing compiled template %q", name)
		assert.NotNil(t, tmpl.Lookup("layout"), "%q must embed the shared layout", name)
		assert.NotNil(t, tmpl.Lookup("content"), "%q must define its content block", name)
	}
}

func TestFormatDate(t *testing.T) {
	funcs := templateFuncs()
	format := funcs["formatDate"].(func(time.Time) string)

	assert.Equal(t, "March 5, 2024", format(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)))
}

func TestTrustedHTMLPassesMarkupThrough(t *testing.T) {
	funcs := templateFuncs()
	trusted := funcs["trustedHTML"].(func(models.TrustedHTML) template.HTML)

	assert.Equal(t, template.HTML("<p>hi</p>"), trusted(models.TrustedHTML("<p>hi</p>")))
}
