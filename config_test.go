package polysite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/polything/polysite/content"
)

func TestWithDefaults(t *testing.T) {
	cfg := SiteConfig{Name: "Acme", CacheTTL: time.Second}.WithDefaults()

	assert.Equal(t, "Acme", cfg.Name)
	assert.Equal(t, "https://polything.co.uk", cfg.URL)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/content.db", cfg.DatabasePath)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, content.DefaultServiceSlugs, cfg.ServiceSlugs)
	assert.Equal(t, time.Second, cfg.CacheTTL)
}

func TestCollectionsApplyServiceSlugs(t *testing.T) {
	cfg := SiteConfig{ServiceSlugs: []string{"seo-audit"}}

	services, ok := cfg.Collection("services")
	assert.True(t, ok)
	assert.Equal(t, []string{"seo-audit"}, services.Filter)

	pages, ok := cfg.Collection("pages")
	assert.True(t, ok)
	assert.Nil(t, pages.Filter)

	_, ok = cfg.Collection("widgets")
	assert.False(t, ok)

	// The package-level collection is untouched.
	assert.Equal(t, content.DefaultServiceSlugs, content.Services.Filter)
}
