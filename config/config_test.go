package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("EMAIL_DOMAIN", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg := LoadConfig()
	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, "@rtu.ac.in", cfg.EmailDomain)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://campusmart.example , http://localhost:5173")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://campusmart.example", "http://localhost:5173"}, cfg.CORSAllowOrigins)
}
