package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:    "secure-secret-at-least-32-chars-long",
		Port:         "8470",
		DBDriver:     "postgres",
		DBPassword:   "secure-password",
		DBSSLMode:    "require",
		Env:          "development",
		RateLimitRPM: 120,
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Missing Port", func(c *Config) { c.Port = "" }},
		{"Missing JWT Secret", func(c *Config) { c.JWTSecret = "" }},
		{"Unsupported Driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"Zero Rate Limit", func(c *Config) { c.RateLimitRPM = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestValidateProductionHardening(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Default JWT Secret", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }, true},
		{"Short JWT Secret", func(c *Config) { c.JWTSecret = "too-short" }, true},
		{"SQLite Driver", func(c *Config) { c.DBDriver = "sqlite" }, true},
		{"Default DB Password", func(c *Config) { c.DBPassword = "password" }, true},
		{"Empty DB Password", func(c *Config) { c.DBPassword = "" }, true},
		{"Hardened Config", func(c *Config) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = "production"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDevelopmentAllowsDefaults(t *testing.T) {
	c := validConfig()
	c.JWTSecret = "short-dev-secret"
	c.DBDriver = "sqlite"
	c.DBPassword = ""
	assert.NoError(t, c.Validate())
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8470", c.Port)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, 120, c.RateLimitRPM)
	assert.True(t, c.RateLimitOpen)
	assert.False(t, c.TracingEnabled)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DB_DRIVER")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("PORT", "9999")
	os.Setenv("DB_DRIVER", "sqlite")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
}
