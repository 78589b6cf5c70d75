package admingate

import (
	"errors"
	"strings"
	"time"
)

// Config defines the composition-time settings of an [Engine]. Configure
// once, then treat as immutable; Build clones it.
type Config struct {
	Identity   IdentityConfig
	Storage    StorageConfig
	Routes     RoutesConfig
	Permission PermissionConfig
	Metrics    MetricsConfig
	Logging    LoggingConfig
}

/*
====================================
IDENTITY CONFIG
====================================
*/

// IdentityConfig locates the external Identity Service.
type IdentityConfig struct {
	// BaseURL of the Identity Service, e.g. "https://console.example.com/api".
	// Required unless the builder injects a ready client.
	BaseURL string
	// Timeout for each identity request. Transport-level retry and pooling
	// policy belong to the HTTP client, not this core.
	Timeout time.Duration
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig names the three durable-storage entries.
type StorageConfig struct {
	AccessTokenKey  string
	RefreshTokenKey string
	UserKey         string
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig declares the static destination table. Paths not listed
// anywhere are treated as requiring auth and not admin-only.
type RoutesConfig struct {
	// LoginPath is the only destination reachable logged out.
	LoginPath string
	// AdminHomePath is where an authenticated admin lands when hitting the
	// login page.
	AdminHomePath string
	// FallbackPath is the non-admin landing destination, distinct from the
	// admin home.
	FallbackPath string
	// AdminOnlyPaths is the static admin-only destination set.
	AdminOnlyPaths []string
	// AuthenticatedPaths lists additional known destinations that require
	// auth without being admin-only.
	AuthenticatedPaths []string
}

/*
====================================
PERMISSION CONFIG
====================================
*/

// PermissionConfig selects the permission strategy.
type PermissionConfig struct {
	Strategy StrategyKind
}

/*
====================================
LOGGING CONFIG
====================================
*/

// LoggingConfig controls the engine's structured logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error". Default "warn".
	Level string
	// Format is "json" (default) or "text".
	Format string
}

// DefaultConfig returns the admin console defaults: the original storage
// key names, the /login–/dashboard–/shares route topology, the type-based
// permission strategy, metrics on, and warn-level JSON logging.
func DefaultConfig() Config {
	return Config{
		Identity: IdentityConfig{
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			AccessTokenKey:  "admin_token",
			RefreshTokenKey: "admin_refresh_token",
			UserKey:         "admin_user",
		},
		Routes: RoutesConfig{
			LoginPath:     "/login",
			AdminHomePath: "/dashboard",
			FallbackPath:  "/shares",
			AdminOnlyPaths: []string{
				"/dashboard", "/users", "/roles", "/versions",
				"/announcements", "/configs",
			},
			AuthenticatedPaths: []string{"/shares"},
		},
		Permission: PermissionConfig{
			Strategy: StrategyTypeTable,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
	}
}

// Validate checks internal consistency. The identity base URL is validated
// by Build, which knows whether a ready client was injected instead.
func (c *Config) Validate() error {
	if c.Identity.Timeout < 0 {
		return errors.New("identity timeout cannot be negative")
	}
	if c.Storage.AccessTokenKey == "" || c.Storage.RefreshTokenKey == "" || c.Storage.UserKey == "" {
		return errors.New("all three storage keys are required")
	}
	if c.Storage.AccessTokenKey == c.Storage.RefreshTokenKey ||
		c.Storage.AccessTokenKey == c.Storage.UserKey ||
		c.Storage.RefreshTokenKey == c.Storage.UserKey {
		return errors.New("storage keys must be distinct")
	}
	if c.Routes.LoginPath == "" || c.Routes.AdminHomePath == "" || c.Routes.FallbackPath == "" {
		return errors.New("login, admin home, and fallback paths are required")
	}
	switch c.Permission.Strategy {
	case StrategyTypeTable, StrategyRoles:
	case "":
		return errors.New("permission strategy is required")
	default:
		return errors.New("unknown permission strategy " + string(c.Permission.Strategy))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("unknown logging level " + c.Logging.Level)
	}
	return nil
}

func cloneConfig(c Config) Config {
	out := c
	out.Routes.AdminOnlyPaths = append([]string(nil), c.Routes.AdminOnlyPaths...)
	out.Routes.AuthenticatedPaths = append([]string(nil), c.Routes.AuthenticatedPaths...)
	return out
}
