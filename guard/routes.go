package guard

import (
	"errors"
	"sort"
)

// Destination is a statically declared protected resource. Destinations are
// configuration: the table never changes after it loads.
type Destination struct {
	Path string
	// RequiresAuth defaults to true; only destinations declared with
	// RequiresAuth=false (the login page) are reachable logged out.
	RequiresAuth bool
	// AdminOnly marks membership in the admin-only destination set.
	AdminOnly bool
}

// Table is the static destination classification plus the three special
// paths every decision pivots on.
type Table struct {
	login     string
	adminHome string
	fallback  string
	dests     map[string]Destination
}

// TableConfig declares a route table. Paths not listed in Destinations are
// treated as requiring auth and not admin-only, mirroring a catch-all
// authenticated layout route.
type TableConfig struct {
	LoginPath     string
	AdminHomePath string
	FallbackPath  string
	Destinations  []Destination
}

// NewTable builds a frozen route table.
func NewTable(cfg TableConfig) (*Table, error) {
	if cfg.LoginPath == "" || cfg.AdminHomePath == "" || cfg.FallbackPath == "" {
		return nil, errors.New("guard: login, admin home, and fallback paths are required")
	}
	if cfg.AdminHomePath == cfg.LoginPath || cfg.FallbackPath == cfg.LoginPath {
		return nil, errors.New("guard: redirect targets cannot be the login path")
	}

	t := &Table{
		login:     cfg.LoginPath,
		adminHome: cfg.AdminHomePath,
		fallback:  cfg.FallbackPath,
		dests:     make(map[string]Destination, len(cfg.Destinations)+1),
	}
	for _, d := range cfg.Destinations {
		if d.Path == "" {
			return nil, errors.New("guard: destination path cannot be empty")
		}
		t.dests[d.Path] = d
	}
	// The login destination is public by definition.
	t.dests[cfg.LoginPath] = Destination{Path: cfg.LoginPath, RequiresAuth: false}
	return t, nil
}

// DefaultTable returns the admin console's route table: /login public,
// /shares as the non-admin landing, and the admin-only set routed to
// /dashboard.
func DefaultTable() *Table {
	t, err := NewTable(TableConfig{
		LoginPath:     "/login",
		AdminHomePath: "/dashboard",
		FallbackPath:  "/shares",
		Destinations: []Destination{
			{Path: "/dashboard", RequiresAuth: true, AdminOnly: true},
			{Path: "/users", RequiresAuth: true, AdminOnly: true},
			{Path: "/roles", RequiresAuth: true, AdminOnly: true},
			{Path: "/versions", RequiresAuth: true, AdminOnly: true},
			{Path: "/announcements", RequiresAuth: true, AdminOnly: true},
			{Path: "/configs", RequiresAuth: true, AdminOnly: true},
			{Path: "/shares", RequiresAuth: true},
		},
	})
	if err != nil {
		panic(err) // static table, unreachable
	}
	return t
}

// Destination returns the classification for path. Unknown paths fall back
// to an authenticated, non-admin destination.
func (t *Table) Destination(path string) Destination {
	if d, ok := t.dests[path]; ok {
		return d
	}
	return Destination{Path: path, RequiresAuth: true}
}

// LoginPath returns the login destination.
func (t *Table) LoginPath() string { return t.login }

// AdminHomePath returns the admin landing destination.
func (t *Table) AdminHomePath() string { return t.adminHome }

// FallbackPath returns the non-admin landing destination.
func (t *Table) FallbackPath() string { return t.fallback }

// Paths returns every declared destination path in sorted order.
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.dests))
	for p := range t.dests {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
