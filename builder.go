package admingate

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kovrae/admingate/guard"
	"github.com/kovrae/admingate/identity"
	"github.com/kovrae/admingate/permission"
	"github.com/kovrae/admingate/session"
	"github.com/kovrae/admingate/storage"
)

// Builder assembles an [Engine]. Configure it during initialization, call
// [Builder.Build] once, then discard it.
type Builder struct {
	config Config

	storage        storage.Backend
	identityClient *identity.Client
	logger         *logrus.Logger
	strategy       permission.Strategy

	built bool
}

// New creates a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the full configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage sets the durable storage backend. Required.
func (b *Builder) WithStorage(backend storage.Backend) *Builder {
	b.storage = backend
	return b
}

// WithIdentityClient injects a ready Identity Service client, overriding
// [IdentityConfig]. The injected client is responsible for sending the
// session's bearer token.
func (b *Builder) WithIdentityClient(client *identity.Client) *Builder {
	b.identityClient = client
	return b
}

// WithLogger replaces the default logger built from [LoggingConfig].
func (b *Builder) WithLogger(logger *logrus.Logger) *Builder {
	b.logger = logger
	return b
}

// WithStrategy injects a custom permission strategy, overriding
// [PermissionConfig]. The admin bypass still applies on top of it.
func (b *Builder) WithStrategy(s permission.Strategy) *Builder {
	b.strategy = s
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires the components, and hydrates the
// session from durable storage. Hydration is a storage read only — no
// network call is made; callers revalidate via [Engine.FetchUserInfo] when
// they choose to.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.storage == nil {
		return nil, errors.New("storage backend required")
	}
	if b.identityClient == nil && cfg.Identity.BaseURL == "" {
		return nil, errors.New("identity base URL or client required")
	}

	logger := b.logger
	if logger == nil {
		logger = newLogger(cfg.Logging)
	}

	metrics := NewMetrics(cfg.Metrics)

	store := session.NewStore(
		b.storage,
		session.Keys{
			AccessToken:  cfg.Storage.AccessTokenKey,
			RefreshToken: cfg.Storage.RefreshTokenKey,
			User:         cfg.Storage.UserKey,
		},
		session.Hooks{
			Warn: logger.Warnf,
			StorageFailure: func(string, error) {
				metrics.Inc(MetricStorageFailure)
			},
		},
	)

	client := b.identityClient
	if client == nil {
		client = identity.NewClient(
			cfg.Identity.BaseURL,
			store.AccessToken,
			identity.WithHTTPClient(&http.Client{Timeout: cfg.Identity.Timeout}),
		)
	}

	strategy := b.strategy
	if strategy == nil {
		switch cfg.Permission.Strategy {
		case StrategyRoles:
			strategy = permission.NewRoles()
		default:
			strategy = permission.DefaultTypeTable()
		}
	}

	routes, err := guard.NewTable(routeTableConfig(cfg.Routes))
	if err != nil {
		return nil, err
	}

	store.Hydrate(context.Background())

	b.built = true

	return &Engine{
		config:   cfg,
		store:    store,
		client:   client,
		strategy: strategy,
		routes:   routes,
		metrics:  metrics,
		log:      logger,
	}, nil
}

func routeTableConfig(rc RoutesConfig) guard.TableConfig {
	dests := make([]guard.Destination, 0, len(rc.AdminOnlyPaths)+len(rc.AuthenticatedPaths))
	for _, p := range rc.AdminOnlyPaths {
		dests = append(dests, guard.Destination{Path: p, RequiresAuth: true, AdminOnly: true})
	}
	for _, p := range rc.AuthenticatedPaths {
		dests = append(dests, guard.Destination{Path: p, RequiresAuth: true})
	}
	return guard.TableConfig{
		LoginPath:     rc.LoginPath,
		AdminHomePath: rc.AdminHomePath,
		FallbackPath:  rc.FallbackPath,
		Destinations:  dests,
	}
}
