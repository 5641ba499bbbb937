package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/eighthwonder/eighthwonder/internal/platform/assets/imagecdn"
	"github.com/eighthwonder/eighthwonder/internal/platform/timeouts"
	"github.com/eighthwonder/eighthwonder/internal/services/web/app"
	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/guard"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/wow"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/sessioncookie"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
	"github.com/eighthwonder/eighthwonder/internal/services/web/session"
	"github.com/eighthwonder/eighthwonder/internal/services/web/storage"
	redisstore "github.com/eighthwonder/eighthwonder/internal/services/web/storage/redis"
	sqlitestore "github.com/eighthwonder/eighthwonder/internal/services/web/storage/sqlite"
)

const (
	defaultSessionTTL    = 24 * time.Hour
	defaultSweepInterval = time.Minute
	defaultPurgeInterval = 10 * time.Minute
)

// Config defines the inputs for the web server.
type Config struct {
	// HTTPAddr is the listen address.
	HTTPAddr string
	// BackendURL is the guild backend root shared with the browser.
	BackendURL string
	// BackendTimeout caps each backend call.
	BackendTimeout time.Duration
	// CDNBaseURL overrides the image CDN root.
	CDNBaseURL string
	// CachePath locates the sqlite response cache. Ignored when RedisAddr is set.
	CachePath string
	// RedisAddr selects a shared redis response cache.
	RedisAddr string
	// SessionSecret signs the visitor session cookie.
	SessionSecret string
	// SessionTTL is the cookie lifetime and the workspace idle limit.
	SessionTTL time.Duration
	// SessionSweepInterval controls idle workspace eviction.
	SessionSweepInterval time.Duration
	// CachePurgeInterval controls expired sqlite row removal.
	CachePurgeInterval time.Duration
	// CacheTTLs bounds cached game data.
	CacheTTLs wow.CacheTTLs
}

// expiryPurger is implemented by stores that keep expired rows until swept.
type expiryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Server hosts the web HTTP surface.
type Server struct {
	httpAddr      string
	httpServer    *http.Server
	registry      *session.Registry
	store         storage.Store
	sweepInterval time.Duration
	purgeInterval time.Duration
}

// NewServer builds a configured web server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = defaultSessionTTL
	}
	if config.SessionSweepInterval <= 0 {
		config.SessionSweepInterval = defaultSweepInterval
	}
	if config.CachePurgeInterval <= 0 {
		config.CachePurgeInterval = defaultPurgeInterval
	}
	if config.CacheTTLs == (wow.CacheTTLs{}) {
		config.CacheTTLs = wow.DefaultCacheTTLs()
	}

	client, err := backend.NewClient(config.BackendURL, backend.WithTimeout(config.BackendTimeout))
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	users := backend.NewUserService(client)
	registry, err := session.NewRegistry(users, config.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("init session registry: %w", err)
	}
	codec, err := sessioncookie.NewCodec(config.SessionSecret, config.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("init session cookie: %w", err)
	}
	store, err := openStore(ctx, config)
	if err != nil {
		return nil, err
	}

	deps := modules.Dependencies{
		BackendURL:       client.BaseURL(),
		BackendTransport: otelhttp.NewTransport(http.DefaultTransport),
		CDN:              imagecdn.New(config.CDNBaseURL),
		Users:            users,
		Guilds:           backend.NewGuildService(client),
		Events:           backend.NewEventService(client),
		Wow:              backend.NewWowService(client),
		Cache:            storage.NewCache(store),
		CacheTTLs:        config.CacheTTLs,
		Sessions:         registry,
		Profiles:         workspaceProfile,
	}
	root, err := app.Compose(app.ComposeInput{
		Guard:            guard.RequireAuthenticated(users, routepath.Root),
		PublicModules:    modules.DefaultPublicModules(deps),
		ProtectedModules: modules.DefaultProtectedModules(deps),
	})
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("compose web routes: %w", err)
	}

	handler := httpx.Chain(root,
		httpx.RequestID(),
		httpx.LogRequests(),
		httpx.RecoverPanic(),
		session.Middleware(registry, codec),
	)

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           otelhttp.NewHandler(handler, "web"),
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		registry:      registry,
		store:         store,
		sweepInterval: config.SessionSweepInterval,
		purgeInterval: config.CachePurgeInterval,
	}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return http.NotFoundHandler()
	}
	return s.httpServer.Handler
}

// workspaceProfile resolves the visitor's profile through their workspace.
func workspaceProfile(r *http.Request) (*backend.UserProfile, error) {
	ws, err := session.Require(r)
	if err != nil {
		return nil, err
	}
	return ws.Profile(r.Context())
}

// openStore picks the response cache backend. With neither redis nor a
// sqlite path configured, responses are not cached.
func openStore(ctx context.Context, config Config) (storage.Store, error) {
	if addr := strings.TrimSpace(config.RedisAddr); addr != "" {
		store, err := redisstore.Open(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return store, nil
	}
	if path := strings.TrimSpace(config.CachePath); path != "" {
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return store, nil
	}
	log.Info("web response cache disabled")
	return nil, nil
}

func closeStore(store storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.WithError(err).Warn("close web cache store")
	}
}

// ListenAndServe serves HTTP traffic until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	background, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	go s.registry.Run(background, s.sweepInterval)
	if purger, ok := s.store.(expiryPurger); ok {
		go runPurge(background, purger, s.purgeInterval)
	}

	serveErr := make(chan error, 1)
	log.WithField("addr", s.httpAddr).Info("web listening")
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		err := s.httpServer.Shutdown(shutdownCtx)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server-owned resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	closeStore(s.store)
	s.store = nil
}

func runPurge(ctx context.Context, purger expiryPurger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil {
				log.WithError(err).Warn("purge expired cache entries")
				continue
			}
			if removed > 0 {
				log.WithField("removed", removed).Debug("purged expired cache entries")
			}
		}
	}
}
