package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"social-server/auth"
	"social-server/cache"
	"social-server/confs"
	"social-server/db"
	"social-server/events"
	"social-server/handlers"
	httpHandler "social-server/handlers/http"
	"social-server/handlers/middleware"
	"social-server/repositories"
	"social-server/services"
	"social-server/usecases"
	"social-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type usernameCache interface {
	cache.UsernameCache
	Purge()
	Stats() map[string]interface{}
}

type Server struct {
	app     *gin.Engine
	cfg     *confs.Config
	db      db.Database
	log     *zap.Logger
	manager *ws.Manager
	sweeper *services.CacheSweeper
	closers []func() error
}

// NewServer wires repositories, use cases and handlers onto a gin engine.
// Redis and NATS are used when configured; if they cannot be reached the
// server falls back to the in-memory cache and websocket-only delivery.
func NewServer(cfg *confs.Config, database db.Database, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		app:     gin.New(),
		cfg:     cfg,
		db:      database,
		log:     log,
		manager: ws.NewManager(),
	}
	s.app.Use(gin.Recovery(), middleware.RequestLogger(log), cors.New(s.corsConfig()))
	s.routes()
	return s
}

func (s *Server) corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = s.cfg.CORSOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return config
}

func (s *Server) allowWSOrigin(r *http.Request) bool {
	if len(s.cfg.CORSOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.cfg.CORSOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

func (s *Server) usernameCache() usernameCache {
	if s.cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(s.cfg.Redis.URL, s.cfg.Redis.CacheTTL, s.log)
		if err == nil {
			s.closers = append(s.closers, rc.Close)
			s.log.Info("using redis username cache")
			return rc
		}
		s.log.Warn("redis unavailable, using in-memory username cache", zap.Error(err))
	}
	return cache.NewMemoryCache(s.cfg.Redis.CacheTTL)
}

func (s *Server) relay() events.Publisher {
	if s.cfg.NatsURL == "" {
		return nil
	}
	np, err := events.ConnectNats(s.cfg.NatsURL)
	if err != nil {
		s.log.Warn("nats unavailable, events go to websockets only", zap.Error(err))
		return nil
	}
	s.closers = append(s.closers, np.Close)
	s.log.Info("publishing events to nats", zap.String("url", s.cfg.NatsURL))
	return np
}

func (s *Server) routes() {
	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	followRepo := repositories.NewFollowPgRepository(s.db)
	postRepo := repositories.NewPostPgRepository(s.db)
	dmRepo := repositories.NewDirectMessagePgRepository(s.db)

	names := s.usernameCache()
	s.sweeper = services.NewCacheSweeper(names, s.cfg.Redis.CacheTTL, s.log)
	notifier := services.NewNotifier(s.manager, s.relay(), s.log)

	// Initialize use cases
	resolver := usecases.NewNameResolver(userRepo, names)
	tokens := auth.NewJWTService(s.cfg.JWT.Secret, s.cfg.JWT.TTL)
	authUseCase := usecases.NewAuthUseCase(userRepo, tokens, resolver, s.log)
	followUseCase := usecases.NewFollowUseCase(followRepo, userRepo, notifier, s.log)
	postUseCase := usecases.NewPostUseCase(postRepo, userRepo, notifier, s.log)
	timelineUseCase := usecases.NewTimelineUseCase(postRepo, resolver)
	feedUseCase := usecases.NewFeedUseCase(followUseCase, postRepo, resolver)
	dmUseCase := usecases.NewDirectMessageUseCase(dmRepo, userRepo, notifier, s.log)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase, s.log)
	postHandler := httpHandler.NewPostHandler(postUseCase, timelineUseCase, feedUseCase, s.log)
	dmHandler := httpHandler.NewDirectMessageHandler(dmUseCase, s.log)
	followHandler := httpHandler.NewFollowHandler(followUseCase, s.log)
	wsHandler := handlers.NewWSHandler(s.manager, s.allowWSOrigin, s.log)
	cacheHandler := handlers.NewCacheHandler(s.sweeper)

	requireAuth := middleware.AuthMiddleware(authUseCase)
	limiter := middleware.NewRateLimiter(s.cfg.AuthRateLimit, s.cfg.AuthRateBurst)

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	register := func(r gin.IRouter) {
		// Auth routes
		authGroup := r.Group("/auth")
		{
			authGroup.POST("/register", limiter.Middleware(), authHandler.Register)
			authGroup.POST("/login", limiter.Middleware(), authHandler.Login)
			authGroup.GET("/validate", requireAuth, authHandler.Validate)
			authGroup.PUT("/edit-profile", requireAuth, authHandler.EditProfile)
			authGroup.DELETE("/delete-account", requireAuth, authHandler.DeleteAccount)
			authGroup.GET("/get-username/:id", requireAuth, authHandler.GetUsername)
		}

		// Post routes
		r.POST("/posts", requireAuth, postHandler.CreatePost)
		r.DELETE("/posts/:id", requireAuth, postHandler.DeletePost)
		r.GET("/thefeed/:userId", postHandler.GetFeed)

		// Direct message routes
		r.POST("/dm", requireAuth, dmHandler.Send)
		r.GET("/dm/:userId", requireAuth, dmHandler.Conversation)

		// Follow routes
		follow := r.Group("/follow", requireAuth)
		{
			follow.POST("", followHandler.Follow)
			follow.DELETE("", followHandler.Unfollow)
			follow.GET("", followHandler.GetFollows)
			follow.GET("/followers", followHandler.GetFollowers)
		}

		// User routes
		users := r.Group("/users")
		{
			users.GET("/search", requireAuth, authHandler.SearchUsers)
			users.GET("/:userId/timeline", postHandler.GetTimeline)
		}

		// Cache management endpoints
		cacheGroup := r.Group("/cache", requireAuth)
		{
			cacheGroup.GET("/stats", cacheHandler.GetCacheStats)
			cacheGroup.POST("/purge", cacheHandler.Purge)
		}

		// WebSocket
		r.GET("/ws", middleware.WebsocketAuth(authUseCase), wsHandler.Handle)
		r.GET("/ws/connected", requireAuth, wsHandler.Connected)
	}

	register(s.app)
	register(s.app.Group("/api/v1"))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.sweeper.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", s.cfg.Port),
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close releases the Redis and NATS connections, if any.
func (s *Server) Close() {
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.log.Warn("close failed", zap.Error(err))
		}
	}
	s.closers = nil
}
