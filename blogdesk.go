// Package blogdesk is a content desk for a retail blog: an in-memory blog
// store with search and filters, content analytics, and drafting through a
// language model, served as a JSON API with Echo.
//
// Callers may replace the HTML views through ViewFuncs and the generator,
// scorer and clock through Options; blogdesk handles the handlers,
// middleware, sessions and optional SQLite snapshot.
package blogdesk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogdesk/analytics"
	"github.com/eringen/blogdesk/generate"
)

// App is the central blogdesk application. It wires together the store,
// users, generator, handlers, middleware and views.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *Store
	Users     *UserDirectory
	Generator generate.Generator
	Metrics   *Metrics
	Views     ViewFuncs

	archive         *Archive
	loginLimiter    *RateLimiter
	generateLimiter *RateLimiter
	scorer          Scorer
	now             func() time.Time
	seedBlogs       []Blog
	seedUsers       []User
	customRoutes    []func(*App)
	staticDir       string
	initialized     bool
}

// New creates a new App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	views.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		now:       time.Now,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init builds the store, loads seed data and the archive, and registers
// middleware and routes. After Init, a.Echo is a ready http.Handler.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	lvl, _ := parseLogLevel(a.Config.LogLevel)
	a.Echo.Logger.SetLevel(lvl)

	if a.scorer == nil {
		a.scorer, _ = scorerByName(a.Config.Scoring)
	}
	a.Store = NewStore(a.scorer, a.now)

	users := a.seedUsers
	if users == nil {
		users = SeedUsers()
	}
	a.Users = NewUserDirectory(users)

	switch {
	case a.seedBlogs != nil:
		a.Store.Replace(a.seedBlogs)
	case a.Config.Seed:
		a.Store.Replace(SeedBlogs())
	}

	if a.Config.ArchivePath != "" {
		archive, err := OpenArchive(a.Config.ArchivePath)
		if err != nil {
			return err
		}
		a.archive = archive
		blogs, err := archive.Load(context.Background())
		if err != nil {
			return err
		}
		if len(blogs) > 0 {
			a.Store.Replace(blogs)
			a.Echo.Logger.Infof("loaded %d blogs from %s", len(blogs), a.Config.ArchivePath)
		}
	}

	if a.Generator == nil {
		g, err := generate.NewGenerator(a.Config.Generator)
		if err != nil {
			return fmt.Errorf("blogdesk: init generator: %w", err)
		}
		a.Generator = g
	}

	a.loginLimiter = NewRateLimiter(5, time.Minute)
	a.generateLimiter = NewRateLimiter(10, time.Minute)
	a.Metrics = NewMetrics(a.Store.Len)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

// Start initializes the App and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully and then calls Close.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo
	authed := a.RequireUser

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/metrics", a.Metrics.Handler())
	e.GET("/preview/:id/", a.handlePreview)

	// Session
	e.GET("/api/session", a.handleSession)
	e.POST("/api/login", a.handleLogin)
	e.POST("/api/logout", a.handleLogout)

	// Blogs
	e.GET("/api/blogs", a.handleListBlogs, authed)
	e.GET("/api/blogs/recent", a.handleRecentBlogs, authed)
	e.GET("/api/blogs/:id", a.handleGetBlog, authed)
	e.POST("/api/blogs", a.handleCreateBlog, authed)
	e.PATCH("/api/blogs/:id", a.handleUpdateBlog, authed)
	e.DELETE("/api/blogs/:id", a.handleDeleteBlog, authed)

	// Users
	e.GET("/api/users", a.handleListUsers, authed)
	e.GET("/api/users/:id", a.handleGetUser, authed)

	// Generation, dashboard, covers
	e.POST("/api/generate", a.handleGenerate, authed)
	e.GET("/api/dashboard", a.handleDashboard, authed)
	e.GET("/api/covers", a.handleCoverList, authed)
	e.POST("/api/covers", a.handleCoverUpload, authed)
	e.DELETE("/api/covers/:filename", a.handleCoverDelete, authed)

	// Analytics
	analyticsHandler := analytics.NewHandler(func() []analytics.Entry {
		return Entries(a.Store.List())
	}, a.now)
	analyticsHandler.RegisterRoutes(e, authed)
}

// Close saves the archive snapshot and releases resources. Call this when
// the app is shutting down.
func (a *App) Close() error {
	var errs []error
	if a.archive != nil {
		if err := a.archive.Save(context.Background(), a.Store.List()); err != nil {
			errs = append(errs, err)
		} else {
			a.Echo.Logger.Infof("saved %d blogs to %s", a.Store.Len(), a.Config.ArchivePath)
		}
		if err := a.archive.Close(); err != nil {
			errs = append(errs, err)
		}
		a.archive = nil
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.generateLimiter != nil {
		a.generateLimiter.Stop()
	}
	return errors.Join(errs...)
}

// Entries converts blogs to the analytics view of them.
func Entries(blogs []Blog) []analytics.Entry {
	entries := make([]analytics.Entry, len(blogs))
	for i, b := range blogs {
		entries[i] = analytics.Entry{
			ID:        b.ID,
			Title:     b.Title,
			Category:  string(b.Category),
			Status:    string(b.Status),
			Score:     b.Score,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		}
	}
	return entries
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blogdesk: required environment variable %s is not set", key)
	}
	return v
}
