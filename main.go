package main

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"
)

// App holds the shared dependencies for every handler.
type App struct {
	DB           *sqlx.DB
	SessionStore *sessions.CookieStore
	Config       *Config
	Templates    map[string]*template.Template

	authLimiter *RateLimiter
}

// path prepends the configured base path so the site can be mounted
// under a subdirectory of a shared host.
func (app *App) path(p string) string {
	return app.Config.BasePath + p
}

// NewApp wires the session store and templates around an open database
// handle. The handle is provided by the caller so tests can substitute
// an in-memory one.
func NewApp(config *Config, db *sqlx.DB) *App {
	store := sessions.NewCookieStore(config.SessionSecret)
	store.Options = &sessions.Options{
		Path:     config.BasePath + "/",
		MaxAge:   config.SessionMaxAge,
		HttpOnly: true,
		Secure:   config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}

	return &App{
		DB:           db,
		SessionStore: store,
		Config:       config,
		Templates:    loadTemplates(),
		authLimiter:  NewRateLimiter(10, 20),
	}
}

// Routes builds the full route table.
func (app *App) Routes() http.Handler {
	router := mux.NewRouter()
	router.Use(app.RecoveryMiddleware)
	router.Use(app.LoggingMiddleware)
	router.Use(app.SessionMiddleware)

	r := router
	if app.Config.BasePath != "" {
		r = router.PathPrefix(app.Config.BasePath).Subrouter()
	}

	r.HandleFunc("/", app.handleHome).Methods("GET")
	r.HandleFunc("/index", app.handleHome).Methods("GET")
	r.HandleFunc("/about", app.handleAbout).Methods("GET")

	r.HandleFunc("/login", app.RateLimitMiddleware(app.authLimiter, app.CSRFMiddleware(app.handleLogin))).Methods("GET", "POST")
	r.HandleFunc("/register", app.RateLimitMiddleware(app.authLimiter, app.CSRFMiddleware(app.handleRegister))).Methods("GET", "POST")
	r.HandleFunc("/logout", app.handleLogout).Methods("GET")

	r.HandleFunc("/account", app.RequireLogin(app.handleAccount)).Methods("GET")
	r.HandleFunc("/schedule", app.handleSchedule).Methods("GET", "POST")

	r.HandleFunc("/blog", app.handleBlog).Methods("GET")
	r.HandleFunc("/blog-post", app.handleBlogPost).Methods("GET")
	r.HandleFunc("/blog-create", app.RequireAdmin(app.CSRFMiddleware(app.handleBlogEditor))).Methods("GET", "POST")
	r.HandleFunc("/admin/toggle-post", app.RequireAdmin(app.CSRFMiddleware(app.handleTogglePost))).Methods("POST")

	fileServer := http.FileServer(http.Dir("./static"))
	r.PathPrefix("/static/").Handler(http.StripPrefix(app.path("/static/"), fileServer))

	return router
}

func main() {
	config, err := LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return
	}

	if err := InitializeLogger(config); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}
	defer AppLogger.Sync()

	db, err := openDB("mysql", config.DSN())
	if err != nil {
		AppLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	app := NewApp(config, db)

	if err := app.initDatabase(); err != nil {
		AppLogger.Fatalw("failed to initialize schema", "error", err)
	}

	stopCleanup := app.authLimiter.StartCleanupRoutine()
	defer stopCleanup()

	server := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      app.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	AppLogger.Infow("server starting", "port", config.Port, "base_path", app.Config.BasePath)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		AppLogger.Fatalw("server stopped", "error", err)
	}
}
