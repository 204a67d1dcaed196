package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/Harmonic/harmonic/config"
	"github.com/Harmonic/harmonic/internal/database"
	"github.com/Harmonic/harmonic/internal/domain"
	httpHandler "github.com/Harmonic/harmonic/internal/http"
	"github.com/Harmonic/harmonic/internal/http/middleware"
	"github.com/Harmonic/harmonic/internal/repository"
	"github.com/Harmonic/harmonic/internal/service"
	"github.com/Harmonic/harmonic/pkg/logger"
	"github.com/Harmonic/harmonic/pkg/mailer"
	"github.com/Harmonic/harmonic/pkg/ratelimiter"
	"github.com/Harmonic/harmonic/pkg/templates"
	"github.com/Harmonic/harmonic/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetSender() mailer.Sender

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitTracing() error
	InitDB() error
	InitMailer() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config     *config.Config
	logger     logger.Logger
	db         *sql.DB
	sender     mailer.Sender
	httpClient *http.Client

	// Repositories
	profileRepo       domain.ProfileRepository
	assessmentRepo    domain.AssessmentRepository
	questionRepo      domain.QuestionRepository
	responseRepo      domain.ResponseRepository
	harmonicStateRepo domain.HarmonicStateRepository

	// Services
	authProvider         *service.SupabaseAuthService
	notificationService  *service.NotificationService
	passwordResetService *service.PasswordResetService
	inviteService        *service.InviteService
	clientService        *service.ClientService
	assessmentService    *service.AssessmentService
	dashboardService     *service.DashboardService
	authHookService      *service.AuthEmailHookService
	resetLimiter         *ratelimiter.Limiter

	// stopDBStats ends ocsql connection pool stats recording
	stopDBStats func()

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithSender replaces the configured email transport
func WithSender(s mailer.Sender) AppOption {
	return func(a *App) {
		a.sender = s
	}
}

// WithHTTPClient sets the client used for the auth admin API and Resend
func WithHTTPClient(c *http.Client) AppOption {
	return func(a *App) {
		a.httpClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	if err := tracing.InitTracing(&a.config.Tracing, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return nil
}

// InitDB connects to Postgres and makes sure the schema exists
func (a *App) InitDB() error {
	// Skip if the database was injected
	if a.db != nil {
		return nil
	}

	a.logger.WithFields(map[string]interface{}{
		"host":        a.config.Database.Host,
		"dbname":      a.config.Database.DBName,
		"sslmode":     a.config.Database.SSLMode,
		"from_db_url": a.config.Database.URL != "",
	}).Info("Connecting to database")

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = tracing.RegisterSQLDriver(driverName)
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := database.Open(driverName, a.config.Database.DSN(), a.config.Environment)
	if err != nil {
		return err
	}

	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	if a.config.Tracing.Enabled {
		a.stopDBStats = ocsql.RecordStats(db, 5*time.Second)
	}

	a.db = db
	return nil
}

func (a *App) client() *http.Client {
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: 15 * time.Second}
		if a.config.Tracing.Enabled {
			a.httpClient = tracing.WrapHTTPClient(a.httpClient)
		}
	}
	return a.httpClient
}

// InitMailer selects the email transport
func (a *App) InitMailer() error {
	// Skip if sender already set (e.g., by mock)
	if a.sender != nil {
		return nil
	}

	sender, err := mailer.New(a.config.Email, a.client(), a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	a.sender = sender
	a.logger.WithField("provider", a.config.Email.Provider).Info("Mailer initialized")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.profileRepo = repository.NewProfileRepository(a.db)
	a.assessmentRepo = repository.NewAssessmentRepository(a.db)
	a.questionRepo = repository.NewQuestionRepository(a.db)
	a.responseRepo = repository.NewResponseRepository(a.db)
	a.harmonicStateRepo = repository.NewHarmonicStateRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	if a.sender == nil {
		return fmt.Errorf("mailer must be initialized before services")
	}

	a.authProvider = service.NewSupabaseAuthService(
		a.client(),
		a.config.Supabase.URL,
		a.config.Supabase.ServiceRoleKey,
		a.logger,
	)

	a.notificationService = service.NewNotificationService(
		templates.NewRenderer(),
		a.sender,
		a.config.Email.FromName,
		a.logger,
	)

	if a.config.RateLimit.PasswordResetMax > 0 {
		a.resetLimiter = ratelimiter.New(a.config.RateLimit.PasswordResetMax, a.config.RateLimit.PasswordResetWindow)
	}

	a.passwordResetService = service.NewPasswordResetService(
		a.profileRepo,
		a.authProvider,
		a.notificationService,
		a.resetLimiter,
		a.config.Email.PasswordResetURL,
		a.logger,
	)

	confirmer := service.NewProfileConfirmer(
		a.profileRepo,
		a.config.Invite.ProfileConfirmAttempts,
		a.config.Invite.ProfileConfirmBackoff,
		a.logger,
	)
	a.inviteService = service.NewInviteService(
		a.authProvider,
		a.profileRepo,
		confirmer,
		a.notificationService,
		a.config.AppURL+"/login",
		a.logger,
	)

	a.clientService = service.NewClientService(a.profileRepo, a.assessmentRepo, a.logger)
	a.assessmentService = service.NewAssessmentService(a.assessmentRepo, a.questionRepo, a.responseRepo, a.logger)
	a.dashboardService = service.NewDashboardService(a.profileRepo, a.assessmentRepo, a.logger)
	a.authHookService = service.NewAuthEmailHookService(
		a.config.Supabase.AuthEmailHookSecret,
		a.config.Supabase.URL,
		a.notificationService,
		a.logger,
	)

	return nil
}

// InitHandlers registers every route on a fresh mux
func (a *App) InitHandlers() error {
	a.mux = http.NewServeMux()

	jwtAuth := middleware.NewJWTAuth(a.config.Supabase.JWTSecret, a.logger)
	if a.config.Supabase.JWTSecret == "" {
		a.logger.Warn("SUPABASE_JWT_SECRET is not set, dashboard routes will reject every request")
	}

	httpHandler.NewRootHandler(a.config.Version).RegisterRoutes(a.mux)
	httpHandler.NewPasswordResetHandler(a.passwordResetService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewInviteHandler(a.inviteService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewClientHandler(a.clientService, jwtAuth, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewAssessmentHandler(a.assessmentService, jwtAuth, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewDashboardHandler(a.dashboardService, jwtAuth, a.logger).RegisterRoutes(a.mux)

	if a.config.Supabase.AuthEmailHookSecret != "" {
		httpHandler.NewAuthHookHandler(a.authHookService, a.logger).RegisterRoutes(a.mux)
	} else {
		a.logger.Info("AUTH_EMAIL_HOOK_SECRET is not set, auth email hook disabled")
	}

	return nil
}

// Handler returns the mux wrapped with the server-wide middleware
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = middleware.Recover(a.logger)(handler)
	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}
	return handler
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info("Server starting")

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})

	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	server := a.server
	a.serverMu.Unlock()

	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones up to the
// shutdown timeout and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources(ctx)
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithField("error", err.Error()).Warn("HTTP server shutdown did not complete")
		shutdownErr = err
	}

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
	}

	if err := a.cleanupResources(ctx); err != nil {
		a.logger.WithField("error", err.Error()).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

func (a *App) cleanupResources(ctx context.Context) error {
	if a.resetLimiter != nil {
		a.resetLimiter.Stop()
	}

	if a.db != nil {
		if a.stopDBStats != nil {
			a.stopDBStats()
		}

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart returns true once Start has created the server, false if
// ctx expires first
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting Harmonic API")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitMailer,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetSender() mailer.Sender {
	return a.sender
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

// GetShutdownContext is cancelled when Shutdown starts
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware rejects new requests once shutdown begins and
// tracks the in-flight ones
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
