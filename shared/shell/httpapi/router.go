package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

const (
	headerRequestID = "X-Request-ID"
	requestIDKey    = "request_id"

	logMsgRequestServed = "http request served"
	logMsgRequestFailed = "http request failed"

	logAttrMethod     = "method"
	logAttrPath       = "path"
	logAttrStatus     = "status"
	logAttrDurationMS = "duration_ms"
	logAttrRequestID  = "request_id"
	logAttrError      = "error"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type server struct {
	handlers    Handlers
	pinger      Pinger
	logger      *slog.Logger
	now         func() time.Time
	corsOrigins []string
	otelService string
}

// Option configures the router.
type Option func(*server)

// WithLogger sets the logger for access and failure logs. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *server) {
		s.logger = logger
	}
}

// WithClock sets the clock that stamps every command and query.
func WithClock(now func() time.Time) Option {
	return func(s *server) {
		s.now = now
	}
}

// WithCORSOrigins enables CORS for the given origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *server) {
		s.corsOrigins = origins
	}
}

// WithOTelMiddleware starts a server span per request on the global TracerProvider.
func WithOTelMiddleware(serviceName string) Option {
	return func(s *server) {
		s.otelService = serviceName
	}
}

// NewRouter builds the gin engine with all routes.
func NewRouter(handlers Handlers, pinger Pinger, opts ...Option) *gin.Engine {
	s := &server{
		handlers: handlers,
		pinger:   pinger,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if s.otelService != "" {
		r.Use(otelgin.Middleware(s.otelService))
	}

	r.Use(s.requestID())
	r.Use(s.accessLog())

	if len(s.corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.corsOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", headerActorRole, headerActorID, headerRequestID},
			ExposeHeaders: []string{headerRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/health", s.health)

	api := r.Group("/api")
	s.catalogRoutes(api)
	s.membershipRoutes(api)
	s.circulationRoutes(api)
	s.reportRoutes(api)

	return r
}

// requestID takes the correlation id from X-Request-ID or starts a new one.
func (s *server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID, err := uuid.Parse(c.GetHeader(headerRequestID))
		if err != nil {
			correlationID = uuid.New()
		}

		c.Set(requestIDKey, correlationID.String())
		c.Header(headerRequestID, correlationID.String())
		c.Request = c.Request.WithContext(shell.WithCorrelationID(c.Request.Context(), correlationID))

		c.Next()
	}
}

func (s *server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		s.logger.InfoContext(c.Request.Context(), logMsgRequestServed,
			logAttrMethod, c.Request.Method,
			logAttrPath, c.FullPath(),
			logAttrStatus, c.Writer.Status(),
			logAttrDurationMS, shell.ToMilliseconds(time.Since(start)),
			logAttrRequestID, c.GetString(requestIDKey),
		)
	}
}

func (s *server) health(c *gin.Context) {
	if err := s.pinger.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "UP", "time": s.now().UTC()})
}

func (s *server) fail(c *gin.Context, err error) {
	abortWithError(c, s.logger, err)
}
