package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seqcls/verdict/internal/adapter/http/handler"
	"github.com/seqcls/verdict/internal/adapter/http/middleware"
	"github.com/seqcls/verdict/internal/infrastructure/metrics"
	"github.com/seqcls/verdict/internal/usecase"
)

// Options configures the router
type Options struct {
	StrictErrors bool
}

// Setup creates and configures the Gin router
func Setup(inferenceUC usecase.InferenceUsecase, m *metrics.Metrics, logger *zap.Logger, opts Options) *gin.Engine {
	router := gin.New()

	// POST /predict and /predict/ are both routed; a redirect would drop the body.
	router.RedirectTrailingSlash = false

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(m))

	// Health endpoints
	healthHandler := handler.NewHealthHandler(inferenceUC)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Inference routes
	inferenceHandler := handler.NewInferenceHandler(inferenceUC, opts.StrictErrors)
	router.GET("/", inferenceHandler.Root)
	for _, path := range []string{"/predict", "/predict/"} {
		router.POST(path, inferenceHandler.Predict)
	}
	for _, path := range []string{"/echo", "/echo/"} {
		router.POST(path, inferenceHandler.Echo)
	}

	return router
}
