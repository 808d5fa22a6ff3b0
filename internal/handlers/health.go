package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samaj-network/app-directory/internal/config"
	"github.com/samaj-network/app-directory/internal/observability"
	"github.com/samaj-network/app-directory/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// HealthResponse reports per-dependency health
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Checks the API and its dependencies (MongoDB, Redis and object storage). Returns per-service status.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "All services are healthy"
// @Failure 503 {object} HealthResponse "One or more services are unavailable"
// @Router /v1/health [get]
func HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	_, mongoSpan := utils.TraceExternalService(ctx, "mongodb", "ping")
	if err := config.MongoDB.Client().Ping(ctx, nil); err != nil {
		utils.RecordErrorInSpan(mongoSpan, err, nil)
		health.Status = "unhealthy"
		health.Services["mongodb"] = "unhealthy"
	} else {
		health.Services["mongodb"] = "healthy"
	}
	mongoSpan.End()

	_, redisSpan := utils.TraceExternalService(ctx, "redis", "ping")
	if err := config.Redis.Ping(ctx).Err(); err != nil {
		utils.RecordErrorInSpan(redisSpan, err, nil)
		health.Status = "unhealthy"
		health.Services["redis"] = "unhealthy"
	} else {
		health.Services["redis"] = "healthy"
	}
	redisSpan.End()

	_, storageSpan := utils.TraceExternalService(ctx, "object_storage", "bucket_exists")
	if _, err := config.Minio.BucketExists(ctx, config.AppConfig.PhotoBucket); err != nil {
		utils.RecordErrorInSpan(storageSpan, err, nil)
		health.Status = "unhealthy"
		health.Services["object_storage"] = "unhealthy"
	} else {
		health.Services["object_storage"] = "healthy"
	}
	storageSpan.End()

	if health.Status != "healthy" {
		observability.Logger().Warn("health check degraded",
			zap.Any("services", health.Services))
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}
