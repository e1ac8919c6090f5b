package health

import (
	"context"
	"encoding/json"
	"time"

	"campbnb-backend/internal/middleware"
	"campbnb-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers serves liveness plus Redis-backed request stats.
type Handlers struct {
	Rdb      *redis.Client
	AdminKey string
}

// Health GET /health — liveness only, no dependencies touched.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Stats is the /health/json body.
type Stats struct {
	Status        string                 `json:"status"`
	UptimeSeconds int64                  `json:"uptimeSeconds"`
	Requests      int64                  `json:"requests"`
	Errors        int64                  `json:"errors"`
	AvgResponseMs float64                `json:"avgResponseMs"`
	LastRequest   map[string]interface{} `json:"lastRequest,omitempty"`
}

// JSON GET /health/json — aggregated request counters from Redis.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return response.Error(c, "Health stats unavailable", fiber.StatusServiceUnavailable)
	}
	ctx := context.Background()

	reqTotal, _ := h.Rdb.Get(ctx, middleware.KeyReqTotal).Int64()
	reqErrors, _ := h.Rdb.Get(ctx, middleware.KeyReqErrors).Int64()
	resTime, _ := h.Rdb.Get(ctx, middleware.KeyResTime).Float64()
	resCount, _ := h.Rdb.Get(ctx, middleware.KeyResCount).Int64()

	start, err := h.Rdb.Get(ctx, middleware.KeyStartTime).Int64()
	if err != nil {
		start = time.Now().Unix()
		_ = h.Rdb.Set(ctx, middleware.KeyStartTime, start, 0).Err()
	}

	avg := 0.0
	if resCount > 0 {
		avg = resTime / float64(resCount)
	}

	stats := Stats{
		Status:        "ok",
		UptimeSeconds: time.Now().Unix() - start,
		Requests:      reqTotal,
		Errors:        reqErrors,
		AvgResponseMs: avg,
	}
	if b, err := h.Rdb.Get(ctx, middleware.KeyLastReq).Bytes(); err == nil {
		var last map[string]interface{}
		if json.Unmarshal(b, &last) == nil {
			stats.LastRequest = last
		}
	}
	return c.JSON(stats)
}

// Reset GET /health/reset — clears counters, guarded by the admin key.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.AdminKey == "" || c.Query("key") != h.AdminKey {
		return response.Forbidden(c, "Not authorized")
	}
	if h.Rdb == nil {
		return response.Error(c, "Health stats unavailable", fiber.StatusServiceUnavailable)
	}
	ctx := context.Background()
	_ = h.Rdb.Del(ctx,
		middleware.KeyReqTotal, middleware.KeyReqErrors,
		middleware.KeyResTime, middleware.KeyResCount,
		middleware.KeyLastReq,
	).Err()
	_ = h.Rdb.Set(ctx, middleware.KeyStartTime, time.Now().Unix(), 0).Err()
	return c.JSON(fiber.Map{"message": "Health stats reset"})
}
