package middleware

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/services"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type RateLimitMiddleware struct {
	context.DefaultService

	rateLimitSvc *services.RateLimitService
}

const RATE_LIMIT_MIDDLEWARE_SVC = services.RATE_LIMIT_MIDDLEWARE_SVC

func (svc *RateLimitMiddleware) Id() string {
	return RATE_LIMIT_MIDDLEWARE_SVC
}

func (svc *RateLimitMiddleware) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitMiddleware) Start() error {
	svc.rateLimitSvc = svc.Service(services.RATE_LIMIT_SVC).(*services.RateLimitService)
	return nil
}

// RateLimit limits by the authenticated user, falling back to the client IP.
func (svc *RateLimitMiddleware) RateLimit(bucket string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, _ := c.Locals(shared.UserID).(string)
		if key == "" {
			key = GetClientIP(c)
		}
		return svc.apply(c, bucket, key)
	}
}

// IPRateLimit applies the general bucket by client IP.
func (svc *RateLimitMiddleware) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return svc.apply(c, services.BucketAPIGeneral, GetClientIP(c))
	}
}

func (svc *RateLimitMiddleware) apply(c *fiber.Ctx, bucket, key string) error {
	info := svc.rateLimitSvc.Allow(bucket, key)
	addRateLimitHeaders(c, info)
	if !info.Allowed {
		return handleRateLimitExceeded(c, info)
	}
	return c.Next()
}

func addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil || info.Remaining < 0 {
		return
	}
	c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	if !info.Allowed && info.RetryAfter > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retrySeconds(info)))
	}
}

func handleRateLimitExceeded(c *fiber.Ctx, info *dto.RateLimitInfo) error {
	message := fmt.Sprintf("Too many %s requests. Please try again later.", strings.ReplaceAll(info.Bucket, "_", " "))
	return shared.ResponseJSON(c, fiber.StatusTooManyRequests, message, map[string]interface{}{
		"bucket":      info.Bucket,
		"retry_after": retrySeconds(info),
	})
}

func retrySeconds(info *dto.RateLimitInfo) int {
	return int(math.Ceil(info.RetryAfter.Seconds()))
}

// GetClientIP prefers proxy headers over the socket address.
func GetClientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip != "" {
			return ip
		}
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}
	return ip
}
