package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/adityasampath/Imagify-Project/app/controllers"
	"github.com/adityasampath/Imagify-Project/internal/pkg/constants"
	"github.com/adityasampath/Imagify-Project/internal/pkg/env"
	"github.com/adityasampath/Imagify-Project/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API Working")
	})

	api := app.Group(constants.APIGroup, limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Storage:    newLimiterStorage(),
	}))

	api.Get(constants.StatsRoute, controllers.HandleGetStats)

	requireAuth := middleware.RequireTokenAuth()

	user := api.Group(constants.UserGroup)
	user.Post(constants.RegisterRoute, controllers.HandleRegister)
	user.Post(constants.LoginRoute, controllers.HandleLogin)
	user.Get(constants.CreditsRoute, requireAuth, controllers.HandleGetCredits)
	user.Post(constants.PayRazorpayRoute, requireAuth, controllers.HandlePayRazorpay)
	user.Post(constants.VerifyRazorRoute, requireAuth, controllers.HandleVerifyRazorpay)
	user.Post(constants.PayStripeRoute, requireAuth, controllers.HandlePayStripe)
	user.Post(constants.VerifyStripeRoute, requireAuth, controllers.HandleVerifyStripe)

	image := api.Group(constants.ImageGroup, requireAuth)
	image.Post(constants.GenerateImageRoute, controllers.HandleGenerateImage)
}

// newLimiterStorage backs the rate limiter with Redis database 1 so limits
// survive restarts and are shared across instances (the cache uses DB 0).
func newLimiterStorage() fiber.Storage {
	port := 6379
	if v, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379")); err == nil {
		port = v
	}
	return redisstorage.New(redisstorage.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: 1,
		Reset:    false,
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
