package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/registreehq/registree-api/internal/handlers"
	"github.com/registreehq/registree-api/internal/middleware"
	"github.com/registreehq/registree-api/internal/models"
	"github.com/registreehq/registree-api/internal/services"
)

func Setup(
	app *fiber.App,
	tokens *services.TokenService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth: stricter rate limit, 10 req/min per IP. The refresh endpoint
	// only needs a decodable token, not an unexpired one.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Get("/refresh-token", middleware.DecodeToken(tokens), authHandler.RefreshToken)

	user := api.Group("/user")
	user.Post("/sign-up", userHandler.SignUp)
	user.Post("/change-account-password", middleware.RequireRoles(tokens), userHandler.ChangeAccountPassword)
	user.Get("/profile/find-user-by-token", middleware.RequireRoles(tokens), userHandler.FindProfileByToken)
	user.Get("/resend-otp-code/:userId", userHandler.ResendOTP)
	user.Get("/verification/verify-signup-code/:uniqueVerificationCode", middleware.RequireRoles(tokens), userHandler.VerifySignupCode)
	user.Get("/verification/initiate-forgot-password-flow/:email", userHandler.InitiateForgotPassword)
	user.Get("/verification/finalize-forgot-password-flow/:uniqueVerificationCode", userHandler.FinalizeForgotPassword)
	user.Post("/verification/change-password", userHandler.ChangePassword)
	user.Get("/", userHandler.List)
	user.Get("/:userId", userHandler.FindByID)
	user.Patch("/", userHandler.Update)
	user.Delete("/delete-by-email/:email", middleware.RequireRoles(tokens, models.RoleAdmin), userHandler.DeleteByEmail)
	user.Delete("/:userId", middleware.RequireRoles(tokens, models.RoleAdmin), userHandler.Delete)

	api.Post("/upload-files", uploadHandler.UploadFiles)
}
