package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/adityasampath/Imagify-Project/app/repository"
	"github.com/adityasampath/Imagify-Project/internal/pkg/generation"
	"github.com/adityasampath/Imagify-Project/internal/pkg/imagegen"
	"github.com/adityasampath/Imagify-Project/internal/pkg/metrics/counter"
	"github.com/adityasampath/Imagify-Project/internal/pkg/usercontext"
)

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

// HandleGenerateImage runs the credit-metered generation workflow and returns
// the image as a data URI together with the remaining balance.
func HandleGenerateImage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "Not Authorized. Login Again")
	}

	var req generateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Missing Details")
	}

	factory := repository.GetGlobalFactory()
	svc := generation.NewService(
		factory.GetUserRepository(),
		factory.GetGenerationRepository(),
		imagegen.NewClientFromEnv(),
	)

	result, err := svc.Generate(c.Context(), userCtx.UserID, req.Prompt)
	if err != nil {
		var insufficient *generation.InsufficientCreditsError
		switch {
		case errors.Is(err, generation.ErrMissingDetails):
			return jsonError(c, fiber.StatusBadRequest, "Missing Details")
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"success":       false,
				"message":       "No Credit Balance",
				"creditBalance": insufficient.Balance,
			})
		case errors.Is(err, imagegen.ErrAPIKeyMissing):
			return jsonError(c, fiber.StatusInternalServerError, "Server configuration error - API key missing")
		case errors.Is(err, imagegen.ErrAPIKeyInvalid):
			return jsonError(c, fiber.StatusInternalServerError, "Invalid API key configuration")
		case errors.Is(err, imagegen.ErrEmptyImage):
			return jsonError(c, fiber.StatusInternalServerError, "Invalid response from image generation service")
		default:
			log.Printf("generate: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "Failed to generate image - "+err.Error())
		}
	}

	if err := counter.AddGeneration(); err != nil {
		log.Printf("generate: counter increment failed: %v", err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Image Generated Successfully",
		"resultImage":   result.DataURI,
		"creditBalance": result.CreditBalance,
	})
}
