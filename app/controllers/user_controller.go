package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/repository"
	"github.com/adityasampath/Imagify-Project/internal/pkg/metrics/counter"
	"github.com/adityasampath/Imagify-Project/internal/pkg/usercontext"
)

// HandleGetCredits returns the authenticated user's current credit balance.
func HandleGetCredits(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "Not Authorized. Login Again")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "Not Authorized. Login Again")
		}
		log.Printf("credits: user lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"credits": user.CreditBalance,
		"user":    fiber.Map{"name": user.Name},
	})
}

// HandleGetStats reports the running totals kept in the cache.
func HandleGetStats(c *fiber.Ctx) error {
	generations, payments, err := counter.Totals()
	if err != nil {
		log.Printf("stats: counter read failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{
		"success":           true,
		"generations":       generations,
		"credited_payments": payments,
	})
}
