package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
	"github.com/adityasampath/Imagify-Project/app/repository"
	"github.com/adityasampath/Imagify-Project/internal/pkg/token"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account with starter credits and returns a
// signed bearer token.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing Details")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(req.Email); err == nil {
		return jsonError(c, fiber.StatusBadRequest, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("register: email lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid registration details")
	}
	if err := repo.Create(user); err != nil {
		log.Printf("register: create user failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	signed, err := token.Issue(user.ID, token.Secret(), token.TTL())
	if err != nil {
		log.Printf("register: token issue failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   signed,
		"user":    fiber.Map{"name": user.Name},
	})
}

// HandleLogin verifies credentials and returns a signed bearer token.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing Details")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("login: email lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	signed, err := token.Issue(user.ID, token.Secret(), token.TTL())
	if err != nil {
		log.Printf("login: token issue failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   signed,
		"user":    fiber.Map{"name": user.Name},
	})
}
