package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
	"github.com/adityasampath/Imagify-Project/app/repository"
	"github.com/adityasampath/Imagify-Project/internal/pkg/metrics/counter"
	"github.com/adityasampath/Imagify-Project/internal/pkg/payment"
	"github.com/adityasampath/Imagify-Project/internal/pkg/usercontext"
)

type planRequest struct {
	PlanID string `json:"planId"`
}

type verifyRazorpayRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type verifyStripeRequest struct {
	OrderID string `json:"orderId"`
	Success string `json:"success"`
}

// HandlePayRazorpay creates a Razorpay order for the selected plan and
// persists it as pending until verification.
func HandlePayRazorpay(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "Not Authorized. Login Again")
	}

	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	plan, err := payment.FindPlan(req.PlanID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid plan selected")
	}

	gateway := payment.NewRazorpayGatewayFromEnv()
	order, err := gateway.CreateOrder(plan, uuid.NewString())
	if err != nil {
		log.Printf("pay-razor: order creation failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Could not create payment order")
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		log.Print("pay-razor: gateway order has no id")
		return jsonError(c, fiber.StatusInternalServerError, "Could not create payment order")
	}

	repo := repository.GetGlobalFactory().GetPaymentOrderRepository()
	if err := repo.Create(&models.PaymentOrder{
		UserID:          userCtx.UserID,
		PlanID:          plan.ID,
		Credits:         plan.Credits,
		Amount:          plan.AmountPaise(),
		Currency:        "INR",
		Provider:        models.ProviderRazorpay,
		ProviderOrderID: orderID,
		Status:          models.OrderStatusPending,
	}); err != nil {
		log.Printf("pay-razor: order persistence failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Could not create payment order")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
		"key":     gateway.KeyID,
	})
}

// HandleVerifyRazorpay checks the checkout confirmation signature and credits
// the plan amount exactly once per order.
func HandleVerifyRazorpay(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "Not Authorized. Login Again")
	}

	var req verifyRazorpayRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.PaymentID) == "" || strings.TrimSpace(req.Signature) == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing payment details")
	}

	gateway := payment.NewRazorpayGatewayFromEnv()
	if !gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return jsonError(c, fiber.StatusBadRequest, "Payment verification failed")
	}

	repo := repository.GetGlobalFactory().GetPaymentOrderRepository()
	credited, err := repo.MarkPaidAndCredit(models.ProviderRazorpay, req.OrderID, req.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "Payment verification failed")
		}
		log.Printf("verify-razor: settle failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if credited {
		if err := counter.AddCreditedPayment(); err != nil {
			log.Printf("verify-razor: counter increment failed: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Credits Added",
	})
}

// HandlePayStripe creates a hosted Checkout session and returns its URL for
// the client redirect.
func HandlePayStripe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "Not Authorized. Login Again")
	}

	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	plan, err := payment.FindPlan(req.PlanID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid plan selected")
	}

	gateway := payment.NewStripeGatewayFromEnv()
	sessionID, sessionURL, err := gateway.CreateCheckoutSession(plan)
	if err != nil {
		log.Printf("pay-stripe: session creation failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Could not create payment session")
	}

	repo := repository.GetGlobalFactory().GetPaymentOrderRepository()
	if err := repo.Create(&models.PaymentOrder{
		UserID:          userCtx.UserID,
		PlanID:          plan.ID,
		Credits:         plan.Credits,
		Amount:          plan.AmountCents(),
		Currency:        "USD",
		Provider:        models.ProviderStripe,
		ProviderOrderID: sessionID,
		Status:          models.OrderStatusPending,
	}); err != nil {
		log.Printf("pay-stripe: order persistence failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Could not create payment session")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"session_url": sessionURL,
	})
}

// HandleVerifyStripe settles a Stripe checkout after the redirect back. A
// cancelled checkout marks the order failed without touching the balance.
func HandleVerifyStripe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "Not Authorized. Login Again")
	}

	var req verifyStripeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing payment details")
	}

	repo := repository.GetGlobalFactory().GetPaymentOrderRepository()

	if req.Success != "true" {
		if err := repo.MarkFailed(models.ProviderStripe, req.OrderID); err != nil {
			log.Printf("verify-stripe: mark failed errored: %v", err)
		}
		return jsonError(c, fiber.StatusBadRequest, "Payment was not completed")
	}

	credited, err := repo.MarkPaidAndCredit(models.ProviderStripe, req.OrderID, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "Payment verification failed")
		}
		log.Printf("verify-stripe: settle failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if credited {
		if err := counter.AddCreditedPayment(); err != nil {
			log.Printf("verify-stripe: counter increment failed: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Credits Added",
	})
}
