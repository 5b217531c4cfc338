package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
	"github.com/adityasampath/Imagify-Project/app/repository"
	"github.com/adityasampath/Imagify-Project/internal/pkg/imagegen"
)

// ErrMissingDetails means the user could not be resolved or the prompt is
// empty; the synthesis service is never called in that case.
var ErrMissingDetails = errors.New("missing user or prompt")

// InsufficientCreditsError rejects a generation with the balance the caller
// should show next to the purchase redirect.
type InsufficientCreditsError struct {
	Balance int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("no credit balance (%d)", e.Balance)
}

// Generator produces raw image bytes for a prompt.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Result is a completed generation: the transport-encoded image and the
// balance after the debit.
type Result struct {
	DataURI       string
	CreditBalance int
}

// Service runs the credit-metered generation workflow. A credit is debited if
// and only if image bytes were obtained, and the debit itself is the storage
// layer's conditional update, so concurrent requests cannot overdraw.
type Service struct {
	users       repository.UserRepository
	generations repository.GenerationRepository
	generator   Generator
}

// NewService wires the workflow from its collaborators.
func NewService(users repository.UserRepository, generations repository.GenerationRepository, generator Generator) *Service {
	return &Service{
		users:       users,
		generations: generations,
		generator:   generator,
	}
}

// Generate resolves the user, gates on the balance, calls the synthesis
// service and debits exactly one credit on success.
func (s *Service) Generate(ctx context.Context, userID uint, prompt string) (*Result, error) {
	prompt = strings.TrimSpace(prompt)

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingDetails
		}
		return nil, err
	}
	if prompt == "" {
		return nil, ErrMissingDetails
	}

	// Advisory fast-path check; the authoritative gate is the conditional
	// debit below.
	if !user.HasCredits() {
		return nil, &InsufficientCreditsError{Balance: user.CreditBalance}
	}

	data, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	balance, err := s.users.DebitCredit(userID)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			// A concurrent request spent the last credit between the
			// pre-check and the debit.
			return nil, &InsufficientCreditsError{Balance: 0}
		}
		return nil, err
	}

	if err := s.generations.Create(&models.Generation{
		UserID:    userID,
		Prompt:    prompt,
		SizeBytes: int64(len(data)),
	}); err != nil {
		// The user already paid and holds the image; losing the audit row is
		// not worth failing the request over.
		log.Printf("failed to record generation for user %d: %v", userID, err)
	}

	return &Result{
		DataURI:       imagegen.DataURI(data),
		CreditBalance: balance,
	}, nil
}
