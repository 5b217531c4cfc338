package generation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
	"github.com/adityasampath/Imagify-Project/app/repository"
)

// fakeUserStore implements repository.UserRepository over an in-memory map.
// DebitCredit mirrors the real conditional update under a mutex so concurrent
// callers see the same all-or-nothing behavior.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uint]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(user *models.User) error { s.users[user.ID] = user; return nil }

func (s *fakeUserStore) GetByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Update(user *models.User) error { return nil }

func (s *fakeUserStore) DebitCredit(userID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.CreditBalance <= 0 {
		return 0, repository.ErrInsufficientCredits
	}
	u.CreditBalance--
	return u.CreditBalance, nil
}

func (s *fakeUserStore) AddCredits(userID uint, credits int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	u.CreditBalance += credits
	return u.CreditBalance, nil
}

func (s *fakeUserStore) Count() (int64, error) { return int64(len(s.users)), nil }

func (s *fakeUserStore) balance(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID].CreditBalance
}

type fakeGenerationStore struct {
	mu      sync.Mutex
	created []*models.Generation
	err     error
}

func (s *fakeGenerationStore) Create(g *models.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, g)
	return nil
}

func (s *fakeGenerationStore) CountByUserID(userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.created)), nil
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	data  []byte
	err   error
}

func (g *fakeGenerator) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return g.data, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestGenerateSuccessDebitsOneCredit(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(&models.User{ID: 1, CreditBalance: 5})
	generations := &fakeGenerationStore{}
	gen := &fakeGenerator{data: []byte("png-bytes")}
	svc := NewService(users, generations, gen)

	result, err := svc.Generate(context.Background(), 1, "a lighthouse at dusk")
	require.NoError(t, err)

	assert.Equal(t, 4, result.CreditBalance)
	assert.Equal(t, 4, users.balance(1))
	assert.True(t, strings.HasPrefix(result.DataURI, "data:image/png;base64,"))

	require.Len(t, generations.created, 1)
	assert.Equal(t, uint(1), generations.created[0].UserID)
	assert.Equal(t, "a lighthouse at dusk", generations.created[0].Prompt)
	assert.Equal(t, int64(len("png-bytes")), generations.created[0].SizeBytes)
}

func TestGenerateEmptyPrompt(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(&models.User{ID: 1, CreditBalance: 5})
	gen := &fakeGenerator{data: []byte("png-bytes")}
	svc := NewService(users, &fakeGenerationStore{}, gen)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := svc.Generate(context.Background(), 1, prompt)
		assert.ErrorIs(t, err, ErrMissingDetails)
	}
	assert.Equal(t, 0, gen.callCount())
	assert.Equal(t, 5, users.balance(1))
}

func TestGenerateUnknownUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	gen := &fakeGenerator{data: []byte("png-bytes")}
	svc := NewService(users, &fakeGenerationStore{}, gen)

	_, err := svc.Generate(context.Background(), 99, "prompt")
	assert.ErrorIs(t, err, ErrMissingDetails)
	assert.Equal(t, 0, gen.callCount())
}

func TestGenerateZeroBalanceSkipsGenerator(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(&models.User{ID: 1, CreditBalance: 0})
	gen := &fakeGenerator{data: []byte("png-bytes")}
	svc := NewService(users, &fakeGenerationStore{}, gen)

	_, err := svc.Generate(context.Background(), 1, "prompt")

	var insufficient *InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Balance)
	assert.Equal(t, 0, gen.callCount())
}

func TestGenerateGeneratorFailureKeepsBalance(t *testing.T) {
	t.Parallel()

	upstreamErr := errors.New("synthesis unavailable")
	users := newFakeUserStore(&models.User{ID: 1, CreditBalance: 3})
	svc := NewService(users, &fakeGenerationStore{}, &fakeGenerator{err: upstreamErr})

	_, err := svc.Generate(context.Background(), 1, "prompt")
	assert.ErrorIs(t, err, upstreamErr)
	assert.Equal(t, 3, users.balance(1))
}

func TestGenerateAuditFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(&models.User{ID: 1, CreditBalance: 2})
	generations := &fakeGenerationStore{err: errors.New("audit table gone")}
	svc := NewService(users, generations, &fakeGenerator{data: []byte("png-bytes")})

	result, err := svc.Generate(context.Background(), 1, "prompt")
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreditBalance)
}

func TestGenerateConcurrentLastCredit(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(&models.User{ID: 1, CreditBalance: 1})
	svc := NewService(users, &fakeGenerationStore{}, &fakeGenerator{data: []byte("png-bytes")})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Generate(context.Background(), 1, "prompt")
		}(i)
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var e *InsufficientCreditsError
			if errors.As(err, &e) {
				insufficient++
			}
		}
	}

	assert.Equal(t, 1, successes, "exactly one request may spend the last credit")
	assert.Equal(t, 1, insufficient, "the loser must see a credit balance rejection")
	assert.Equal(t, 0, users.balance(1))
}
