package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/patabima/patabima/internal/domain/quote"
	ierr "github.com/patabima/patabima/internal/errors"
)

type InMemoryQuoteStore struct {
	mu     sync.RWMutex
	quotes map[string]*quote.Quote
}

func NewInMemoryQuoteStore() *InMemoryQuoteStore {
	return &InMemoryQuoteStore{
		quotes: make(map[string]*quote.Quote),
	}
}

func (s *InMemoryQuoteStore) Create(ctx context.Context, q *quote.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quotes[q.ID]; exists {
		return ierr.NewError("quote already exists").
			WithHintf("Quote %s already exists", q.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	copied := *q
	s.quotes[q.ID] = &copied
	return nil
}

func (s *InMemoryQuoteStore) Get(ctx context.Context, id string) (*quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, exists := s.quotes[id]
	if !exists {
		return nil, ierr.NewError("quote not found").
			WithHintf("Quote %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}

	copied := *q
	return &copied, nil
}

func (s *InMemoryQuoteStore) List(ctx context.Context, filter quote.Filter) ([]*quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*quote.Quote
	for _, q := range s.quotes {
		if filter.ProductType != "" && q.ProductType != filter.ProductType {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		if !filter.CreatedBefore.IsZero() && !q.CreatedAt.Before(filter.CreatedBefore) {
			continue
		}
		copied := *q
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// SetCreatedAt backdates a stored quote so tests can age drafts
func (s *InMemoryQuoteStore) SetCreatedAt(id string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q, exists := s.quotes[id]; exists {
		q.CreatedAt = createdAt
	}
}

func (s *InMemoryQuoteStore) UpdateStatus(ctx context.Context, q *quote.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.quotes[q.ID]
	if !exists {
		return ierr.NewError("quote not found").
			WithHintf("Quote %s does not exist", q.ID).
			Mark(ierr.ErrNotFound)
	}

	stored.Status = q.Status
	stored.UpdatedAt = q.UpdatedAt
	stored.UpdatedBy = q.UpdatedBy
	return nil
}
