package memory

import (
	"context"
	"sync"
	"time"

	"github.com/iho/fintrack/internal/domain"
)

// OperationRepository implements usecase.OperationRepository.
type OperationRepository struct {
	mu         sync.RWMutex
	operations []domain.Operation
}

// NewOperationRepository creates an empty OperationRepository.
func NewOperationRepository() *OperationRepository {
	return &OperationRepository{}
}

func (r *OperationRepository) Create(_ context.Context, operation *domain.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, *operation)
	return nil
}

func (r *OperationRepository) GetByID(_ context.Context, id string) (*domain.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.operations {
		if r.operations[i].ID == id {
			operation := r.operations[i]
			return &operation, nil
		}
	}
	return nil, domain.ErrOperationNotFound
}

func (r *OperationRepository) Update(_ context.Context, operation *domain.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.operations {
		if r.operations[i].ID == operation.ID {
			r.operations[i] = *operation
			return nil
		}
	}
	return domain.ErrOperationNotFound
}

// Delete removes the operation with the given id. Unknown ids are ignored.
func (r *OperationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.operations {
		if r.operations[i].ID == id {
			r.operations = append(r.operations[:i], r.operations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *OperationRepository) List(_ context.Context) ([]*domain.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	operations := make([]*domain.Operation, len(r.operations))
	for i := range r.operations {
		operation := r.operations[i]
		operations[i] = &operation
	}
	return operations, nil
}

// ListByDateRange returns operations dated within [start, end] inclusive,
// in insertion order.
func (r *OperationRepository) ListByDateRange(_ context.Context, start, end time.Time) ([]*domain.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var operations []*domain.Operation
	for i := range r.operations {
		d := r.operations[i].Date
		if d.Before(start) || d.After(end) {
			continue
		}
		operation := r.operations[i]
		operations = append(operations, &operation)
	}
	return operations, nil
}

func (r *OperationRepository) ReplaceAll(_ context.Context, operations []*domain.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = make([]domain.Operation, 0, len(operations))
	for _, operation := range operations {
		r.operations = append(r.operations, *operation)
	}
	return nil
}
