package memory

import (
	"context"
	"sync"

	"github.com/iho/fintrack/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories []domain.Category
}

// NewCategoryRepository creates an empty CategoryRepository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, *category)
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.categories {
		if r.categories[i].ID == id {
			category := r.categories[i]
			return &category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *CategoryRepository) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == category.ID {
			r.categories[i] = *category
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

// Delete removes the category with the given id. Unknown ids are ignored.
func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	categories := make([]*domain.Category, len(r.categories))
	for i := range r.categories {
		category := r.categories[i]
		categories[i] = &category
	}
	return categories, nil
}

func (r *CategoryRepository) ReplaceAll(_ context.Context, categories []*domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = make([]domain.Category, 0, len(categories))
	for _, category := range categories {
		r.categories = append(r.categories, *category)
	}
	return nil
}
