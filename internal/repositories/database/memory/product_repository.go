package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

func (s *Store) FindProductByID(_ context.Context, productID string) (*domain.Product, error) {
	p, ok := s.load().products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return &p, nil
}

func (s *Store) FindProductByCode(_ context.Context, code string) (*domain.Product, error) {
	st := s.load()
	id, ok := st.codes[code]
	if !ok {
		return nil, fmt.Errorf("%w: product code %s", apperrors.ErrNotFound, code)
	}
	p := st.products[id]
	return &p, nil
}

func (s *Store) ListProducts(_ context.Context, activeOnly bool) ([]domain.Product, error) {
	st := s.load()
	products := make([]domain.Product, 0, len(st.products))
	for _, p := range st.products {
		if activeOnly && !p.IsActive {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ProductID < products[j].ProductID
	})
	return products, nil
}

func (s *Store) SaveProduct(_ context.Context, product domain.Product) error {
	return s.update(func(next *state) error {
		if _, exists := next.products[product.ProductID]; exists {
			return fmt.Errorf("%w: product %s", apperrors.ErrDuplicate, product.ProductID)
		}
		if product.Code != nil {
			if _, taken := next.codes[*product.Code]; taken {
				return fmt.Errorf("%w: product code %s", apperrors.ErrDuplicate, *product.Code)
			}
			next.codes[*product.Code] = product.ProductID
		}
		next.products[product.ProductID] = product
		return nil
	})
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) error {
	return s.update(func(next *state) error {
		old, exists := next.products[product.ProductID]
		if !exists {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, product.ProductID)
		}
		if product.Code != nil {
			if owner, taken := next.codes[*product.Code]; taken && owner != product.ProductID {
				return fmt.Errorf("%w: product code %s", apperrors.ErrDuplicate, *product.Code)
			}
		}
		if old.Code != nil {
			delete(next.codes, *old.Code)
		}
		if product.Code != nil {
			next.codes[*product.Code] = product.ProductID
		}
		// creation audit fields are immutable
		product.CreatedAt = old.CreatedAt
		product.CreatedBy = old.CreatedBy
		next.products[product.ProductID] = product
		return nil
	})
}
