package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
)

// productService manages the catalog.
type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new product service with the provided options
func NewProductService(repo portsrepo.ProductRepositoryFacade, options ...ServiceOption) portssvc.ProductSvcFacade {
	return &productService{
		BaseService: newBaseService(options...),
		productRepo: repo,
	}
}

// Ensure productService implements the ProductSvcFacade interface
var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get product", slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, params.ActiveOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(p, query) {
			filtered = append(filtered, p)
		}
	}
	sortProductsByName(filtered)
	return filtered, nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, actor domain.ActingUser) (*domain.Product, error) {
	if err := s.RequireAdmin(ctx, actor, "create product"); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	code := normalizeCode(req.Code)

	now := s.Now()
	product := domain.Product{
		ProductID:      uuid.NewString(),
		Name:           name,
		Code:           code,
		MaintainingQty: req.MaintainingQty,
		CriticalQty:    req.CriticalQty,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.checkThresholds(product); err != nil {
		return nil, err
	}
	if err := s.checkCodeAvailable(ctx, product); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save product", slog.String("name", product.Name))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.String("name", product.Name))
	s.metrics.ProductWrite(string(domain.AuditActionCreate))
	s.emit(ctx, domain.AuditActionCreate, domain.AuditEntityProduct, product.ProductID, actor, nil, product)
	return &product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, actor domain.ActingUser) (*domain.Product, error) {
	if err := s.RequireAdmin(ctx, actor, "update product"); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	detailsChanged := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: product name cannot be empty", apperrors.ErrValidation)
		}
		detailsChanged = detailsChanged || name != existing.Name
		updated.Name = name
	}
	if req.Code != nil {
		updated.Code = normalizeCode(req.Code)
		detailsChanged = detailsChanged || updated.CodeValue() != existing.CodeValue()
	}
	if req.MaintainingQty != nil {
		detailsChanged = detailsChanged || *req.MaintainingQty != existing.MaintainingQty
		updated.MaintainingQty = *req.MaintainingQty
	}
	if req.CriticalQty != nil {
		detailsChanged = detailsChanged || *req.CriticalQty != existing.CriticalQty
		updated.CriticalQty = *req.CriticalQty
	}
	activeChanged := req.Active != nil && *req.Active != existing.IsActive
	if req.Active != nil {
		updated.IsActive = *req.Active
	}

	if !detailsChanged && !activeChanged {
		return existing, nil
	}

	if err := s.checkThresholds(updated); err != nil {
		return nil, err
	}
	if updated.CodeValue() != existing.CodeValue() {
		if err := s.checkCodeAvailable(ctx, updated); err != nil {
			return nil, err
		}
	}

	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = actor.UserID

	if err := s.productRepo.UpdateProduct(ctx, updated); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		}
		return nil, err
	}

	action := domain.AuditActionUpdate
	if activeChanged && !detailsChanged {
		action = activeAction(updated.IsActive)
	}
	s.LogInfo(ctx, "Product updated", slog.String("product_id", productID), slog.String("action", string(action)))
	s.metrics.ProductWrite(string(action))
	s.emit(ctx, action, domain.AuditEntityProduct, productID, actor, *existing, updated)
	return &updated, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, productID string, actor domain.ActingUser) (*domain.Product, error) {
	active := false
	return s.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Active: &active}, actor)
}

func (s *productService) ReactivateProduct(ctx context.Context, productID string, actor domain.ActingUser) (*domain.Product, error) {
	active := true
	return s.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Active: &active}, actor)
}

func (s *productService) checkThresholds(p domain.Product) error {
	if p.MaintainingQty < 0 || p.CriticalQty < 0 {
		return fmt.Errorf("%w: thresholds must not be negative", apperrors.ErrValidation)
	}
	if s.strictThresholds && !p.ThresholdsOrdered() {
		return fmt.Errorf("%w: criticalQty (%d) must not exceed maintainingQty (%d)", apperrors.ErrValidation, p.CriticalQty, p.MaintainingQty)
	}
	return nil
}

func (s *productService) checkCodeAvailable(ctx context.Context, p domain.Product) error {
	if p.Code == nil {
		return nil
	}
	other, err := s.productRepo.FindProductByCode(ctx, *p.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to look up product code", slog.String("code", *p.Code))
		return err
	}
	if other.ProductID != p.ProductID {
		return fmt.Errorf("%w: product code %q is already used", apperrors.ErrDuplicate, *p.Code)
	}
	return nil
}

func activeAction(active bool) domain.AuditAction {
	if active {
		return domain.AuditActionReactivate
	}
	return domain.AuditActionDeactivate
}

// normalizeCode trims the code and maps blank to nil.
func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// matchesQuery is a case-insensitive substring match on name or code.
// query must already be lower-cased.
func matchesQuery(p domain.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.CodeValue()), query)
}

func sortProductsByName(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := strings.ToLower(products[i].Name), strings.ToLower(products[j].Name)
		if a != b {
			return a < b
		}
		return products[i].ProductID < products[j].ProductID
	})
}
