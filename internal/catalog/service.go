package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/money"
)

var (
	ErrCategoryNotFound = fmt.Errorf("%w: category does not exist", apperr.ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("%w: product does not exist", apperr.ErrNotFound)

	ErrCategoryNameRequired = fmt.Errorf("%w: category name is required", apperr.ErrInvalid)
	ErrUnknownCategory      = fmt.Errorf("%w: category does not exist", apperr.ErrInvalid)

	ErrDuplicateCategory = fmt.Errorf("%w: a category with this name already exists", apperr.ErrConflict)
	ErrCategoryInUse     = fmt.Errorf("%w: category still has products", apperr.ErrConflict)
)

var minPrice = decimal.RequireFromString("0.01")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory adds a category. Names are unique ignoring case.
func (s *Service) CreateCategory(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrCategoryNameRequired
	}
	if err := s.ensureNameFree(ctx, "", name); err != nil {
		return Category{}, err
	}

	c := Category{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC()}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

// RenameCategory changes a category name. Renaming a category to its own
// name in a different case is allowed.
func (s *Service) RenameCategory(ctx context.Context, id, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrCategoryNameRequired
	}
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if err := s.ensureNameFree(ctx, id, name); err != nil {
		return Category{}, err
	}
	if err := s.repo.RenameCategory(ctx, id, name); err != nil {
		return Category{}, err
	}
	c.Name = name
	return c, nil
}

func (s *Service) ensureNameFree(ctx context.Context, selfID, name string) error {
	existing, err := s.repo.FindCategoryByName(ctx, name)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == selfID:
		return nil
	default:
		return ErrDuplicateCategory
	}
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	return s.repo.ListProducts(ctx, f.normalized())
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CountProducts(ctx context.Context) (int, error) {
	return s.repo.CountProducts(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	in, cat, err := s.validate(ctx, in)
	if err != nil {
		return Product{}, err
	}

	now := s.now().UTC()
	p := Product{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(&p, in, cat)

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}
	in, cat, err := s.validate(ctx, in)
	if err != nil {
		return Product{}, err
	}

	applyInput(&p, in, cat)
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a product. Orders keep their own copy of the
// product id and name, so order history is unaffected.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func applyInput(p *Product, in ProductInput, cat Category) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.CategoryID = cat.ID
	p.CategoryName = cat.Name
	p.Sizes = in.Sizes
	p.Images = in.Images
}

// validate normalizes the input and checks it field by field, returning the
// first problem found.
func (s *Service) validate(ctx context.Context, in ProductInput) (ProductInput, Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Sizes = cleanList(in.Sizes)
	in.Images = cleanList(in.Images)

	switch {
	case utf8.RuneCountInString(in.Name) < 2:
		return in, Category{}, fmt.Errorf("%w: name must be at least 2 characters", apperr.ErrInvalid)
	case utf8.RuneCountInString(in.Description) < 10:
		return in, Category{}, fmt.Errorf("%w: description must be at least 10 characters", apperr.ErrInvalid)
	case in.Price.LessThan(minPrice):
		return in, Category{}, fmt.Errorf("%w: price must be at least 0.01", apperr.ErrInvalid)
	case !money.Fits(in.Price):
		return in, Category{}, fmt.Errorf("%w: price must have at most 2 decimal places and not exceed %s", apperr.ErrInvalid, money.Max)
	case in.CategoryID == "":
		return in, Category{}, fmt.Errorf("%w: category is required", apperr.ErrInvalid)
	case len(in.Sizes) == 0:
		return in, Category{}, fmt.Errorf("%w: at least one size is required", apperr.ErrInvalid)
	}

	cat, err := s.repo.GetCategory(ctx, in.CategoryID)
	if errors.Is(err, ErrCategoryNotFound) {
		return in, Category{}, ErrUnknownCategory
	}
	if err != nil {
		return in, Category{}, err
	}
	return in, cat, nil
}
