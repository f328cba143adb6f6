package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/slug"
)

// CreateCategory adds a category node. Names are unique case-insensitively
// among active categories; the slug derives from the name.
func (s *service) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	var created *models.Category
	var err error
	for attempt := 0; attempt < uniqueRetries; attempt++ {
		err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
			repo := NewRepository(tx)

			exists, checkErr := repo.CategoryNameExists(ctx, name, nil)
			if checkErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, checkErr, "check category name")
			}
			if exists {
				return pkgerrors.New(pkgerrors.CodeConflict, "category with this name already exists")
			}

			if req.ParentID != nil {
				if _, parentErr := repo.FindCategoryByID(ctx, *req.ParentID); parentErr != nil {
					if errors.Is(parentErr, gorm.ErrRecordNotFound) {
						return pkgerrors.Wrap(pkgerrors.CodeValidation, parentErr, "parent category not found")
					}
					return pkgerrors.Wrap(pkgerrors.CodeInternal, parentErr, "load parent category")
				}
			}

			categorySlug, slugErr := slug.Unique(tx, "categories", "slug", slug.Make(name), nil)
			if slugErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, slugErr, "allocate category slug")
			}

			category := &models.Category{
				ID:          newID(),
				Name:        name,
				Slug:        categorySlug,
				ParentID:    req.ParentID,
				Description: strings.TrimSpace(req.Description),
				ImagePath:   req.ImagePath,
			}
			if createErr := repo.CreateCategory(ctx, category); createErr != nil {
				return createErr
			}
			created = category
			return nil
		})
		if err == nil || !db.IsUniqueViolation(err, "") {
			break
		}
	}
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}

	dto := FromCategoryModel(created)
	return &dto, nil
}

// UpdateCategory renames or re-parents a category. The slug stays stable so
// storefront links keep working. The self-parent check runs here, not only
// at the form boundary, so direct API writes cannot create a cycle.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, req CategoryRequest) (*CategoryDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if req.ParentID != nil && *req.ParentID == id {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
	}

	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, classifyNotFound(err, "category not found")
	}

	exists, err := s.repo.CategoryNameExists(ctx, name, &id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category name")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "category with this name already exists")
	}

	if req.ParentID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parent category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load parent category")
		}
	}

	category.Name = name
	category.ParentID = req.ParentID
	category.Description = strings.TrimSpace(req.Description)
	category.ImagePath = req.ImagePath
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}

	dto := FromCategoryModel(category)
	return &dto, nil
}

// SoftDeleteCategory hides the category. Products keep their pointer; the
// storefront filter ignores categories flagged deleted.
func (s *service) SoftDeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteCategory(ctx, id); err != nil {
		return classifyNotFound(err, "category not found")
	}
	return nil
}

// ListCategories returns the active category tree as a flat, name-ordered list.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, FromCategoryModel(&categories[i]))
	}
	return out, nil
}

// CreateSize adds a shared size value.
func (s *service) CreateSize(ctx context.Context, req SizeRequest) (*SizeDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size name is required")
	}
	size := &models.Size{ID: newID(), Name: name}
	if err := s.repo.CreateSize(ctx, size); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "size with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create size")
	}
	dto := FromSizeModel(size)
	return &dto, nil
}

// UpdateSize renames a size value.
func (s *service) UpdateSize(ctx context.Context, id uuid.UUID, req SizeRequest) (*SizeDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size name is required")
	}
	size, err := s.repo.FindSizeByID(ctx, id)
	if err != nil {
		return nil, classifyNotFound(err, "size not found")
	}
	size.Name = name
	if err := s.repo.SaveSize(ctx, size); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "size with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update size")
	}
	dto := FromSizeModel(size)
	return &dto, nil
}

// DeleteSize removes a size outright. Reference data has no soft-delete
// flag, so deletion is refused while any variant still points at the row.
func (s *service) DeleteSize(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountVariantsUsingSize(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count size references")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeIntegrity, "cannot delete size: in use").
			WithDetails(map[string]any{"variants": count})
	}
	if err := s.repo.DeleteSize(ctx, id); err != nil {
		return classifyNotFound(err, "size not found")
	}
	return nil
}

// ListSizes returns every size ordered by name.
func (s *service) ListSizes(ctx context.Context) ([]SizeDTO, error) {
	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sizes")
	}
	out := make([]SizeDTO, 0, len(sizes))
	for i := range sizes {
		out = append(out, FromSizeModel(&sizes[i]))
	}
	return out, nil
}

// CreateColor adds a shared color value.
func (s *service) CreateColor(ctx context.Context, req ColorRequest) (*ColorDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color name is required")
	}
	color := &models.Color{ID: newID(), Name: name, HexCode: strings.TrimSpace(req.HexCode)}
	if err := s.repo.CreateColor(ctx, color); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "color with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create color")
	}
	dto := FromColorModel(color)
	return &dto, nil
}

// UpdateColor renames or recolors a color value.
func (s *service) UpdateColor(ctx context.Context, id uuid.UUID, req ColorRequest) (*ColorDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color name is required")
	}
	color, err := s.repo.FindColorByID(ctx, id)
	if err != nil {
		return nil, classifyNotFound(err, "color not found")
	}
	color.Name = name
	color.HexCode = strings.TrimSpace(req.HexCode)
	if err := s.repo.SaveColor(ctx, color); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "color with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update color")
	}
	dto := FromColorModel(color)
	return &dto, nil
}

// DeleteColor removes a color outright, refused while in use.
func (s *service) DeleteColor(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountVariantsUsingColor(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count color references")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeIntegrity, "cannot delete color: in use").
			WithDetails(map[string]any{"variants": count})
	}
	if err := s.repo.DeleteColor(ctx, id); err != nil {
		return classifyNotFound(err, "color not found")
	}
	return nil
}

// ListColors returns every color ordered by name.
func (s *service) ListColors(ctx context.Context) ([]ColorDTO, error) {
	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list colors")
	}
	out := make([]ColorDTO, 0, len(colors))
	for i := range colors {
		out = append(out, FromColorModel(&colors[i]))
	}
	return out, nil
}
