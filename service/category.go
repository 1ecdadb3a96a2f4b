package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
)

var _ ICategoryService = (*CategoryService)(nil)

type ICategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, req *types.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id uint64, req *types.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uint64) error
}

type CategoryService struct {
	CategoryRepo *dao.Category
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.CategoryRepo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, req *types.CategoryRequest) (*models.Category, error) {
	exist, err := s.CategoryRepo.IsExist(ctx, "name = ?", req.Name)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrCategoryExists
	}
	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		if dao.IsDuplicate(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint64, req *types.CategoryRequest) (*models.Category, error) {
	category, err := s.CategoryRepo.FindById(ctx, id)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if req.Name != category.Name {
		exist, err := s.CategoryRepo.IsExist(ctx, "name = ? AND id <> ?", req.Name, id)
		if err != nil {
			return nil, err
		}
		if exist {
			return nil, ErrCategoryExists
		}
	}
	category.Name = req.Name
	category.Description = req.Description
	if _, err := s.CategoryRepo.UpdateById(ctx, id, map[string]any{
		"name":        req.Name,
		"description": req.Description,
	}); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint64) error {
	rows, err := s.CategoryRepo.DeleteDetach(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
