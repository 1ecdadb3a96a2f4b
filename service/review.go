package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
)

var _ IReviewService = (*ReviewService)(nil)

type IReviewService interface {
	Create(ctx context.Context, userID, productID uint64, req *types.CreateReviewRequest) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uint64, cursor uint64, limit int) (*types.CursorPage[*models.Review], error)
	// Delete 作者本人或管理员可删除
	Delete(ctx context.Context, userID uint64, isAdmin bool, reviewID uint64) error
}

type ReviewService struct {
	ReviewRepo  *dao.Review
	ProductRepo *dao.Product
}

func (s *ReviewService) Create(ctx context.Context, userID, productID uint64, req *types.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.ProductRepo.FindById(ctx, productID); err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	exist, err := s.ReviewRepo.IsExist(ctx, "user_id = ? AND product_id = ?", userID, productID)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.ReviewRepo.Create(ctx, review); err != nil {
		if dao.IsDuplicate(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uint64, cursor uint64, limit int) (*types.CursorPage[*models.Review], error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	items, err := s.ReviewRepo.ListByProduct(ctx, productID, cursor, limit+1)
	if err != nil {
		return nil, err
	}
	return cursorPage(items, limit, func(r *models.Review) uint64 { return r.ID }), nil
}

func (s *ReviewService) Delete(ctx context.Context, userID uint64, isAdmin bool, reviewID uint64) error {
	review, err := s.ReviewRepo.FindById(ctx, reviewID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	if !isAdmin && review.UserID != userID {
		return ErrReviewForbidden
	}
	_, err = s.ReviewRepo.DeleteById(ctx, reviewID)
	return err
}
