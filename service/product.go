package service

import (
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/errs"
	"Storefront/pkg/log"
	"Storefront/types"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IProductService = (*ProductService)(nil)

type IProductService interface {
	List(ctx context.Context, query *types.ProductListQuery, onlyOn bool) (*types.CursorPage[*models.Product], error)
	// Get 商品详情，onlyOn 为 true 时下架商品视为不存在
	Get(ctx context.Context, id uint64, onlyOn bool) (*types.ProductDetail, error)
	Create(ctx context.Context, req *types.ProductRequest) (*types.ProductDetail, error)
	Update(ctx context.Context, id uint64, req *types.ProductRequest) (*types.ProductDetail, error)
	Delete(ctx context.Context, id uint64) error
}

type ProductService struct {
	DB           *gorm.DB
	ProductRepo  *dao.Product
	CategoryRepo *dao.Category
	ReviewRepo   *dao.Review
	ProductCache *cache.ProductCache
}

func (s *ProductService) List(ctx context.Context, query *types.ProductListQuery, onlyOn bool) (*types.CursorPage[*models.Product], error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	items, err := s.ProductRepo.ListByCursor(ctx, query.CategoryID, onlyOn, query.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	return cursorPage(items, limit, func(p *models.Product) uint64 { return p.ID }), nil
}

func (s *ProductService) Get(ctx context.Context, id uint64, onlyOn bool) (*types.ProductDetail, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if onlyOn && product.Status != models.ProductStatusOn {
		return nil, ErrProductNotFound
	}

	detail := productDetail(product)
	avg, total, err := s.ReviewRepo.RatingSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.AvgRating = avg
	detail.ReviewCount = total
	return detail, nil
}

func (s *ProductService) Create(ctx context.Context, req *types.ProductRequest) (*types.ProductDetail, error) {
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		LoyaltyPoints: req.LoyaltyPoints,
		Status:        models.ProductStatusOn,
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ProductRepo.Tx(tx)
		if err := repo.Create(ctx, product); err != nil {
			return err
		}
		return repo.ReplaceVariants(ctx, product.ID, dedupe(req.Sizes), dedupe(req.Colors))
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID, false)
}

// Update 整体覆盖商品字段与规格
func (s *ProductService) Update(ctx context.Context, id uint64, req *types.ProductRequest) (*types.ProductDetail, error) {
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ProductRepo.Tx(tx)
		if _, err := repo.FindByIdForUpdate(ctx, id); err != nil {
			if dao.IsNotFound(err) {
				return ErrProductNotFound
			}
			return err
		}
		data := map[string]any{
			"category_id":    req.CategoryID,
			"name":           req.Name,
			"description":    req.Description,
			"price":          req.Price,
			"stock":          req.Stock,
			"loyalty_points": req.LoyaltyPoints,
		}
		if req.Status != nil {
			data["status"] = *req.Status
		}
		if _, err := repo.UpdateById(ctx, id, data); err != nil {
			return err
		}
		return repo.ReplaceVariants(ctx, id, dedupe(req.Sizes), dedupe(req.Colors))
	})
	if err != nil {
		return nil, err
	}
	s.evict(ctx, id)
	return s.Get(ctx, id, false)
}

func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	rows, err := s.ProductRepo.DeleteById(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	s.evict(ctx, id)
	return nil
}

// load 先读缓存，未命中回源并回填
func (s *ProductService) load(ctx context.Context, id uint64) (*models.Product, error) {
	if s.ProductCache != nil {
		cached, err := s.ProductCache.Get(ctx, id)
		if err != nil {
			log.L.Warn("read product cache failed", zap.Uint64("product_id", id), zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	product, err := s.ProductRepo.FindDetail(ctx, id)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if s.ProductCache != nil {
		if err := s.ProductCache.Set(ctx, product); err != nil {
			log.L.Warn("write product cache failed", zap.Uint64("product_id", id), zap.Error(err))
		}
	}
	return product, nil
}

func (s *ProductService) evict(ctx context.Context, id uint64) {
	if s.ProductCache == nil {
		return
	}
	if err := s.ProductCache.Del(ctx, id); err != nil {
		log.L.Warn("evict product cache failed", zap.Uint64("product_id", id), zap.Error(err))
	}
}

func (s *ProductService) check(ctx context.Context, req *types.ProductRequest) error {
	if req.Price.IsNegative() {
		return errs.New(errs.InvalidInput, "price must be non-negative")
	}
	if req.Stock < 0 {
		return errs.New(errs.InvalidInput, "stock must be non-negative")
	}
	if req.LoyaltyPoints < 0 {
		return ErrInvalidPoints
	}
	if req.CategoryID != nil {
		exist, err := s.CategoryRepo.IsExist(ctx, "id = ?", *req.CategoryID)
		if err != nil {
			return err
		}
		if !exist {
			return ErrCategoryNotFound
		}
	}
	return nil
}

func productDetail(p *models.Product) *types.ProductDetail {
	sizes := make([]string, 0, len(p.Sizes))
	for _, v := range p.Sizes {
		sizes = append(sizes, v.Size)
	}
	colors := make([]string, 0, len(p.Colors))
	for _, v := range p.Colors {
		colors = append(colors, v.Name)
	}
	return &types.ProductDetail{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		LoyaltyPoints: p.LoyaltyPoints,
		CoverImage:    p.CoverImage,
		Status:        p.Status,
		Sizes:         sizes,
		Colors:        colors,
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	res := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
