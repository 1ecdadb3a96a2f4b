package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/pkg/errs"
	"Storefront/pkg/log"
	"Storefront/pkg/snowflake"
	"Storefront/types"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const maxImageSize int64 = 5 << 20 // 5MB

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var _ ObjectStorage = (*OssStorage)(nil)

// ObjectStorage 对象存储上传
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	URL(key string) string
}

// OssStorage 阿里云 OSS
type OssStorage struct {
	Client  *oss.Client
	Bucket  string
	BaseURL string
}

func NewOssStorage(client *oss.Client, cfg *config.OssConfig) *OssStorage {
	return &OssStorage{
		Client:  client,
		Bucket:  cfg.Bucket,
		BaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

func (o *OssStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := o.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(o.Bucket),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(contentType),
		Body:        body,
	})
	return err
}

func (o *OssStorage) URL(key string) string {
	return o.BaseURL + "/" + key
}

var _ IImageService = (*ImageService)(nil)

type IImageService interface {
	UploadProductCover(ctx context.Context, productID uint64, header *multipart.FileHeader) (*types.UploadImageResp, error)
}

type ImageService struct {
	Storage      ObjectStorage
	ProductRepo  *dao.Product
	ProductCache *cache.ProductCache
}

func (s *ImageService) UploadProductCover(ctx context.Context, productID uint64, header *multipart.FileHeader) (*types.UploadImageResp, error) {
	if header == nil {
		return nil, errs.New(errs.InvalidInput, "missing image")
	}
	// header.Size 不可信，只做第一道拦截
	if header.Size <= 0 || header.Size > maxImageSize {
		return nil, errs.New(errs.InvalidInput, "image size invalid")
	}
	if _, err := s.ProductRepo.FindById(ctx, productID); err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contentType, format, cfg, err := inspectImage(f)
	if err != nil {
		return nil, err
	}

	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("product/%s/%d%s", time.Now().Format("2006/01/02"), snowflake.GenID(), ext)
	if err := s.Storage.Put(ctx, key, contentType, io.LimitReader(f, maxImageSize+1)); err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}

	url := s.Storage.URL(key)
	if _, err := s.ProductRepo.UpdateById(ctx, productID, map[string]any{"cover_image": url}); err != nil {
		return nil, err
	}
	if s.ProductCache != nil {
		if err := s.ProductCache.Del(ctx, productID); err != nil {
			log.L.Warn("evict product cache failed", zap.Uint64("product_id", productID), zap.Error(err))
		}
	}
	return &types.UploadImageResp{Url: url, Width: cfg.Width, Height: cfg.Height}, nil
}

// inspectImage 校验 MIME 与图片头，结束后 reader 回到起点
func inspectImage(r io.ReadSeeker) (string, string, image.Config, error) {
	head := make([]byte, 512)
	n, _ := io.ReadFull(r, head)
	contentType := http.DetectContentType(head[:n])
	if !allowedMime[contentType] {
		return "", "", image.Config{}, ErrInvalidImage
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", "", image.Config{}, err
	}

	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", "", image.Config{}, ErrInvalidImage
	}
	format = strings.ToLower(format)
	if format != "jpeg" && format != "png" && format != "webp" {
		return "", "", image.Config{}, ErrInvalidImage
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", "", image.Config{}, err
	}
	return contentType, format, cfg, nil
}
