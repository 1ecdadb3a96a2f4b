package service

import (
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/log"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Put(_ context.Context, key, _ string, body io.Reader) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = b
	return nil
}

func (m *memStorage) URL(key string) string {
	return "https://cdn.example.com/" + key
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(10 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestInspectImage(t *testing.T) {
	contentType, format, cfg, err := inspectImage(bytes.NewReader(pngBytes(t, 4, 3)))
	if err != nil {
		t.Fatalf("inspect png: %v", err)
	}
	if contentType != "image/png" || format != "png" || cfg.Width != 4 || cfg.Height != 3 {
		t.Fatalf("unexpected result %s %s %dx%d", contentType, format, cfg.Width, cfg.Height)
	}

	if _, _, _, err := inspectImage(strings.NewReader("definitely not an image")); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
	// 文件头是 PNG 但内容截断
	truncated := pngBytes(t, 4, 3)[:20]
	if _, _, _, err := inspectImage(bytes.NewReader(truncated)); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage for truncated png, got %v", err)
	}
}

func TestUploadProductCover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "10.00", 1, 0)

	storage := &memStorage{objects: map[string][]byte{}}
	svc := &ImageService{Storage: storage, ProductRepo: dao.NewProduct(env.db)}

	content := pngBytes(t, 8, 8)
	res, err := svc.UploadProductCover(ctx, product.ID, fileHeader(t, "cover.png", content))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.Width != 8 || res.Height != 8 || !strings.HasSuffix(res.Url, ".png") {
		t.Fatalf("unexpected response %+v", res)
	}
	if len(storage.objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(storage.objects))
	}
	for key, body := range storage.objects {
		if !strings.HasPrefix(key, "product/") || !bytes.Equal(body, content) {
			t.Fatalf("unexpected object %s (%d bytes)", key, len(body))
		}
	}

	var stored models.Product
	if err := env.db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.CoverImage != res.Url {
		t.Fatalf("expected cover %s, got %s", res.Url, stored.CoverImage)
	}

	if _, err := svc.UploadProductCover(ctx, product.ID, fileHeader(t, "notes.txt", []byte("hello"))); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
	if _, err := svc.UploadProductCover(ctx, 9999, fileHeader(t, "cover.png", content)); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestUploadProductCover_EvictFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := log.L
	log.L = zap.New(core)
	t.Cleanup(func() { log.L = prev })

	env := newTestEnv(t)
	product := env.createProduct(t, "10.00", 1, 0)
	rds := redis.NewClient(&redis.Options{Addr: env.redis.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	svc := &ImageService{
		Storage:      &memStorage{objects: map[string][]byte{}},
		ProductRepo:  dao.NewProduct(env.db),
		ProductCache: cache.NewProductCache(rds),
	}

	env.redis.SetError("LOADING redis is loading")
	defer env.redis.SetError("")
	if _, err := svc.UploadProductCover(context.Background(), product.ID, fileHeader(t, "cover.png", pngBytes(t, 2, 2))); err != nil {
		t.Fatalf("upload should not fail on cache errors: %v", err)
	}
	if n := logs.FilterMessage("evict product cache failed").Len(); n != 1 {
		t.Fatalf("expected 1 eviction warning, got %d", n)
	}
}
