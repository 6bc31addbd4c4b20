package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageBytes caps uploads and remote fetches.
const MaxImageBytes = 10 << 20

const presignExpiry = 15 * time.Minute

var (
	errStorageDisabled  = apperrors.New(http.StatusServiceUnavailable, "Media storage not configured", nil)
	errUnsupportedImage = apperrors.BadRequest("Unsupported image format")
	errImageTooLarge    = apperrors.BadRequest("Image exceeds 10MB limit")
)

// ObjectStore is the blob backend. *aws_pkg.S3Storage satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, map[string]string, error)
}

// MediaService stores product and category images.
type MediaService interface {
	UploadImage(ctx context.Context, body io.Reader) (*models.UploadResult, error)
	UploadFromURL(ctx context.Context, req *models.ImageURLRequest) (*models.UploadResult, error)
	PresignImage(ctx context.Context, req *models.PresignRequest) (*models.PresignResult, error)
}

type mediaServiceImpl struct {
	store         ObjectStore
	folder        string
	publicBaseURL string
	httpClient    *http.Client
	validator     *RequestValidator
	logger        *zap.Logger
}

// NewMediaService creates a MediaService. A nil store disables uploads.
func NewMediaService(store ObjectStore, folder, publicBaseURL string, logger *zap.Logger) MediaService {
	return &mediaServiceImpl{
		store:         store,
		folder:        strings.Trim(folder, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		validator:     NewRequestValidator(),
		logger:        logger,
	}
}

func (s *mediaServiceImpl) UploadImage(ctx context.Context, body io.Reader) (*models.UploadResult, error) {
	if s.store == nil {
		return nil, errStorageDisabled
	}
	data, err := io.ReadAll(io.LimitReader(body, MaxImageBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(err, http.StatusBadRequest, "Failed to read upload")
	}
	return s.persist(ctx, data)
}

func (s *mediaServiceImpl) UploadFromURL(ctx context.Context, req *models.ImageURLRequest) (*models.UploadResult, error) {
	if s.store == nil {
		return nil, errStorageDisabled
	}
	if err := s.validator.Check(req, "Invalid image URL"); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.ImageURL, nil)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid image URL")
	}
	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.Warn("Image fetch failed", zap.String("url", req.ImageURL), zap.Error(err))
		return nil, apperrors.Wrap(err, http.StatusBadGateway, "Failed to fetch image")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(http.StatusBadGateway, fmt.Sprintf("Failed to fetch image: status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(err, http.StatusBadGateway, "Failed to fetch image")
	}
	return s.persist(ctx, data)
}

func (s *mediaServiceImpl) persist(ctx context.Context, data []byte) (*models.UploadResult, error) {
	if len(data) > MaxImageBytes {
		return nil, errImageTooLarge
	}

	contentType := http.DetectContentType(data)
	result := &models.UploadResult{}
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		result.Width, result.Height, result.Format = cfg.Width, cfg.Height, format
	} else if contentType == "image/webp" {
		result.Format = "webp"
	} else {
		return nil, errUnsupportedImage
	}

	result.PublicID = s.newKey(result.Format)
	location, err := s.store.Upload(ctx, result.PublicID, contentType, bytes.NewReader(data))
	if err != nil {
		s.logger.Error("Image upload failed", zap.String("key", result.PublicID), zap.Error(err))
		return nil, apperrors.Wrap(err, http.StatusInternalServerError, "Upload failed")
	}
	result.URL = s.publicURL(result.PublicID, location)

	s.logger.Info("Image uploaded",
		zap.String("key", result.PublicID),
		zap.Int("bytes", len(data)),
		zap.String("format", result.Format),
	)
	return result, nil
}

func (s *mediaServiceImpl) PresignImage(ctx context.Context, req *models.PresignRequest) (*models.PresignResult, error) {
	if s.store == nil {
		return nil, errStorageDisabled
	}
	if err := s.validator.Check(req, "Invalid presign request"); err != nil {
		return nil, err
	}

	key := s.newKey(strings.TrimPrefix(req.ContentType, "image/"))
	uploadURL, headers, err := s.store.PresignPut(ctx, key, req.ContentType, presignExpiry)
	if err != nil {
		s.logger.Error("Presign failed", zap.String("key", key), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return &models.PresignResult{
		UploadURL: uploadURL,
		Headers:   headers,
		PublicID:  key,
		URL:       s.publicURL(key, ""),
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

func (s *mediaServiceImpl) newKey(format string) string {
	if format == "jpeg" {
		format = "jpg"
	}
	return path.Join(s.folder, uuid.NewString()+"."+format)
}

// publicURL prefers the configured CDN base over the S3 location.
func (s *mediaServiceImpl) publicURL(key, location string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return location
}
