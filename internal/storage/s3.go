package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/capstone-archive/backend-go/internal/config"
)

// UploadExpiry is how long a presigned upload URL stays valid
const UploadExpiry = 15 * time.Minute

// AllowedContentTypes lists the document formats accepted for project files
var AllowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/zip": true,
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Upload is a presigned PUT target and the URL the object will be served from
type Upload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Presigner issues upload URLs for project files
type Presigner interface {
	PresignUpload(ctx context.Context, fileName, contentType string) (*Upload, error)
}

// S3Storage presigns uploads against an S3 compatible bucket
type S3Storage struct {
	presign       *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
	logger        *slog.Logger
}

// NewS3Storage builds the presign client from the configuration
func NewS3Storage(ctx context.Context, cfg *appconfig.Config, logger *slog.Logger) (*S3Storage, error) {
	if !cfg.StorageEnabled() {
		return nil, ErrStorageDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("✅ [Storage] S3 presigner ready",
		"bucket", cfg.S3Bucket,
		"region", cfg.S3Region,
		"endpoint", cfg.S3Endpoint,
	)

	return &S3Storage{
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.S3Bucket,
		region:        cfg.S3Region,
		endpoint:      strings.TrimRight(cfg.S3Endpoint, "/"),
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// PresignUpload returns a PUT URL for a new object under projects/
func (s *S3Storage) PresignUpload(ctx context.Context, fileName, contentType string) (*Upload, error) {
	if !AllowedContentTypes[contentType] {
		return nil, ErrUnsupportedContentType
	}

	key := ObjectKey(uuid.NewString(), fileName)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(UploadExpiry))
	if err != nil {
		s.logger.Error("❌ [Storage] Failed to presign upload", "key", key, "error", err)
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	s.logger.Debug("🔗 [Storage] Presigned upload", "key", key)

	return &Upload{
		Key:       key,
		UploadURL: req.URL,
		FileURL:   s.publicURL(key),
		ExpiresIn: int64(UploadExpiry.Seconds()),
	}, nil
}

func (s *S3Storage) publicURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/" + escaped
	case s.endpoint != "":
		return s.endpoint + "/" + s.bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
	}
}

// ObjectKey places a sanitized file name under a unique prefix
func ObjectKey(prefix, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.Trim(unsafeKeyChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "file"
	}
	return "projects/" + prefix + "/" + base
}

// Storage errors
var (
	ErrStorageDisabled        = errors.New("file storage is not configured")
	ErrUnsupportedContentType = errors.New("unsupported file type")
)
