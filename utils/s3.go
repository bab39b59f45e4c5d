package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const MaxImageBytes = 5 << 20

var ErrInvalidImage = errors.New("invalid image")

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ImageUploader struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

func NewImageUploader(client ObjectPutter, bucket, baseURL string) *ImageUploader {
	return &ImageUploader{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewS3ImageUploader loads the default AWS credential chain for region.
// When baseURL is empty the bucket's virtual-hosted URL is used.
func NewS3ImageUploader(ctx context.Context, bucket, region, baseURL string) (*ImageUploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return NewImageUploader(s3.NewFromConfig(cfg), bucket, baseURL), nil
}

// DecodeDataURL splits "data:<mime>;base64,<data>" into its content type
// and decoded bytes. Only image/* types are accepted.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	meta, data, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("%w: expected a base64 data URL", ErrInvalidImage)
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidImage, contentType)
	}
	if base64.StdEncoding.DecodedLen(len(data)) > MaxImageBytes {
		return "", nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxImageBytes)
	}

	img, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(img) == 0 {
		return "", nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	return contentType, img, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok {
		return "." + sub
	}
	return ""
}

// Upload stores a data-URL image and returns its public URL.
func (u *ImageUploader) Upload(ctx context.Context, dataURL string) (string, error) {
	contentType, img, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := "food-images/" + uuid.NewString() + extensionFor(contentType)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return u.baseURL + "/" + key, nil
}
