package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	region            = "auto"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

type S3 interface {
	Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader, size int64) (url string, err error)
	Delete(ctx context.Context, objectKey string) error
	ObjectKeyFromURL(url string) string
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

// New returns a client that fails every call with ErrStorageDisabled when no endpoint is configured.
func New(cfg *config.Config, otl otel.Otel) S3 {
	settings := cfg.External.S3

	if settings.APIEndpoint == "" {
		log.Info().Msg("S3 endpoint not set, room image upload disabled")

		return disabled{}
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
		awsConfig.WithRegion(region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(settings.APIEndpoint)
		o.UsePathStyle = true
	})

	publicDomain := settings.PublicDomain
	if publicDomain == "" {
		publicDomain = strings.TrimRight(settings.APIEndpoint, "/") + "/" + settings.BucketName
	}

	return &s3Impl{
		client:       client,
		bucket:       settings.BucketName,
		publicDomain: strings.TrimRight(publicDomain, "/"),
		otel:         otl,
	}
}

func (svc *s3Impl) Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader, size int64) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicDomain + "/" + objectKey, nil
}

func (svc *s3Impl) Delete(ctx context.Context, objectKey string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectKeyFromURL returns the object key of a URL produced by Upload, or empty for foreign URLs.
func (svc *s3Impl) ObjectKeyFromURL(url string) string {
	key, found := strings.CutPrefix(url, svc.publicDomain+"/")
	if !found {
		return constant.Empty
	}

	return key
}

type disabled struct{}

func (disabled) Upload(context.Context, string, string, string, io.Reader, int64) (string, error) {
	return constant.Empty, ErrStorageDisabled
}

func (disabled) Delete(context.Context, string) error {
	return ErrStorageDisabled
}

func (disabled) ObjectKeyFromURL(string) string {
	return constant.Empty
}
