package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

// Config options for the S3 asset store
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	PublicBaseURL   string // Optional CDN/base URL override for issued asset URLs
}

// Store is an S3-compatible implementation of the bookvault.AssetStore
// interface. Assets are stored under extensionless public keys plus their
// format extension; the issued URL is durable and carries the full object
// path, so objectkey.Derive can recover the key later.
type Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	config   Config
}

// New creates a new S3-compatible asset store
func New(config Config) (*Store, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   config.Bucket,
		config:   config,
	}, nil
}

// Upload pushes the file at localPath to S3 and returns its durable URL.
func (s *Store) Upload(ctx context.Context, localPath string, params bookvault.UploadParams) (*bookvault.UploadResult, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer file.Close()

	objectKey := objectKeyFor(params)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   file,
	}
	if contentType := mime.TypeByExtension("." + params.Format); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	return &bookvault.UploadResult{SecureURL: s.publicURL(objectKey)}, nil
}

// Destroy removes the asset addressed by its extensionless storage key. The
// stored object carries a format extension the key does not, so matching
// objects are found by prefix before deletion.
func (s *Store) Destroy(ctx context.Context, key string, resourceType bookvault.ResourceType) error {
	listed, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(key + "."),
	})
	if err != nil {
		return fmt.Errorf("failed to locate object %s: %w", key, classify(err))
	}
	if len(listed.Contents) == 0 {
		return fmt.Errorf("object not found for key %s", key)
	}

	for _, object := range listed.Contents {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    object.Key,
		})
		if err != nil {
			return fmt.Errorf("failed to delete object %s: %w", aws.ToString(object.Key), classify(err))
		}
	}
	return nil
}

// objectKeyFor builds the full object key: folder/name.format, where name is
// the filename override with any client-supplied extension stripped.
func objectKeyFor(params bookvault.UploadParams) string {
	name := sanitizeFilename(params.FilenameOverride)
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	return fmt.Sprintf("%s/%s.%s", params.Folder, name, params.Format)
}

// publicURL returns the durable URL issued for an object key.
func (s *Store) publicURL(objectKey string) string {
	if s.config.PublicBaseURL != "" {
		return strings.TrimSuffix(s.config.PublicBaseURL, "/") + "/" + objectKey
	}
	if s.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.config.Endpoint, "/"), s.bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.config.Region, objectKey)
}

// classify surfaces the service error code when the SDK returns one.
func classify(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err
}

func sanitizeFilename(filename string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(filename)
}
