package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/planner/internal/dto"
	"github.com/dmitrijs2005/planner/internal/server/config"
	"github.com/dmitrijs2005/planner/internal/server/repositories/repomanager"
)

const contentKeyField = "content_key"

// Seams over the AWS SDK, replaced in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ContentService hands out presigned PUT URLs for document files. The key is
// recorded on the document before the URL is returned.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ContentService {
	return &ContentService{db: db, repomanager: m, config: cfg}
}

func storageKey(ownerID, externalID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("users/%s/documents/%d/%02d/%s/%s", ownerID, d.Year(), d.Month(), externalID, uuid.NewString())
}

func (s *ContentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})
	return newS3PresignClient(client), nil
}

// PresignUpload returns a PUT URL for the content of an existing document.
// Unknown documents yield common.ErrorNotFound.
func (s *ContentService) PresignUpload(ctx context.Context, ownerID, externalID string) (*dto.ContentURL, error) {
	repo := s.repomanager.Records(s.db)
	if _, err := repo.Get(ctx, ownerID, KindDocuments, externalID); err != nil {
		return nil, err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := storageKey(ownerID, externalID)
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ContentURLValidityDuration))
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}

	if err := repo.SetField(ctx, ownerID, KindDocuments, externalID, contentKeyField, key); err != nil {
		return nil, err
	}
	return &dto.ContentURL{URL: req.URL, Key: key}, nil
}
