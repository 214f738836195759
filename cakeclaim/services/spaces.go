package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SpacesService publishes token metadata documents to a DigitalOcean Space.
type SpacesService struct {
	client       objectStore
	bucket       string
	region       string
	MetadataRoot string
}

// TokenMetadata is the ERC-721 metadata document served at a token's URI.
type TokenMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}

func NewSpacesService(ctx context.Context, spacesKey, spacesSecret, region, bucket, metadataRoot string) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return newSpacesService(s3.NewFromConfig(cfg), region, bucket, metadataRoot), nil
}

func newSpacesService(client objectStore, region, bucket, metadataRoot string) *SpacesService {
	return &SpacesService{
		client:       client,
		bucket:       bucket,
		region:       region,
		MetadataRoot: strings.Trim(metadataRoot, "/"),
	}
}

// MetadataKey is the object key for an entry's metadata document.
func (s *SpacesService) MetadataKey(name string) string {
	file := NormalizeName(name) + ".json"
	if s.MetadataRoot == "" {
		return file
	}
	return s.MetadataRoot + "/" + file
}

func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

// PublishMetadata uploads the entry's metadata document and returns its
// public URL.
func (s *SpacesService) PublishMetadata(ctx context.Context, entry *models.CatalogEntry) (string, error) {
	body, err := json.Marshal(TokenMetadata{
		Name:        entry.Name,
		Description: entry.Description,
		Image:       entry.ImageURI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata for %s: %w", entry.Name, err)
	}

	key := s.MetadataKey(entry.Name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("public, max-age=300"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload metadata (%s): %w", key, err)
	}

	return s.PublicURL(key), nil
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}

// NormalizeName lowercases a name and joins its words with underscores.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
