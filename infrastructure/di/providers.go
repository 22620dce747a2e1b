package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"memories-backend/application/ports"
	"memories-backend/application/services"
	"memories-backend/infrastructure/config"
	"memories-backend/infrastructure/messaging/eventbridge"
	ddb "memories-backend/infrastructure/persistence/dynamodb"
	s3store "memories-backend/infrastructure/storage/s3"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	MemoryRepo     ports.MemoryRepository
	BlobStore      ports.BlobStore
	EventPublisher ports.EventPublisher
	MemoryService  *services.MemoryService
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideS3PresignClient creates an S3 presign client
func ProvideS3PresignClient(client *awss3.Client) *awss3.PresignClient {
	return awss3.NewPresignClient(client)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideMemoryRepository creates the record store adapter
func ProvideMemoryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.MemoryRepository {
	return ddb.NewMemoryRepository(client, cfg.MemoriesTable, logger)
}

// ProvideBlobStore creates the blob store adapter
func ProvideBlobStore(client *awss3.Client, presign *awss3.PresignClient, cfg *config.Config, logger *zap.Logger) ports.BlobStore {
	return s3store.NewBlobStore(client, presign, cfg.BucketName, cfg.MediaBaseURL, logger)
}

// ProvideEventPublisher creates the lifecycle event publisher. Without a
// configured bus, events are discarded.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoopPublisher()
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMemoryService creates the memory application service
func ProvideMemoryService(
	repo ports.MemoryRepository,
	blobs ports.BlobStore,
	publisher ports.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *services.MemoryService {
	return services.NewMemoryService(repo, blobs, publisher, cfg.UploadURLTTL, logger)
}
