package config

import (
	"context"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/samaj-network/app-directory/internal/logging"
	"go.uber.org/zap"
)

var (
	// Minio client for the photo bucket
	Minio *minio.Client
)

// InitMinio initializes the object storage connection and ensures the photo
// bucket exists.
func InitMinio() {
	client, err := minio.New(AppConfig.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(AppConfig.MinioAccessKey, AppConfig.MinioSecretKey, ""),
		Secure: AppConfig.MinioUseSSL,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, AppConfig.PhotoBucket)
	if err != nil {
		logging.Logger.Error("failed to check photo bucket",
			zap.String("bucket", AppConfig.PhotoBucket),
			zap.Error(err))
	} else if !exists {
		if err := client.MakeBucket(ctx, AppConfig.PhotoBucket, minio.MakeBucketOptions{}); err != nil {
			logging.Logger.Error("failed to create photo bucket",
				zap.String("bucket", AppConfig.PhotoBucket),
				zap.Error(err))
		} else {
			logging.Logger.Info("created photo bucket",
				zap.String("bucket", AppConfig.PhotoBucket))
		}
	}

	Minio = client

	logging.Logger.Info("connected to object storage",
		zap.String("endpoint", AppConfig.MinioEndpoint),
		zap.String("bucket", AppConfig.PhotoBucket))
}
