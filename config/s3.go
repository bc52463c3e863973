package config

import (
	"fmt"
	"os"
)

type S3Config struct {
	BucketName string
	Region     string
}

// GetS3Config reads the optional publish target. When VIDEO_BUCKET is unset
// the final video stays local and no publisher is wired.
func GetS3Config() (*S3Config, error) {
	bucketName := os.Getenv("VIDEO_BUCKET")
	if bucketName == "" {
		return nil, nil
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		return nil, fmt.Errorf("AWS_REGION must be set when VIDEO_BUCKET is set")
	}

	return &S3Config{
		BucketName: bucketName,
		Region:     region,
	}, nil
}
