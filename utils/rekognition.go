// utils/rekognition.go
package utils

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

// NewRekognitionClient loads the default AWS credential chain for region.
func NewRekognitionClient(ctx context.Context, region string) (*rekognition.Client, error) {
	if region == "" {
		return nil, errors.New("AWS_REGION not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return rekognition.NewFromConfig(cfg), nil
}
