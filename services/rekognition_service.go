package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

var ErrRecognitionNotConfigured = errors.New("label recognition not configured")

const (
	maxLabels          = 10
	minLabelConfidence = 75
)

// LabelDetector is the part of the Rekognition client we use.
type LabelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // percent, as reported by Rekognition
}

type RekognitionService struct {
	client LabelDetector
}

func NewRekognitionService(client LabelDetector) *RekognitionService {
	return &RekognitionService{client: client}
}

// RecognizeLabels returns the top labels for raw image bytes (JPEG or PNG).
func (r *RekognitionService) RecognizeLabels(ctx context.Context, image []byte) ([]Label, error) {
	if r == nil || r.client == nil {
		return nil, ErrRecognitionNotConfigured
	}
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(maxLabels),
		MinConfidence: aws.Float32(minLabelConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition DetectLabels failed: %w", err)
	}

	labels := make([]Label, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		labels = append(labels, Label{
			Name:       aws.ToString(l.Name),
			Confidence: float64(aws.ToFloat32(l.Confidence)),
		})
	}
	return labels, nil
}
