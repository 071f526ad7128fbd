package recognition

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rekogtypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// Rekognition wraps the AWS face-detection client used to screen uploaded
// caso images.
type Rekognition struct {
	client *rekognition.Client
}

func New(client *rekognition.Client) *Rekognition {
	return &Rekognition{client: client}
}

type FaceDetection struct {
	FacesCount int                     `json:"faces_count"`
	Faces      []rekogtypes.FaceDetail `json:"faces"`
}

func (r *Rekognition) DetectFaces(ctx context.Context, image []byte) (*FaceDetection, error) {
	out, err := r.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &rekogtypes.Image{Bytes: image},
		Attributes: []rekogtypes.Attribute{rekogtypes.AttributeAll},
	})
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	return &FaceDetection{
		FacesCount: len(out.FaceDetails),
		Faces:      out.FaceDetails,
	}, nil
}

type FaceComparison struct {
	Matches    int     `json:"matches"`
	Similarity float32 `json:"similarity"`
}

// CompareFaces reports whether the target image contains the face from the
// source image, at or above the given similarity threshold.
func (r *Rekognition) CompareFaces(ctx context.Context, source, target []byte, threshold float32) (*FaceComparison, error) {
	out, err := r.client.CompareFaces(ctx, &rekognition.CompareFacesInput{
		SourceImage:         &rekogtypes.Image{Bytes: source},
		TargetImage:         &rekogtypes.Image{Bytes: target},
		SimilarityThreshold: &threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("compare faces: %w", err)
	}

	result := &FaceComparison{Matches: len(out.FaceMatches)}
	for _, m := range out.FaceMatches {
		if m.Similarity != nil && *m.Similarity > result.Similarity {
			result.Similarity = *m.Similarity
		}
	}

	return result, nil
}
