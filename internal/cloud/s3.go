package cloud

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"threatingest/internal/threat"
)

// Compile-time check: ObjectStore implements threat.ObjectFetcher.
var _ threat.ObjectFetcher = (*ObjectStore)(nil)

// S3GetObjectAPI is the subset of the S3 client used by ObjectStore.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ObjectStore reads indicator files from S3.
type ObjectStore struct {
	api S3GetObjectAPI
}

func NewObjectStore(api S3GetObjectAPI) *ObjectStore {
	return &ObjectStore{api: api}
}

// Fetch returns the full body of the object.
func (s *ObjectStore) Fetch(ctx context.Context, ref threat.ObjectRef) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 GetObject %q/%q: %w", ref.Bucket, ref.Key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object %q/%q: %w", ref.Bucket, ref.Key, err)
	}
	return body, nil
}
