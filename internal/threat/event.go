package threat

import (
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// ObjectRefFromEvent extracts the bucket and object key from the first
// record of an S3 notification. Keys arrive URL-encoded and are decoded;
// a key that does not decode is used as-is.
func ObjectRefFromEvent(evt events.S3Event) (ObjectRef, error) {
	if len(evt.Records) == 0 {
		return ObjectRef{}, fmt.Errorf("%w: no records", ErrMalformedEvent)
	}
	rec := evt.Records[0].S3
	if rec.Bucket.Name == "" {
		return ObjectRef{}, fmt.Errorf("%w: missing bucket name", ErrMalformedEvent)
	}
	if rec.Object.Key == "" {
		return ObjectRef{}, fmt.Errorf("%w: missing object key", ErrMalformedEvent)
	}

	key := rec.Object.Key
	if decoded, err := url.QueryUnescape(key); err == nil {
		key = decoded
	}
	return ObjectRef{Bucket: rec.Bucket.Name, Key: key}, nil
}
