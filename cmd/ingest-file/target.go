package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"threatingest/internal/threat"
)

// parseTarget turns the command argument into an object reference.
// s3://bucket/key names an S3 object; file://path or a bare path names a
// local file, returned with an empty bucket.
func parseTarget(raw string) (ref threat.ObjectRef, local bool, err error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return threat.ObjectRef{}, false, fmt.Errorf("target is required")
	case strings.HasPrefix(raw, "s3://"):
		bucket, key, _ := strings.Cut(strings.TrimPrefix(raw, "s3://"), "/")
		if bucket == "" {
			return threat.ObjectRef{}, false, fmt.Errorf("s3: target missing bucket name")
		}
		if key == "" {
			return threat.ObjectRef{}, false, fmt.Errorf("s3: target missing object key")
		}
		return threat.ObjectRef{Bucket: bucket, Key: key}, false, nil
	case strings.HasPrefix(raw, "file://"):
		return threat.ObjectRef{Key: strings.TrimPrefix(raw, "file://")}, true, nil
	case strings.Contains(raw, "://"):
		return threat.ObjectRef{}, false, fmt.Errorf("unsupported target scheme: %s", raw)
	default:
		return threat.ObjectRef{Key: raw}, true, nil
	}
}

func readLocal(ctx context.Context, ref threat.ObjectRef) ([]byte, error) {
	return os.ReadFile(ref.Key)
}
