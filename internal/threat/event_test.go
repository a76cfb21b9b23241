package threat

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEvent = `{
  "Records": [{
    "eventSource": "aws:s3",
    "eventName": "ObjectCreated:Put",
    "s3": {
      "bucket": {"name": "intel-drop"},
      "object": {"key": "feeds/daily+report%282%29.csv", "size": 120}
    }
  }]
}`

func TestObjectRefFromEvent(t *testing.T) {
	t.Run("notification payload", func(t *testing.T) {
		var evt events.S3Event
		require.NoError(t, json.Unmarshal([]byte(sampleEvent), &evt))

		ref, err := ObjectRefFromEvent(evt)
		require.NoError(t, err)
		assert.Equal(t, "intel-drop", ref.Bucket)
		assert.Equal(t, "feeds/daily report(2).csv", ref.Key)
		assert.Equal(t, "s3://intel-drop/feeds/daily report(2).csv", ref.String())
	})

	t.Run("undecodable key is kept", func(t *testing.T) {
		evt := s3Event("b", "feeds/100%.csv")
		ref, err := ObjectRefFromEvent(evt)
		require.NoError(t, err)
		assert.Equal(t, "feeds/100%.csv", ref.Key)
	})

	t.Run("malformed", func(t *testing.T) {
		for name, evt := range map[string]events.S3Event{
			"no records":     {},
			"missing bucket": s3Event("", "a.json"),
			"missing key":    s3Event("b", ""),
		} {
			_, err := ObjectRefFromEvent(evt)
			assert.ErrorIs(t, err, ErrMalformedEvent, name)
		}
	})
}

func s3Event(bucket, key string) events.S3Event {
	var rec events.S3EventRecord
	rec.S3.Bucket.Name = bucket
	rec.S3.Object.Key = key
	return events.S3Event{Records: []events.S3EventRecord{rec}}
}
