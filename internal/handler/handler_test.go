package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"threatingest/internal/metrics"
	"threatingest/internal/notify"
	"threatingest/internal/threat"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, ref threat.ObjectRef) (int, error) {
	args := m.Called(ctx, ref)
	return args.Int(0), args.Error(1)
}

func s3Event(bucket, key string) events.S3Event {
	var rec events.S3EventRecord
	rec.S3.Bucket.Name = bucket
	rec.S3.Object.Key = key
	return events.S3Event{Records: []events.S3EventRecord{rec}}
}

func TestHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("success body", func(t *testing.T) {
		r := new(mockRunner)
		r.On("Run", ctx, threat.ObjectRef{Bucket: "b", Key: "feeds/a.json"}).Return(2, nil)

		resp, err := New(r).Handle(ctx, s3Event("b", "feeds/a.json"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"processed":2}`, resp.Body)

		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"statusCode":200,"body":"{\"processed\":2}"}`, string(raw))
	})

	t.Run("malformed event", func(t *testing.T) {
		r := new(mockRunner)
		_, err := New(r).Handle(ctx, events.S3Event{})
		assert.ErrorIs(t, err, threat.ErrMalformedEvent)
		r.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("run failure", func(t *testing.T) {
		r := new(mockRunner)
		r.On("Run", ctx, mock.Anything).Return(1, threat.ErrPersist)

		_, err := New(r).Handle(ctx, s3Event("b", "a.csv"))
		assert.ErrorIs(t, err, threat.ErrPersist)
	})
}

type failingSink struct{}

func (failingSink) PutMetric(ctx context.Context, d metrics.Datum) error {
	return errors.New("cloudwatch unavailable")
}

type recordingChannel struct {
	messages []string
}

func (c *recordingChannel) Publish(ctx context.Context, subject, message string) error {
	c.messages = append(c.messages, message)
	return nil
}

// End to end through the real pipeline: metric emission failures must not
// change the invocation result.
func TestHandler_MetricFailureDoesNotChangeResult(t *testing.T) {
	ctx := context.Background()
	body := "type,value\nip,1.2.3.4\ndomain,\nurl,http://x.test\n"
	fetcher := threat.FetcherFunc(func(ctx context.Context, ref threat.ObjectRef) ([]byte, error) {
		return []byte(body), nil
	})

	run := func(sink metrics.Sink) (Response, *threat.MemoryStore, *recordingChannel) {
		store := threat.NewMemoryStore()
		ch := &recordingChannel{}
		p := threat.NewPipeline(fetcher, store, metrics.NewReporter(sink, ""), notify.NewPublisher(ch))
		resp, err := New(p).Handle(ctx, s3Event("b", "feed.csv"))
		require.NoError(t, err)
		return resp, store, ch
	}

	okResp, _, _ := run(nil)
	failResp, store, ch := run(failingSink{})

	assert.Equal(t, okResp, failResp)
	assert.JSONEq(t, `{"processed":2}`, failResp.Body)
	assert.Equal(t, 2, store.Len())
	require.Len(t, ch.messages, 1)
	assert.Contains(t, ch.messages[0], `"processed_indicators":2`)
}
