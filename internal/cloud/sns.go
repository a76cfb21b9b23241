package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"threatingest/internal/notify"
)

var _ notify.Channel = (*Topic)(nil)

// SNSPublishAPI is the subset of the SNS client used by Topic.
type SNSPublishAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Topic publishes messages to one SNS topic.
type Topic struct {
	api SNSPublishAPI
	arn string
}

func NewTopic(api SNSPublishAPI, arn string) *Topic {
	return &Topic{api: api, arn: arn}
}

func (t *Topic) Publish(ctx context.Context, subject, message string) error {
	_, err := t.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(t.arn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("sns Publish %s: %w", t.arn, err)
	}
	return nil
}
