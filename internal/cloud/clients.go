// Package cloud adapts AWS services to the ingestion pipeline's
// collaborator interfaces.
package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"threatingest/internal/config"
)

// Clients is the process-wide bundle of service clients. It is built once
// at start-up and shared by every invocation.
type Clients struct {
	S3         *s3.Client
	DynamoDB   *dynamodb.Client
	SNS        *sns.Client
	CloudWatch *cloudwatch.Client
}

// NewClients loads the default AWS configuration, applying the region,
// endpoint and static credentials from cfg when they are set.
func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var endpoint *string
	if cfg.AWSEndpoint != "" {
		endpoint = aws.String(cfg.AWSEndpoint)
	}

	return &Clients{
		S3: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if endpoint != nil {
				o.BaseEndpoint = endpoint
				o.UsePathStyle = true // LocalStack and most S3-compatible stores
			}
		}),
		DynamoDB: dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = endpoint
		}),
		SNS: sns.NewFromConfig(awsCfg, func(o *sns.Options) {
			o.BaseEndpoint = endpoint
		}),
		CloudWatch: cloudwatch.NewFromConfig(awsCfg, func(o *cloudwatch.Options) {
			o.BaseEndpoint = endpoint
		}),
	}, nil
}
