package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"threatingest/internal/threat"
)

var _ threat.IndicatorStore = (*IndicatorTable)(nil)

// DynamoPutItemAPI is the subset of the DynamoDB client used by IndicatorTable.
type DynamoPutItemAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// IndicatorTable writes indicators to a DynamoDB table whose partition key
// is indicator_value. Writes are unconditional: the last one wins.
type IndicatorTable struct {
	api   DynamoPutItemAPI
	table string
}

func NewIndicatorTable(api DynamoPutItemAPI, table string) *IndicatorTable {
	return &IndicatorTable{api: api, table: table}
}

func (t *IndicatorTable) Put(ctx context.Context, ind threat.Indicator) error {
	item, err := attributevalue.MarshalMap(ind)
	if err != nil {
		return fmt.Errorf("marshal indicator %q: %w", ind.Value, err)
	}
	_, err = t.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem %s: %w", t.table, err)
	}
	return nil
}
