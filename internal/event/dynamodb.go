package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoRepository stores queues in a DynamoDB table keyed by
// (player_key, event_id). Events serialize as JSON blobs so the table schema
// never chases the payload shapes.
type DynamoRepository struct {
	client *dynamodb.Client
	table  string
}

// record is the DynamoDB row shape
type record struct {
	PlayerKey string `dynamodbav:"player_key"`
	EventID   string `dynamodbav:"event_id"`
	CreatedAt int64  `dynamodbav:"created_at"`
	Payload   string `dynamodbav:"payload"`
}

// NewDynamoRepository creates a repository over the given table, loading AWS
// configuration from the environment.
func NewDynamoRepository(ctx context.Context, table string) (*DynamoRepository, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &DynamoRepository{client: dynamodb.NewFromConfig(cfg), table: table}, nil
}

// NewDynamoRepositoryWithClient creates a repository over an existing client,
// for tests and custom endpoints.
func NewDynamoRepositoryWithClient(client *dynamodb.Client, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Append(ctx context.Context, playerKey string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	item, err := attributevalue.MarshalMap(record{
		PlayerKey: playerKey,
		EventID:   ev.ID,
		CreatedAt: ev.Time.UnixNano(),
		Payload:   string(payload),
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	return nil
}

func (r *DynamoRepository) Get(ctx context.Context, playerKey string) ([]Event, error) {
	records, err := r.query(ctx, playerKey)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt < records[j].CreatedAt
	})

	events := make([]Event, 0, len(records))
	for _, rec := range records {
		var ev Event
		if err := json.Unmarshal([]byte(rec.Payload), &ev); err != nil {
			return nil, fmt.Errorf("unmarshal event %s: %w", rec.EventID, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, playerKey string) error {
	records, err := r.query(ctx, playerKey)
	if err != nil {
		return err
	}

	for _, rec := range records {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.table),
			Key: map[string]types.AttributeValue{
				"player_key": &types.AttributeValueMemberS{Value: rec.PlayerKey},
				"event_id":   &types.AttributeValueMemberS{Value: rec.EventID},
			},
		})
		if err != nil {
			return fmt.Errorf("delete event %s: %w", rec.EventID, err)
		}
	}
	return nil
}

// query fetches all rows for a player key, following pagination
func (r *DynamoRepository) query(ctx context.Context, playerKey string) ([]record, error) {
	var records []record
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.table),
			KeyConditionExpression: aws.String("player_key = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: playerKey},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query events: %w", err)
		}

		var page []record
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal records: %w", err)
		}
		records = append(records, page...)

		if out.LastEvaluatedKey == nil {
			return records, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
