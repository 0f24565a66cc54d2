package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/questify-api/internal/domain"
)

// BatchGetItem accepts at most 100 keys per request.
const batchGetLimit = 100

const maxUnprocessedRetries = 3

// TodoRepo stores todo items and keeps the owner's ordered id list in sync.
type TodoRepo struct {
	client        API
	tableName     string
	accountsTable string
}

func NewTodoRepo(client API, tableName, accountsTable string) *TodoRepo {
	return &TodoRepo{client: client, tableName: tableName, accountsTable: accountsTable}
}

// Create writes the todo and appends its id to the owner's list atomically.
func (r *TodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal todo: %w", err)
	}
	updatedAt, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("marshal timestamp: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(todo_id)"),
			}},
			{Update: &types.Update{
				TableName:           aws.String(r.accountsTable),
				Key:                 strKey(attrAccountID, t.OwnerID),
				UpdateExpression:    aws.String("SET #ids = list_append(if_not_exists(#ids, :empty), :id), #u = :u"),
				ConditionExpression: aws.String("attribute_exists(account_id)"),
				ExpressionAttributeNames: map[string]string{
					"#ids": attrOwnedItemIDs,
					"#u":   attrUpdatedAt,
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
					":id": &types.AttributeValueMemberL{Value: []types.AttributeValue{
						&types.AttributeValueMemberS{Value: t.TodoID},
					}},
					":u": updatedAt,
				},
			}},
		},
	})
	if err == nil {
		return nil
	}
	if failedCondition(err) == 1 {
		return domain.WrapError(domain.ErrNotFound, "account not found", err)
	}
	return fmt.Errorf("create todo: %w", err)
}

// ListByIDs returns the todos for ids in the same order. Ids with no stored
// item are skipped.
func (r *TodoRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Todo, error) {
	byID := make(map[string]domain.Todo, len(ids))
	for start := 0; start < len(ids); start += batchGetLimit {
		end := min(start+batchGetLimit, len(ids))
		if err := r.batchGet(ctx, ids[start:end], byID); err != nil {
			return nil, err
		}
	}
	todos := make([]domain.Todo, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

func (r *TodoRepo) batchGet(ctx context.Context, ids []string, into map[string]domain.Todo) error {
	seen := make(map[string]bool, len(ids))
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, strKey(attrTodoID, id))
	}
	request := map[string]types.KeysAndAttributes{
		r.tableName: {Keys: keys},
	}
	for attempt := 0; len(request) > 0; attempt++ {
		if attempt > maxUnprocessedRetries {
			return fmt.Errorf("batch get todos: unprocessed keys remain after %d retries", maxUnprocessedRetries)
		}
		out, err := r.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return fmt.Errorf("batch get todos: %w", err)
		}
		var page []domain.Todo
		if err := attributevalue.UnmarshalListOfMaps(out.Responses[r.tableName], &page); err != nil {
			return fmt.Errorf("unmarshal todos: %w", err)
		}
		for _, t := range page {
			into[t.TodoID] = t
		}
		request = out.UnprocessedKeys
	}
	return nil
}
