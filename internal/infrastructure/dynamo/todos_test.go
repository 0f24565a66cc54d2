package dynamo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/questify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func todoItem(t *testing.T, id string) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(domain.Todo{TodoID: id, Title: "todo " + id})
	require.NoError(t, err)
	return item
}

func TestTodoCreate_AppendsToOwnerInSameTransaction(t *testing.T) {
	api := &mockAPI{}
	var got *dynamodb.TransactWriteItemsInput
	api.On("TransactWriteItems", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
		Return(&dynamodb.TransactWriteItemsOutput{}, nil)

	repo := NewTodoRepo(api, "todos", "accounts")
	require.NoError(t, repo.Create(context.Background(), &domain.Todo{TodoID: "t1", OwnerID: "acc1"}))

	require.Len(t, got.TransactItems, 2)
	assert.Equal(t, "todos", aws.ToString(got.TransactItems[0].Put.TableName))
	upd := got.TransactItems[1].Update
	assert.Equal(t, "accounts", aws.ToString(upd.TableName))
	assert.Equal(t, strKey(attrAccountID, "acc1"), upd.Key)
	assert.Contains(t, aws.ToString(upd.UpdateExpression), "list_append")
}

func TestTodoCreate_MissingOwner(t *testing.T) {
	api := &mockAPI{}
	api.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled("None", "ConditionalCheckFailed"))

	err := NewTodoRepo(api, "todos", "accounts").Create(context.Background(), &domain.Todo{TodoID: "t1", OwnerID: "gone"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTodoListByIDs_PreservesOrderAndRetriesUnprocessed(t *testing.T) {
	api := &mockAPI{}
	api.On("BatchGetItem", mock.Anything, mock.Anything).Return(&dynamodb.BatchGetItemOutput{
		Responses: map[string][]map[string]types.AttributeValue{
			"todos": {todoItem(t, "t3"), todoItem(t, "t1")},
		},
		UnprocessedKeys: map[string]types.KeysAndAttributes{
			"todos": {Keys: []map[string]types.AttributeValue{strKey(attrTodoID, "t2")}},
		},
	}, nil).Once()
	api.On("BatchGetItem", mock.Anything, mock.Anything).Return(&dynamodb.BatchGetItemOutput{
		Responses: map[string][]map[string]types.AttributeValue{
			"todos": {todoItem(t, "t2")},
		},
	}, nil).Once()

	todos, err := NewTodoRepo(api, "todos", "accounts").ListByIDs(context.Background(), []string{"t1", "t2", "t3", "missing"})

	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "t1", todos[0].TodoID)
	assert.Equal(t, "t2", todos[1].TodoID)
	assert.Equal(t, "t3", todos[2].TodoID)
	api.AssertExpectations(t)
}

func TestTodoListByIDs_ChunksLargeLists(t *testing.T) {
	api := &mockAPI{}
	var sizes []int
	api.On("BatchGetItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*dynamodb.BatchGetItemInput)
			sizes = append(sizes, len(in.RequestItems["todos"].Keys))
		}).
		Return(&dynamodb.BatchGetItemOutput{}, nil)

	ids := make([]string, 150)
	for i := range ids {
		ids[i] = fmt.Sprintf("t%d", i)
	}
	todos, err := NewTodoRepo(api, "todos", "accounts").ListByIDs(context.Background(), ids)

	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.Equal(t, []int{100, 50}, sizes)
}

func TestTodoListByIDs_Empty(t *testing.T) {
	api := &mockAPI{}
	todos, err := NewTodoRepo(api, "todos", "accounts").ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, todos)
	api.AssertNotCalled(t, "BatchGetItem", mock.Anything, mock.Anything)
}
