package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/questify-api/internal/domain"
)

// Positions of the items written by Create, used to read cancellation reasons.
const (
	createAccountItem = iota
	createEmailKey
	createUsernameKey
)

// AccountRepo is the credential store. Email and username uniqueness is
// enforced by marker items in the keys table written in the same transaction
// as the account, so a racing duplicate insert fails instead of slipping in.
type AccountRepo struct {
	client    API
	tableName string
	keysTable string
}

func NewAccountRepo(client API, tableName, keysTable string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName, keysTable: keysTable}
}

func emailKey(email string) string       { return "email#" + email }
func usernameKey(username string) string { return "username#" + username }

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(account_id)"),
			}},
			{Put: r.keyPut(emailKey(a.Email), a.AccountID)},
			{Put: r.keyPut(usernameKey(a.Username), a.AccountID)},
		},
	})
	if err == nil {
		return nil
	}
	switch failedCondition(err) {
	case createEmailKey:
		return domain.WrapError(domain.ErrConflict, "email already registered", err)
	case createUsernameKey:
		return domain.WrapError(domain.ErrConflict, "username already registered", err)
	case createAccountItem:
		return domain.WrapError(domain.ErrConflict, "account already exists", err)
	}
	return fmt.Errorf("create account: %w", err)
}

func (r *AccountRepo) keyPut(key, accountID string) *types.Put {
	return &types.Put{
		TableName: aws.String(r.keysTable),
		Item: map[string]types.AttributeValue{
			attrKey:       &types.AttributeValueMemberS{Value: key},
			attrAccountID: &types.AttributeValueMemberS{Value: accountID},
		},
		ConditionExpression:      aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": attrKey},
	}
}

// Delete removes the account together with its uniqueness markers.
func (r *AccountRepo) Delete(ctx context.Context, a *domain.Account) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{TableName: aws.String(r.tableName), Key: strKey(attrAccountID, a.AccountID)}},
			{Delete: &types.Delete{TableName: aws.String(r.keysTable), Key: strKey(attrKey, emailKey(a.Email))}},
			{Delete: &types.Delete{TableName: aws.String(r.keysTable), Key: strKey(attrKey, usernameKey(a.Username))}},
		},
	})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// Get reads the account with a strongly consistent read so a token written by
// the latest login or logout is always observed.
func (r *AccountRepo) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(attrAccountID, accountID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if out.Item == nil {
		return nil, domain.NewError(domain.ErrNotFound, "account not found")
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.queryGSI(ctx, indexEmail, attrEmail, email)
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.queryGSI(ctx, indexUsername, attrUsername, username)
}

// Verify redeems a verification token. The clearing update is conditioned on
// the token still being present, so only one redemption can succeed.
func (r *AccountRepo) Verify(ctx context.Context, token string) (*domain.Account, error) {
	a, err := r.queryGSI(ctx, indexVerificationToken, attrVerificationToken, token)
	if err != nil {
		return nil, err
	}
	ue, err := buildUpdateExpr(map[string]interface{}{
		attrVerified:          true,
		attrVerificationToken: nil,
		attrUpdatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	ue.Names["#tok"] = attrVerificationToken
	if ue.Values == nil {
		ue.Values = map[string]types.AttributeValue{}
	}
	ue.Values[":tok"] = &types.AttributeValueMemberS{Value: token}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(attrAccountID, a.AccountID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("#tok = :tok"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, domain.WrapError(domain.ErrNotFound, "verification token not found", err)
		}
		return nil, fmt.Errorf("verify account: %w", err)
	}
	var verified domain.Account
	if err := attributevalue.UnmarshalMap(out.Attributes, &verified); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &verified, nil
}

// SetSessionToken stores token as the only valid session for the account,
// replacing any previous one. A nil token clears the session.
func (r *AccountRepo) SetSessionToken(ctx context.Context, accountID string, token *string) error {
	var v interface{}
	if token != nil {
		v = *token
	}
	ue, err := buildUpdateExpr(map[string]interface{}{
		attrSessionToken: v,
		attrUpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(attrAccountID, accountID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(account_id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return domain.WrapError(domain.ErrNotFound, "account not found", err)
		}
		return fmt.Errorf("set session token: %w", err)
	}
	return nil
}

func (r *AccountRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Account, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", index, err)
	}
	if len(out.Items) == 0 {
		return nil, domain.NewError(domain.ErrNotFound, "account not found")
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Items[0], &a); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &a, nil
}

// failedCondition returns the index of the first transaction item whose
// condition check failed, or -1.
func failedCondition(err error) int {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return -1
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return i
		}
	}
	return -1
}
