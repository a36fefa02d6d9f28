package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"faq-bot/internal/domain"
)

type fakeDynamo struct {
	getOut       *dynamodb.GetItemOutput
	getErr       error
	putErr       error
	deleteErr    error
	lastGetInput *dynamodb.GetItemInput
	lastPutInput *dynamodb.PutItemInput
	lastDelInput *dynamodb.DeleteItemInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGetInput = in
	return f.getOut, f.getErr
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.lastDelInput = in
	return &dynamodb.DeleteItemOutput{}, f.deleteErr
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func mustNewDynamoStore(t *testing.T, db *fakeDynamo) *DynamoStore {
	t.Helper()
	s, err := NewDynamoStore(db, "test-table", time.Hour)
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s
}

func makeStateItem(id string, awaiting bool, ttl int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":                   &types.AttributeValueMemberS{Value: convPK(id)},
		"SK":                   &types.AttributeValueMemberS{Value: skState},
		"awaitingCloseConfirm": &types.AttributeValueMemberBOOL{Value: awaiting},
		"lastActivity":         &types.AttributeValueMemberS{Value: fixedNow.Format(time.RFC3339)},
		"ttl":                  &types.AttributeValueMemberN{Value: strconv.FormatInt(ttl, 10)},
	}
}

func TestNewDynamoStore_Validates(t *testing.T) {
	_, err := NewDynamoStore(nil, "t", 0)
	require.Error(t, err)

	_, err = NewDynamoStore(&fakeDynamo{}, "  ", 0)
	require.Error(t, err)

	s, err := NewDynamoStore(&fakeDynamo{}, "t", 0)
	require.NoError(t, err)
	require.Equal(t, defaultStateTTL, s.ttl)
}

func TestDynamoGet_HappyPath(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: makeStateItem("abc", true, fixedNow.Add(time.Hour).Unix())}}
	s := mustNewDynamoStore(t, db)

	conv, ok, err := s.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", conv.ID)
	require.True(t, conv.AwaitingCloseConfirm)
	require.Equal(t, fixedNow, conv.LastActivity)
	require.True(t, *db.lastGetInput.ConsistentRead)
	require.Equal(t, "CONV#abc", db.lastGetInput.Key["PK"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoGet_Missing(t *testing.T) {
	s := mustNewDynamoStore(t, &fakeDynamo{getOut: &dynamodb.GetItemOutput{}})
	_, ok, err := s.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDynamoGet_ExpiredItemIsMissing(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: makeStateItem("abc", true, fixedNow.Add(-time.Minute).Unix())}}
	s := mustNewDynamoStore(t, db)

	_, ok, err := s.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDynamoGet_Errors(t *testing.T) {
	s := mustNewDynamoStore(t, &fakeDynamo{getErr: errors.New("boom")})
	_, _, err := s.Get(context.Background(), "abc")
	require.ErrorContains(t, err, "Get get item")

	item := makeStateItem("abc", true, fixedNow.Add(time.Hour).Unix())
	item["awaitingCloseConfirm"] = &types.AttributeValueMemberS{Value: "yes"}
	s = mustNewDynamoStore(t, &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: item}})
	_, _, err = s.Get(context.Background(), "abc")
	require.ErrorContains(t, err, "not a bool")
}

func TestDynamoSave_WritesItem(t *testing.T) {
	db := &fakeDynamo{}
	s := mustNewDynamoStore(t, db)

	require.NoError(t, s.Save(context.Background(), domain.Conversation{ID: "abc", AwaitingCloseConfirm: true}))
	require.NotNil(t, db.lastPutInput)
	item := db.lastPutInput.Item
	require.Equal(t, "CONV#abc", item["PK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, skState, item["SK"].(*types.AttributeValueMemberS).Value)
	require.True(t, item["awaitingCloseConfirm"].(*types.AttributeValueMemberBOOL).Value)
	require.Equal(t, strconv.FormatInt(fixedNow.Add(time.Hour).Unix(), 10), item["ttl"].(*types.AttributeValueMemberN).Value)
	require.Equal(t, fixedNow.Format(time.RFC3339), item["lastActivity"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoSave_Errors(t *testing.T) {
	s := mustNewDynamoStore(t, &fakeDynamo{putErr: errors.New("throttled")})
	require.ErrorContains(t, s.Save(context.Background(), domain.Conversation{ID: "abc"}), "throttled")
	require.Error(t, s.Save(context.Background(), domain.Conversation{}))
}

func TestDynamoDelete(t *testing.T) {
	db := &fakeDynamo{}
	s := mustNewDynamoStore(t, db)
	require.NoError(t, s.Delete(context.Background(), "abc"))
	require.Equal(t, "CONV#abc", db.lastDelInput.Key["PK"].(*types.AttributeValueMemberS).Value)

	db.deleteErr = errors.New("boom")
	require.ErrorContains(t, s.Delete(context.Background(), "abc"), "Delete")
}
