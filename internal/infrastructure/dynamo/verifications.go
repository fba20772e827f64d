package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sorveteria-api/internal/domain"
)

// VerificationCodeRepo manages SMS verification codes.
// PK: phone, SK: code_id (ULID — descending scans give newest first).
type VerificationCodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationCodeRepo(client *dynamodb.Client, tableName string) *VerificationCodeRepo {
	return &VerificationCodeRepo{client: client, tableName: tableName}
}

func (r *VerificationCodeRepo) Put(ctx context.Context, v *domain.VerificationCode) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetLatestUnused returns the most recently created unused record matching
// (phone, code). ScanIndexForward=false walks the ULID sort key newest-first,
// so the first filtered item is the authoritative match.
func (r *VerificationCodeRepo) GetLatestUnused(ctx context.Context, phone, code string) (*domain.VerificationCode, error) {
	return r.queryNewest(ctx, phone, &code, false)
}

// GetLatestVerified returns the most recent used (verified) record for the
// phone, regardless of code. Checkout uses this to confirm the phone was verified.
func (r *VerificationCodeRepo) GetLatestVerified(ctx context.Context, phone string) (*domain.VerificationCode, error) {
	return r.queryNewest(ctx, phone, nil, true)
}

func (r *VerificationCodeRepo) queryNewest(ctx context.Context, phone string, code *string, used bool) (*domain.VerificationCode, error) {
	values := map[string]types.AttributeValue{
		":phone": &types.AttributeValueMemberS{Value: phone},
		":used":  &types.AttributeValueMemberBOOL{Value: used},
	}
	filter := "used = :used"
	if code != nil {
		values[":code"] = &types.AttributeValueMemberS{Value: *code}
		filter = "code = :code AND used = :used"
	}

	// No Limit here: DynamoDB applies Limit before the filter, which could
	// hide an older match behind newer non-matching records.
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("phone = :phone"),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationCode
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// MarkUsed flips the used flag and stamps verified_at on the record.
func (r *VerificationCodeRepo) MarkUsed(ctx context.Context, phone, codeID string, verifiedAt time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldUsed:       true,
		fieldVerifiedAt: verifiedAt,
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       compositeKey("phone", phone, "code_id", codeID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
