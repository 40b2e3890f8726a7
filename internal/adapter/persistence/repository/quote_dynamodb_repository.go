package repository

import (
	"context"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultQuotesTableName = "quotes"

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// State transitions are UpdateItem calls whose ConditionExpression encodes the
// expected current state, so two writers can never both advance the same quote.
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = DefaultQuotesTableName
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            quoteKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}
	return unmarshalQuote(out.Item)
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, id string, cond interfaces.QuoteCondition, upd interfaces.QuoteUpdate) (entities.Quote, error) {
	expr, err := expression.NewBuilder().
		WithCondition(quoteConditionExpression(cond)).
		WithUpdate(quoteUpdateExpression(upd, r.now().UTC())).
		Build()
	if err != nil {
		return entities.Quote{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       quoteKey(id),
		ConditionExpression:       expr.Condition(),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	return unmarshalQuote(out.Attributes)
}

func (r *QuoteDynamoRepository) List(ctx context.Context, filter interfaces.QuoteFilter) ([]entities.Quote, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if filter.Status != "" {
		expr, err := expression.NewBuilder().
			WithFilter(expression.Name("status").Equal(expression.Value(string(filter.Status)))).
			Build()
		if err != nil {
			return nil, err
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}
	return r.scan(ctx, input, 0)
}

// ListExpirable scans for unpaid quotes in an expirable status whose expires_at has passed.
func (r *QuoteDynamoRepository) ListExpirable(ctx context.Context, now time.Time, limit int) ([]entities.Quote, error) {
	filter := expression.Name("expires_at").LessThanEqual(expression.Value(now.Unix())).
		And(expression.Name("payment_status").Equal(expression.Value(string(entities.PaymentStatusUnpaid)))).
		And(expression.Name("status").In(
			expression.Value(string(entities.QuoteStatusPending)),
			expression.Value(string(entities.QuoteStatusAwaitingPayment)),
			expression.Value(string(entities.QuoteStatusFailed)),
		))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, err
	}
	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, limit)
}

func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string, cond interfaces.QuoteCondition) (bool, error) {
	expr, err := expression.NewBuilder().WithCondition(quoteConditionExpression(cond)).Build()
	if err != nil {
		return false, err
	}
	_, err = r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       quoteKey(id),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *QuoteDynamoRepository) scan(ctx context.Context, input *dynamodb.ScanInput, limit int) ([]entities.Quote, error) {
	items := make([]entities.Quote, 0)
	p := dynamodb.NewScanPaginator(r.ddb, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			q, err := unmarshalQuote(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, q)
			if limit > 0 && len(items) >= limit {
				return items, nil
			}
		}
	}
	return items, nil
}

func quoteConditionExpression(c interfaces.QuoteCondition) expression.ConditionBuilder {
	cond := expression.AttributeExists(expression.Name("id"))
	if len(c.StatusIn) > 0 {
		first := expression.Value(string(c.StatusIn[0]))
		rest := make([]expression.OperandBuilder, 0, len(c.StatusIn)-1)
		for _, s := range c.StatusIn[1:] {
			rest = append(rest, expression.Value(string(s)))
		}
		cond = cond.And(expression.Name("status").In(first, rest...))
	}
	if c.PaymentStatus != "" {
		cond = cond.And(expression.Name("payment_status").Equal(expression.Value(string(c.PaymentStatus))))
	}
	if len(c.FraudStatusIn) > 0 {
		first := expression.Value(string(c.FraudStatusIn[0]))
		rest := make([]expression.OperandBuilder, 0, len(c.FraudStatusIn)-1)
		for _, s := range c.FraudStatusIn[1:] {
			rest = append(rest, expression.Value(string(s)))
		}
		cond = cond.And(expression.Name("fraud_status").In(first, rest...))
	}
	if c.PaymentAttempt != nil {
		cond = cond.And(expression.Name("payment_attempt").Equal(expression.Value(*c.PaymentAttempt)))
	}
	if c.IssuanceTriggered != nil {
		cond = cond.And(expression.Name("issuance_triggered").Equal(expression.Value(*c.IssuanceTriggered)))
	}
	if c.CouponRedeemed != nil {
		cond = cond.And(expression.Name("coupon_redeemed").Equal(expression.Value(*c.CouponRedeemed)))
	}
	if c.HandleEmpty {
		cond = cond.And(expression.Or(
			expression.AttributeNotExists(expression.Name("payment_handle")),
			expression.Name("payment_handle").Equal(expression.Value("")),
		))
	}
	if c.ExpiresBefore != nil {
		cond = cond.And(expression.Name("expires_at").LessThanEqual(expression.Value(c.ExpiresBefore.Unix())))
	}
	return cond
}

func quoteUpdateExpression(u interfaces.QuoteUpdate, now time.Time) expression.UpdateBuilder {
	ub := expression.Set(expression.Name("updated_at"), expression.Value(formatTime(now)))
	set := func(name string, v any) {
		ub = ub.Set(expression.Name(name), expression.Value(v))
	}

	if u.Status != nil {
		set("status", string(*u.Status))
	}
	if u.PaymentStatus != nil {
		set("payment_status", string(*u.PaymentStatus))
	}
	if u.FraudStatus != nil {
		set("fraud_status", string(*u.FraudStatus))
	}
	if u.FraudScore != nil {
		set("fraud_score", *u.FraudScore)
	}
	if u.FraudCheckedAt != nil {
		set("fraud_checked_at", formatTime(*u.FraudCheckedAt))
	}
	if u.AppendAssessment != nil {
		details := expression.Name("fraud_details")
		ub = ub.Set(details, expression.ListAppend(
			expression.IfNotExists(details, expression.Value([]assessmentItem{})),
			expression.Value([]assessmentItem{toAssessmentItem(*u.AppendAssessment)}),
		))
	}
	if u.PaymentAttempt != nil {
		set("payment_attempt", *u.PaymentAttempt)
	}
	if u.PaymentProvider != nil {
		set("payment_provider", *u.PaymentProvider)
	}
	if u.PaymentHandle != nil {
		set("payment_handle", *u.PaymentHandle)
	}
	if u.PaymentReference != nil {
		set("payment_reference", *u.PaymentReference)
	}
	if u.IssuanceTriggered != nil {
		set("issuance_triggered", *u.IssuanceTriggered)
	}
	if u.CouponRedeemed != nil {
		set("coupon_redeemed", *u.CouponRedeemed)
	}
	if u.PaidAt != nil {
		set("paid_at", formatTime(*u.PaidAt))
	}
	if u.ClearExpiresAt {
		ub = ub.Remove(expression.Name("expires_at"))
	} else if u.ExpiresAt != nil {
		set("expires_at", u.ExpiresAt.Unix())
	}
	if u.ClientIP != nil {
		set("client_ip", *u.ClientIP)
	}
	if u.UserAgent != nil {
		set("user_agent", *u.UserAgent)
	}
	return ub
}

func quoteKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalQuote(raw map[string]types.AttributeValue) (entities.Quote, error) {
	var it quoteItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}
