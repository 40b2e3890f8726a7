package repository

import (
	"context"
	"sort"
	"strings"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultCouponsTableName = "coupons"
	DefaultCouponCodeIndex  = "code_lower-index"
)

type couponItem struct {
	Code           string `dynamodbav:"code"`
	CodeLower      string `dynamodbav:"code_lower"`
	CaseSensitive  bool   `dynamodbav:"case_sensitive"`
	DiscountType   string `dynamodbav:"discount_type"`
	DiscountValue  string `dynamodbav:"discount_value"`
	Unlimited      bool   `dynamodbav:"unlimited"`
	QuotaAvailable int    `dynamodbav:"quota_available"`
	UsedQuota      int    `dynamodbav:"used_quota"`
	Active         bool   `dynamodbav:"active"`
	StartsAt       string `dynamodbav:"starts_at,omitempty"`
	ExpiresAt      string `dynamodbav:"expires_at,omitempty"`
	MinSpent       string `dynamodbav:"min_spent"`
	MatchLastName  string `dynamodbav:"match_last_name,omitempty"`
	MatchDOB       string `dynamodbav:"match_date_of_birth,omitempty"`
	MatchRegs      string `dynamodbav:"match_registrations,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// CouponDynamoRepository persists Coupon entities in DynamoDB.
//
// Table requirements:
//   - PK: code (string, original case)
//   - GSI: code_lower-index (PK: code_lower)
type CouponDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	codeIndex string
}

var _ interfaces.ICouponRepository = (*CouponDynamoRepository)(nil)

func NewCouponDynamoRepository(ddb DynamoAPI, tableName, codeIndex string) *CouponDynamoRepository {
	if tableName == "" {
		tableName = DefaultCouponsTableName
	}
	if codeIndex == "" {
		codeIndex = DefaultCouponCodeIndex
	}
	return &CouponDynamoRepository{ddb: ddb, tableName: tableName, codeIndex: codeIndex}
}

func (r *CouponDynamoRepository) Create(ctx context.Context, c entities.Coupon) (entities.Coupon, error) {
	av, err := attributevalue.MarshalMap(toCouponItem(c))
	if err != nil {
		return entities.Coupon{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#code)"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
	})
	if err != nil {
		return entities.Coupon{}, err
	}
	return c, nil
}

func (r *CouponDynamoRepository) FindByCode(ctx context.Context, code string) ([]entities.Coupon, error) {
	keyCond := expression.Key("code_lower").Equal(expression.Value(strings.ToLower(strings.TrimSpace(code))))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, err
	}

	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.codeIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, err
	}
	coupons, err := unmarshalCoupons(out.Items)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(coupons, func(i, j int) bool { return coupons[i].CreatedAt.Before(coupons[j].CreatedAt) })
	return coupons, nil
}

func (r *CouponDynamoRepository) List(ctx context.Context) ([]entities.Coupon, error) {
	coupons := make([]entities.Coupon, 0)
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		batch, err := unmarshalCoupons(page.Items)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, batch...)
	}
	sort.Slice(coupons, func(i, j int) bool { return coupons[i].Code < coupons[j].Code })
	return coupons, nil
}

// Redeem increments used_quota in a single conditional write:
// unlimited = true OR used_quota < quota_available.
func (r *CouponDynamoRepository) Redeem(ctx context.Context, code string) (bool, error) {
	cond := expression.AttributeExists(expression.Name("code")).And(expression.Or(
		expression.Name("unlimited").Equal(expression.Value(true)),
		expression.Name("used_quota").LessThan(expression.Name("quota_available")),
	))
	update := expression.Set(expression.Name("used_quota"), expression.Name("used_quota").Plus(expression.Value(1)))
	return r.adjustQuota(ctx, code, cond, update)
}

func (r *CouponDynamoRepository) Release(ctx context.Context, code string) error {
	cond := expression.AttributeExists(expression.Name("code")).
		And(expression.Name("used_quota").GreaterThan(expression.Value(0)))
	update := expression.Set(expression.Name("used_quota"), expression.Name("used_quota").Minus(expression.Value(1)))
	_, err := r.adjustQuota(ctx, code, cond, update)
	return err
}

func (r *CouponDynamoRepository) adjustQuota(ctx context.Context, code string, cond expression.ConditionBuilder, update expression.UpdateBuilder) (bool, error) {
	expr, err := expression.NewBuilder().WithCondition(cond).WithUpdate(update).Build()
	if err != nil {
		return false, err
	}
	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConditionExpression:       expr.Condition(),
		UpdateExpression:          expr.Update(),
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

func unmarshalCoupons(raw []map[string]types.AttributeValue) ([]entities.Coupon, error) {
	out := make([]entities.Coupon, 0, len(raw))
	for _, av := range raw {
		var it couponItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		out = append(out, fromCouponItem(it))
	}
	return out, nil
}

func toCouponItem(c entities.Coupon) couponItem {
	return couponItem{
		Code:           c.Code,
		CodeLower:      strings.ToLower(c.Code),
		CaseSensitive:  c.CaseSensitive,
		DiscountType:   string(c.DiscountType),
		DiscountValue:  c.DiscountValue.String(),
		Unlimited:      c.Unlimited,
		QuotaAvailable: c.QuotaAvailable,
		UsedQuota:      c.UsedQuota,
		Active:         c.Active,
		StartsAt:       formatTimePtr(c.StartsAt),
		ExpiresAt:      formatTimePtr(c.ExpiresAt),
		MinSpent:       c.MinSpent.String(),
		MatchLastName:  c.Matches.LastName,
		MatchDOB:       c.Matches.DateOfBirth,
		MatchRegs:      c.Matches.Registrations,
		CreatedAt:      formatTime(c.CreatedAt),
	}
}

func fromCouponItem(it couponItem) entities.Coupon {
	return entities.Coupon{
		Code:           it.Code,
		CaseSensitive:  it.CaseSensitive,
		DiscountType:   entities.DiscountType(it.DiscountType),
		DiscountValue:  parseDecimal(it.DiscountValue),
		Unlimited:      it.Unlimited,
		QuotaAvailable: it.QuotaAvailable,
		UsedQuota:      it.UsedQuota,
		Active:         it.Active,
		StartsAt:       parseTimePtr(it.StartsAt),
		ExpiresAt:      parseTimePtr(it.ExpiresAt),
		MinSpent:       parseDecimal(it.MinSpent),
		Matches: entities.CouponMatches{
			LastName:      it.MatchLastName,
			DateOfBirth:   it.MatchDOB,
			Registrations: it.MatchRegs,
		},
		CreatedAt: parseTime(it.CreatedAt),
	}
}
