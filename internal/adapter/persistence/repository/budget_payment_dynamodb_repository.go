package repository

import (
	"context"

	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "budget_payments"
	paymentsBudgetIDIndex    = "budget_id-index"
)

type budgetPaymentRecord struct {
	ID                 string                 `dynamodbav:"id"`
	BudgetID           string                 `dynamodbav:"budget_id"`
	SplitIndex         int                    `dynamodbav:"split_index"`
	Method             string                 `dynamodbav:"method"`
	Amount             float64                `dynamodbav:"amount"`
	Installments       int                    `dynamodbav:"installments"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// BudgetPaymentDynamoRepository persists BudgetPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: budget_id-index (PK: budget_id)

type BudgetPaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBudgetPaymentRepository = (*BudgetPaymentDynamoRepository)(nil)

func NewBudgetPaymentDynamoRepository(ddb *dynamodb.Client) *BudgetPaymentDynamoRepository {
	return &BudgetPaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *BudgetPaymentDynamoRepository) Create(ctx context.Context, p entities.BudgetPayment) (entities.BudgetPayment, error) {
	av, err := attributevalue.MarshalMap(toBudgetPaymentRecord(p))
	if err != nil {
		return entities.BudgetPayment{}, err
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
		return entities.BudgetPayment{}, err
	}
	return p, nil
}

func (r *BudgetPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BudgetPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BudgetPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.BudgetPayment{}, nil
	}

	var rec budgetPaymentRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.BudgetPayment{}, err
	}
	return fromBudgetPaymentRecord(rec), nil
}

func (r *BudgetPaymentDynamoRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsBudgetIDIndex),
		KeyConditionExpression: aws.String("budget_id = :bid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": &types.AttributeValueMemberS{Value: budgetID},
		},
	})
	if err != nil {
		return nil, err
	}

	payments := make([]entities.BudgetPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var rec budgetPaymentRecord
		if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
			return nil, err
		}
		payments = append(payments, fromBudgetPaymentRecord(rec))
	}
	return payments, nil
}

func toBudgetPaymentRecord(p entities.BudgetPayment) budgetPaymentRecord {
	return budgetPaymentRecord{
		ID:                 p.ID,
		BudgetID:           p.BudgetID,
		SplitIndex:         p.SplitIndex,
		Method:             string(p.Method),
		Amount:             p.Amount,
		Installments:       p.Installments,
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromBudgetPaymentRecord(rec budgetPaymentRecord) entities.BudgetPayment {
	p := entities.BudgetPayment{
		ID:              rec.ID,
		BudgetID:        rec.BudgetID,
		SplitIndex:      rec.SplitIndex,
		Method:          entities.PaymentMethodType(rec.Method),
		Amount:          rec.Amount,
		Installments:    rec.Installments,
		Date:            parseTime(rec.Date),
		Status:          entities.PaymentStatus(rec.Status),
		ProviderPayload: rec.ProviderPayload,
	}
	if rec.ProviderPayloadRaw != "" {
		p.ProviderPayloadRaw = []byte(rec.ProviderPayloadRaw)
	}
	return p
}
