package repository

import (
	"context"
	"errors"

	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultBudgetsTableName = "budgets"
	budgetsPatientIDIndex   = "patient_id-index"
)

// budgetLineRecord is the stored shape of a line:
// { unit_price, sessions, discount, total_price } where discount is the
// percentage.
type budgetLineRecord struct {
	ProcedureID    string  `dynamodbav:"procedure_id,omitempty"`
	UnitPrice      float64 `dynamodbav:"unit_price"`
	Sessions       int     `dynamodbav:"sessions"`
	Discount       float64 `dynamodbav:"discount"`
	DiscountAmount float64 `dynamodbav:"discount_amount"`
	TotalPrice     float64 `dynamodbav:"total_price"`
}

type paymentMethodRecord struct {
	Method          string  `dynamodbav:"method"`
	Amount          float64 `dynamodbav:"amount"`
	DiscountPercent float64 `dynamodbav:"discount_percent"`
	DiscountAmount  float64 `dynamodbav:"discount_amount"`
	Installments    int     `dynamodbav:"installments"`
	CardFeePercent  float64 `dynamodbav:"card_fee_percent"`
}

type budgetRecord struct {
	ID             string                `dynamodbav:"id"`
	ClinicID       string                `dynamodbav:"clinic_id"`
	PatientID      string                `dynamodbav:"patient_id"`
	Items          []budgetLineRecord    `dynamodbav:"items"`
	PaymentMethods []paymentMethodRecord `dynamodbav:"payment_methods"`
	Subtotal       float64               `dynamodbav:"subtotal"`
	TotalWithFee   float64               `dynamodbav:"total_with_fee"`
	Status         string                `dynamodbav:"status"`
	ValidUntil     string                `dynamodbav:"valid_until,omitempty"`
	Notes          string                `dynamodbav:"notes,omitempty"`
	CreatedAt      string                `dynamodbav:"created_at"`
	UpdatedAt      string                `dynamodbav:"updated_at"`
}

// BudgetDynamoRepository persists Budget entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: patient_id-index (PK: patient_id)
//
// Stored totals are written verbatim and returned unchanged on read.

type BudgetDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb *dynamodb.Client) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BUDGETS_TABLE", defaultBudgetsTableName),
	}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	av, err := attributevalue.MarshalMap(toBudgetRecord(b))
	if err != nil {
		return entities.Budget{}, err
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
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Budget{}, err
	}
	if len(out.Item) == 0 {
		return entities.Budget{}, nil
	}

	var rec budgetRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetRecord(rec), nil
}

func (r *BudgetDynamoRepository) ListByPatientID(ctx context.Context, patientID string) ([]entities.Budget, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(budgetsPatientIDIndex),
		KeyConditionExpression: aws.String("patient_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: patientID},
		},
	})

	budgets := make([]entities.Budget, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var rec budgetRecord
			if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
				return nil, err
			}
			budgets = append(budgets, fromBudgetRecord(rec))
		}
	}
	return budgets, nil
}

// Update replaces the editable content of an existing budget. The write only
// lands while the stored status is draft or sent; otherwise a zero Budget is
// returned.
func (r *BudgetDynamoRepository) Update(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	in, err := budgetContentUpdateInput(r.tableName, b, formatTime(nowUTC()))
	if err != nil {
		return entities.Budget{}, err
	}
	return r.updateItem(ctx, in)
}

func (r *BudgetDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.BudgetStatus) (entities.Budget, error) {
	return r.updateItem(ctx, budgetStatusUpdateInput(r.tableName, id, status, formatTime(nowUTC())))
}

func budgetContentUpdateInput(table string, b entities.Budget, now string) (*dynamodb.UpdateItemInput, error) {
	rec := toBudgetRecord(b)
	items, err := attributevalue.Marshal(rec.Items)
	if err != nil {
		return nil, err
	}
	payments, err := attributevalue.Marshal(rec.PaymentMethods)
	if err != nil {
		return nil, err
	}
	subtotal, err := attributevalue.Marshal(rec.Subtotal)
	if err != nil {
		return nil, err
	}
	total, err := attributevalue.Marshal(rec.TotalWithFee)
	if err != nil {
		return nil, err
	}

	expr := "SET #items = :items, #payment_methods = :payment_methods, #subtotal = :subtotal, #total_with_fee = :total_with_fee, " +
		"#clinic_id = :clinic_id, #patient_id = :patient_id, #valid_until = :valid_until, #notes = :notes, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":items":           items,
		":payment_methods": payments,
		":subtotal":        subtotal,
		":total_with_fee":  total,
		":clinic_id":       &types.AttributeValueMemberS{Value: rec.ClinicID},
		":patient_id":      &types.AttributeValueMemberS{Value: rec.PatientID},
		":valid_until":     &types.AttributeValueMemberS{Value: rec.ValidUntil},
		":notes":           &types.AttributeValueMemberS{Value: rec.Notes},
		":updated_at":      &types.AttributeValueMemberS{Value: now},
		":draft":           &types.AttributeValueMemberS{Value: string(entities.BudgetStatusDraft)},
		":sent":            &types.AttributeValueMemberS{Value: string(entities.BudgetStatusSent)},
	}
	names := map[string]string{
		"#items":           "items",
		"#payment_methods": "payment_methods",
		"#subtotal":        "subtotal",
		"#total_with_fee":  "total_with_fee",
		"#clinic_id":       "clinic_id",
		"#patient_id":      "patient_id",
		"#valid_until":     "valid_until",
		"#notes":           "notes",
		"#updated_at":      "updated_at",
		"#status":          "status",
	}
	return budgetUpdateInput(table, b.ID, "attribute_exists(#id) AND #status IN (:draft, :sent)", expr, vals, names), nil
}

func budgetStatusUpdateInput(table, id string, status entities.BudgetStatus, now string) *dynamodb.UpdateItemInput {
	expr := "SET #status = :status, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	return budgetUpdateInput(table, id, "attribute_exists(#id)", expr, vals, names)
}

func budgetUpdateInput(table, id, condition, updateExpr string, values map[string]types.AttributeValue, names map[string]string) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	}
}

func (r *BudgetDynamoRepository) updateItem(ctx context.Context, in *dynamodb.UpdateItemInput) (entities.Budget, error) {
	out, err := r.ddb.UpdateItem(ctx, in)
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Budget{}, nil
		}
		return entities.Budget{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Budget{}, nil
	}
	var rec budgetRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetRecord(rec), nil
}

func toBudgetRecord(b entities.Budget) budgetRecord {
	rec := budgetRecord{
		ID:             b.ID,
		ClinicID:       b.ClinicID,
		PatientID:      b.PatientID,
		Items:          make([]budgetLineRecord, 0, len(b.Items)),
		PaymentMethods: make([]paymentMethodRecord, 0, len(b.PaymentMethods)),
		Subtotal:       b.Subtotal,
		TotalWithFee:   b.TotalWithFee,
		Status:         string(b.Status),
		Notes:          b.Notes,
		CreatedAt:      formatTime(b.CreatedAt),
		UpdatedAt:      formatTime(b.UpdatedAt),
	}
	if b.ValidUntil != nil {
		rec.ValidUntil = formatTime(*b.ValidUntil)
	}
	for _, it := range b.Items {
		rec.Items = append(rec.Items, budgetLineRecord{
			ProcedureID:    it.ProcedureID,
			UnitPrice:      it.UnitPrice,
			Sessions:       it.Sessions,
			Discount:       it.DiscountPercent,
			DiscountAmount: it.DiscountAmount,
			TotalPrice:     it.TotalPrice,
		})
	}
	for _, p := range b.PaymentMethods {
		rec.PaymentMethods = append(rec.PaymentMethods, paymentMethodRecord{
			Method:          string(p.Method),
			Amount:          p.Amount,
			DiscountPercent: p.DiscountPercent,
			DiscountAmount:  p.DiscountAmount,
			Installments:    p.Installments,
			CardFeePercent:  p.CardFeePercent,
		})
	}
	return rec
}

func fromBudgetRecord(rec budgetRecord) entities.Budget {
	b := entities.Budget{
		ID:             rec.ID,
		ClinicID:       rec.ClinicID,
		PatientID:      rec.PatientID,
		Items:          make([]entities.BudgetItem, 0, len(rec.Items)),
		PaymentMethods: make([]entities.PaymentMethod, 0, len(rec.PaymentMethods)),
		Subtotal:       rec.Subtotal,
		TotalWithFee:   rec.TotalWithFee,
		Status:         entities.BudgetStatus(rec.Status),
		Notes:          rec.Notes,
		CreatedAt:      parseTime(rec.CreatedAt),
		UpdatedAt:      parseTime(rec.UpdatedAt),
	}
	if rec.ValidUntil != "" {
		v := parseTime(rec.ValidUntil)
		b.ValidUntil = &v
	}
	for _, it := range rec.Items {
		b.Items = append(b.Items, entities.BudgetItem{
			ProcedureID:     it.ProcedureID,
			UnitPrice:       it.UnitPrice,
			Sessions:        it.Sessions,
			DiscountPercent: it.Discount,
			DiscountAmount:  it.DiscountAmount,
			TotalPrice:      it.TotalPrice,
		})
	}
	for _, p := range rec.PaymentMethods {
		b.PaymentMethods = append(b.PaymentMethods, entities.PaymentMethod{
			Method:          entities.PaymentMethodType(p.Method),
			Amount:          p.Amount,
			DiscountPercent: p.DiscountPercent,
			DiscountAmount:  p.DiscountAmount,
			Installments:    p.Installments,
			CardFeePercent:  p.CardFeePercent,
		})
	}
	return b
}
