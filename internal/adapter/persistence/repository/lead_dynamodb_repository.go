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

const defaultLeadsTableName = "leads"

type quizAnswerRecord struct {
	QuestionID string   `dynamodbav:"question_id"`
	Kind       string   `dynamodbav:"kind"`
	Text       string   `dynamodbav:"text,omitempty"`
	Options    []string `dynamodbav:"options,omitempty"`
	Number     *float64 `dynamodbav:"number,omitempty"`
}

type leadRecord struct {
	ID           string             `dynamodbav:"id"`
	ClinicID     string             `dynamodbav:"clinic_id"`
	Name         string             `dynamodbav:"name"`
	Phone        string             `dynamodbav:"phone,omitempty"`
	Email        string             `dynamodbav:"email,omitempty"`
	AIScore      int                `dynamodbav:"ai_score"`
	AIUrgency    string             `dynamodbav:"ai_urgency"`
	KanbanStatus string             `dynamodbav:"kanban_status"`
	Answers      []quizAnswerRecord `dynamodbav:"answers,omitempty"`
	CreatedAt    string             `dynamodbav:"created_at"`
	UpdatedAt    string             `dynamodbav:"updated_at"`
}

// LeadDynamoRepository persists Lead entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type LeadDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ILeadRepository = (*LeadDynamoRepository)(nil)

func NewLeadDynamoRepository(ddb *dynamodb.Client) *LeadDynamoRepository {
	return &LeadDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("LEADS_TABLE", defaultLeadsTableName),
	}
}

func (r *LeadDynamoRepository) Create(ctx context.Context, l entities.Lead) (entities.Lead, error) {
	av, err := attributevalue.MarshalMap(toLeadRecord(l))
	if err != nil {
		return entities.Lead{}, err
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
		return entities.Lead{}, err
	}
	return l, nil
}

func (r *LeadDynamoRepository) GetByID(ctx context.Context, id string) (entities.Lead, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Lead{}, err
	}
	if len(out.Item) == 0 {
		return entities.Lead{}, nil
	}

	var rec leadRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.Lead{}, err
	}
	return fromLeadRecord(rec), nil
}

// UpdateStatus moves the lead to another kanban column. A missing lead yields
// a zero Lead and no error.
func (r *LeadDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.KanbanStatus) (entities.Lead, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #kanban_status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(nowUTC())},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":            "id",
			"#kanban_status": "kanban_status",
			"#updated_at":    "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Lead{}, nil
		}
		return entities.Lead{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Lead{}, nil
	}
	var rec leadRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.Lead{}, err
	}
	return fromLeadRecord(rec), nil
}

func toLeadRecord(l entities.Lead) leadRecord {
	rec := leadRecord{
		ID:           l.ID,
		ClinicID:     l.ClinicID,
		Name:         l.Name,
		Phone:        l.Phone,
		Email:        l.Email,
		AIScore:      l.AIScore,
		AIUrgency:    string(l.AIUrgency),
		KanbanStatus: string(l.KanbanStatus),
		CreatedAt:    formatTime(l.CreatedAt),
		UpdatedAt:    formatTime(l.UpdatedAt),
	}
	for _, a := range l.Answers {
		rec.Answers = append(rec.Answers, quizAnswerRecord(a))
	}
	return rec
}

func fromLeadRecord(rec leadRecord) entities.Lead {
	l := entities.Lead{
		ID:           rec.ID,
		ClinicID:     rec.ClinicID,
		Name:         rec.Name,
		Phone:        rec.Phone,
		Email:        rec.Email,
		AIScore:      rec.AIScore,
		AIUrgency:    entities.Urgency(rec.AIUrgency),
		KanbanStatus: entities.KanbanStatus(rec.KanbanStatus),
		CreatedAt:    parseTime(rec.CreatedAt),
		UpdatedAt:    parseTime(rec.UpdatedAt),
	}
	for _, a := range rec.Answers {
		l.Answers = append(l.Answers, entities.QuizAnswer(a))
	}
	return l
}
