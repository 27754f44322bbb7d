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

const defaultClinicSettingsTableName = "clinic_settings"

type leadThresholdsRecord struct {
	FrioMax   int `dynamodbav:"frio_max"`
	MornoMax  int `dynamodbav:"morno_max"`
	QuenteMax int `dynamodbav:"quente_max"`
}

type clinicSettingsRecord struct {
	ClinicID       string                `dynamodbav:"clinic_id"`
	LeadThresholds *leadThresholdsRecord `dynamodbav:"lead_thresholds,omitempty"`
	UpdatedAt      string                `dynamodbav:"updated_at,omitempty"`
}

// ClinicSettingsDynamoRepository keeps per-clinic settings, one item per clinic.
//
// Table requirements:
//   - PK: clinic_id (string)

type ClinicSettingsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IClinicSettingsRepository = (*ClinicSettingsDynamoRepository)(nil)

func NewClinicSettingsDynamoRepository(ddb *dynamodb.Client) *ClinicSettingsDynamoRepository {
	return &ClinicSettingsDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLINIC_SETTINGS_TABLE", defaultClinicSettingsTableName),
	}
}

func (r *ClinicSettingsDynamoRepository) GetLeadThresholds(ctx context.Context, clinicID string) (entities.LeadThresholds, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"clinic_id": &types.AttributeValueMemberS{Value: clinicID},
		},
	})
	if err != nil {
		return entities.LeadThresholds{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.LeadThresholds{}, false, nil
	}

	var rec clinicSettingsRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.LeadThresholds{}, false, err
	}
	if rec.LeadThresholds == nil {
		return entities.LeadThresholds{}, false, nil
	}
	return entities.LeadThresholds(*rec.LeadThresholds), true, nil
}

// SaveLeadThresholds upserts the thresholds without touching other settings
// stored for the clinic.
func (r *ClinicSettingsDynamoRepository) SaveLeadThresholds(ctx context.Context, clinicID string, t entities.LeadThresholds) error {
	av, err := attributevalue.Marshal(leadThresholdsRecord(t))
	if err != nil {
		return err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"clinic_id": &types.AttributeValueMemberS{Value: clinicID},
		},
		UpdateExpression: aws.String("SET #lead_thresholds = :t, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":          av,
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(nowUTC())},
		},
		ExpressionAttributeNames: map[string]string{
			"#lead_thresholds": "lead_thresholds",
			"#updated_at":      "updated_at",
		},
	})
	return err
}
