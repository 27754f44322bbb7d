package database

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableDef describes a table with a string hash key and optional string-keyed
// global secondary indexes (index name -> hash key attribute).
type TableDef struct {
	Name    string
	HashKey string
	Indexes map[string]string
}

// DefaultTables returns the tables used by the repositories, honouring the
// same *_TABLE overrides they read.
func DefaultTables() []TableDef {
	return []TableDef{
		{
			Name:    getenvDefault("BUDGETS_TABLE", "budgets"),
			HashKey: "id",
			Indexes: map[string]string{"patient_id-index": "patient_id"},
		},
		{
			Name:    getenvDefault("PAYMENTS_TABLE", "budget_payments"),
			HashKey: "id",
			Indexes: map[string]string{"budget_id-index": "budget_id"},
		},
		{
			Name:    getenvDefault("LEADS_TABLE", "leads"),
			HashKey: "id",
		},
		{
			Name:    getenvDefault("CLINIC_SETTINGS_TABLE", "clinic_settings"),
			HashKey: "clinic_id",
		},
	}
}

// EnsureTables creates every missing table with on-demand billing. Existing
// tables are left untouched.
func EnsureTables(ctx context.Context, client *dynamodb.Client, defs []TableDef) error {
	for _, def := range defs {
		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.Name)})
		if err == nil {
			continue
		}
		var nf *types.ResourceNotFoundException
		if !errors.As(err, &nf) {
			return err
		}

		if _, err := client.CreateTable(ctx, CreateTableInput(def)); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return err
		}
		log.Printf("[database][dynamodb] table created name=%s", def.Name)
	}
	return nil
}

func CreateTableInput(def TableDef) *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{
		{AttributeName: aws.String(def.HashKey), AttributeType: types.ScalarAttributeTypeS},
	}
	seen := map[string]bool{def.HashKey: true}

	var gsis []types.GlobalSecondaryIndex
	for name, key := range def.Indexes {
		if !seen[key] {
			attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(key), AttributeType: types.ScalarAttributeTypeS})
			seen[key] = true
		}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(name),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(key), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:              aws.String(def.Name),
		AttributeDefinitions:   attrs,
		KeySchema:              []types.KeySchemaElement{{AttributeName: aws.String(def.HashKey), KeyType: types.KeyTypeHash}},
		GlobalSecondaryIndexes: gsis,
		BillingMode:            types.BillingModePayPerRequest,
	}
}
