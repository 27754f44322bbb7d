package database

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB creates a DynamoDB client for the clinic tables.
//
// Supported env vars:
//   - AWS_REGION (default: sa-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (static credentials, local only)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
//   - DYNAMODB_AUTO_CREATE_TABLES (optional; creates missing tables on boot)
func ConnectDynamoDB(ctx context.Context) *dynamodb.Client {
	cfg, err := NewDynamoDBConfigFromEnv(ctx)
	if err != nil {
		log.Fatalf("[database][dynamodb] failed to create config err=%v", err)
	}

	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	log.Printf("[database][dynamodb] client ready region=%s endpoint=%q", cfg.Region, endpoint)

	if isEnabled(os.Getenv("DYNAMODB_AUTO_CREATE_TABLES")) {
		if err := EnsureTables(ctx, client, DefaultTables()); err != nil {
			log.Fatalf("[database][dynamodb] failed to ensure tables err=%v", err)
		}
	}
	return client
}

func NewDynamoDBConfigFromEnv(ctx context.Context) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(getenvDefault("AWS_REGION", "sa-east-1")),
	}

	// Static keys are only used when both are present (DynamoDB Local); otherwise
	// the default provider chain resolves credentials.
	key, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if os.Getenv("DYNAMODB_ENDPOINT") != "" && (key == "" || secret == "") {
		key, secret = "local", "local"
	}
	if key != "" && secret != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func isEnabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
