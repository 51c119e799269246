package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SESAPI is the slice of the SES client used for editor emails.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSAPI is the slice of the SNS client used for operator alerts.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Clients bundles the notification clients built from one shared AWS config.
type Clients struct {
	SES SESAPI
	SNS SNSAPI
}

// NewClients resolves credentials through the default chain for region.
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Clients{
		SES: ses.NewFromConfig(cfg),
		SNS: sns.NewFromConfig(cfg),
	}, nil
}
