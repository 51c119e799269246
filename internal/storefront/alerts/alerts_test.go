package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclients "storefront-workers/internal/common/aws"
	"storefront-workers/internal/common/config"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func createTestConfig() config.AlertsConfig {
	return config.AlertsConfig{
		Enabled:          true,
		Region:           "eu-west-1",
		TopicARN:         "arn:aws:sns:eu-west-1:123456789012:storefront-config",
		FromEmail:        "noreply@example.com",
		EditorRecipients: []string{"editor@example.com", "lead@example.com"},
	}
}

func createTestAlert() ConfigAlert {
	return ConfigAlert{
		StoreSlug:  "acme",
		TemplateID: "home-electronic",
		Problems:   []string{"sections.hero.order: Invalid type. Expected: number, given: string"},
		Origin:     OriginRender,
		RaisedAt:   time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
	}
}

func TestAlerter_NotifyConfigInvalid(t *testing.T) {
	var published *sns.PublishInput
	var emails []*ses.SendEmailInput

	clients := &awsclients.Clients{
		SNS: &MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			published = params
			return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
		}},
		SES: &MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			emails = append(emails, params)
			return &ses.SendEmailOutput{}, nil
		}},
	}
	alerter := NewAlerter(createTestConfig(), clients, logger.NewTestLogger(t))

	delivery, err := alerter.NotifyConfigInvalid(context.Background(), createTestAlert())
	require.NoError(t, err)

	assert.NotEmpty(t, delivery.AlertID)
	assert.False(t, delivery.Skipped)
	assert.Equal(t, "msg-1", delivery.TopicMessageID)
	assert.Equal(t, 2, delivery.EmailsSent)

	require.NotNil(t, published)
	assert.Equal(t, createTestConfig().TopicARN, aws.ToString(published.TopicArn))
	assert.Contains(t, aws.ToString(published.Message), `"storeSlug":"acme"`)
	assert.Equal(t, "render", aws.ToString(published.MessageAttributes["origin"].StringValue))

	require.Len(t, emails, 2)
	assert.Equal(t, []string{"editor@example.com"}, emails[0].Destination.ToAddresses)
	assert.Equal(t, "noreply@example.com", aws.ToString(emails[0].Source))
	assert.Equal(t, "Page layout rejected: acme / home-electronic", aws.ToString(emails[0].Message.Subject.Data))
	assert.Contains(t, aws.ToString(emails[0].Message.Body.Text.Data), "- sections.hero.order")
}

func TestAlerter_Disabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.Enabled = false
	clients := &awsclients.Clients{
		SNS: &MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			t.Fatal("publish must not be called")
			return nil, nil
		}},
	}

	delivery, err := NewAlerter(cfg, clients, logger.NewNoOpLogger()).NotifyConfigInvalid(context.Background(), createTestAlert())
	require.NoError(t, err)
	assert.True(t, delivery.Skipped)
	assert.NotEmpty(t, delivery.AlertID)
}

func TestAlerter_Failures(t *testing.T) {
	tests := []struct {
		name        string
		snsErr      error
		sesErr      error
		wantChannel string
		wantEmails  int
	}{
		{name: "topic publish fails", snsErr: errors.New("throttled"), wantChannel: "sns"},
		{name: "email fails", sesErr: errors.New("message rejected"), wantChannel: "ses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := &awsclients.Clients{
				SNS: &MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
					if tt.snsErr != nil {
						return nil, tt.snsErr
					}
					return &sns.PublishOutput{MessageId: aws.String("msg-2")}, nil
				}},
				SES: &MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
					return nil, tt.sesErr
				}},
			}

			delivery, err := NewAlerter(createTestConfig(), clients, logger.NewNoOpLogger()).
				NotifyConfigInvalid(context.Background(), createTestAlert())
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlertSendFailed))
			assert.Contains(t, err.(*apperrors.StandardError).Details, "channel: "+tt.wantChannel)
			assert.Equal(t, tt.wantEmails, delivery.EmailsSent)
		})
	}
}

func TestAlerter_TopicOnly(t *testing.T) {
	cfg := createTestConfig()
	cfg.EditorRecipients = nil
	calls := 0
	clients := &awsclients.Clients{
		SNS: &MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			calls++
			return &sns.PublishOutput{}, nil
		}},
	}

	delivery, err := NewAlerter(cfg, clients, logger.NewNoOpLogger()).NotifyConfigInvalid(context.Background(), createTestAlert())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Zero(t, delivery.EmailsSent)
}
