// Package alerts tells operators and editors when an authored page layout is rejected.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"

	awsclients "storefront-workers/internal/common/aws"
	"storefront-workers/internal/common/config"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
)

// Origin says where an invalid configuration was detected.
type Origin string

const (
	OriginRender     Origin = "render"
	OriginValidation Origin = "validation"
)

// ConfigAlert describes one rejected configuration.
type ConfigAlert struct {
	ID         string    `json:"alertId"`
	StoreSlug  string    `json:"storeSlug,omitempty"`
	TemplateID string    `json:"templateId,omitempty"`
	Problems   []string  `json:"problems"`
	Origin     Origin    `json:"origin"`
	RaisedAt   time.Time `json:"raisedAt"`
}

// Delivery reports what was sent for an alert.
type Delivery struct {
	AlertID        string `json:"alertId"`
	Skipped        bool   `json:"skipped"`
	TopicMessageID string `json:"topicMessageId,omitempty"`
	EmailsSent     int    `json:"emailsSent"`
}

// Notifier is the alerting surface used by the page service and the validation worker.
type Notifier interface {
	NotifyConfigInvalid(ctx context.Context, alert ConfigAlert) (*Delivery, error)
}

// Alerter publishes to the operator topic and emails editors.
type Alerter struct {
	cfg    config.AlertsConfig
	ses    awsclients.SESAPI
	sns    awsclients.SNSAPI
	logger logger.Logger
}

func NewAlerter(cfg config.AlertsConfig, clients *awsclients.Clients, log logger.Logger) *Alerter {
	a := &Alerter{cfg: cfg, logger: log.WithFields(map[string]interface{}{"component": "alerts"})}
	if clients != nil {
		a.ses = clients.SES
		a.sns = clients.SNS
	}
	return a
}

func (a *Alerter) NotifyConfigInvalid(ctx context.Context, alert ConfigAlert) (*Delivery, error) {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	if alert.RaisedAt.IsZero() {
		alert.RaisedAt = time.Now().UTC()
	}
	delivery := &Delivery{AlertID: alert.ID}

	if !a.cfg.Enabled {
		delivery.Skipped = true
		a.logger.Debug("alerts disabled", map[string]interface{}{"alertId": alert.ID})
		return delivery, nil
	}

	if a.cfg.TopicARN != "" && a.sns != nil {
		id, err := a.publish(ctx, alert)
		if err != nil {
			return delivery, apperrors.NewAlertSendFailedError("sns", err)
		}
		delivery.TopicMessageID = id
	}

	if len(a.cfg.EditorRecipients) > 0 && a.ses != nil {
		subject, body := renderEmail(alert)
		for _, to := range a.cfg.EditorRecipients {
			if err := a.sendEmail(ctx, to, subject, body); err != nil {
				return delivery, apperrors.NewAlertSendFailedError("ses", fmt.Errorf("%s: %w", to, err))
			}
			delivery.EmailsSent++
		}
	}

	a.logger.Info("configuration alert sent", map[string]interface{}{
		"alertId":    alert.ID,
		"storeSlug":  alert.StoreSlug,
		"templateId": alert.TemplateID,
		"emailsSent": delivery.EmailsSent,
	})
	return delivery, nil
}

func (a *Alerter) publish(ctx context.Context, alert ConfigAlert) (string, error) {
	msg, err := json.Marshal(alert)
	if err != nil {
		return "", err
	}
	out, err := a.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.cfg.TopicARN),
		Subject:  aws.String("Storefront configuration rejected"),
		Message:  aws.String(string(msg)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"origin": {DataType: aws.String("String"), StringValue: aws.String(string(alert.Origin))},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func (a *Alerter) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := a.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{ToAddresses: []string{to}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(a.cfg.FromEmail),
	})
	return err
}

func renderEmail(alert ConfigAlert) (string, string) {
	target := alert.TemplateID
	if alert.StoreSlug != "" {
		target = alert.StoreSlug + " / " + target
	}
	subject := fmt.Sprintf("Page layout rejected: %s", target)

	var b strings.Builder
	fmt.Fprintf(&b, "The page layout for %s was rejected during %s.\n\n", target, alert.Origin)
	for _, p := range alert.Problems {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	fmt.Fprintf(&b, "\nAlert %s raised at %s.\n", alert.ID, alert.RaisedAt.Format(time.RFC3339))
	return subject, b.String()
}
