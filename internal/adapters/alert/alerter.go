package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"schedulebot/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds configuration for the operator alert channel.
type Config struct {
	Provider    string
	FromAddress string
	ToAddress   string
	SES         SESConfig
}

// NewAlerter creates an alerter from config. Provider "ses" emails the
// operator via AWS SES; "noop" or unknown logs the alert and drops it.
func NewAlerter(config Config, logger *slog.Logger) (domain.Alerter, error) {
	switch config.Provider {
	case "ses":
		awsCfg := aws.Config{
			Region: config.SES.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.SES.AccessKeyID,
					config.SES.SecretAccessKey,
					"",
				),
			),
		}
		return &sesAlerter{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: config.FromAddress,
			toAddress:   config.ToAddress,
		}, nil
	case "noop":
		return &noopAlerter{logger: logger}, nil
	default:
		logger.Warn("unknown alert provider, using noop", "provider", config.Provider)
		return &noopAlerter{logger: logger}, nil
	}
}

type sesAlerter struct {
	client      *ses.Client
	fromAddress string
	toAddress   string
}

func (a *sesAlerter) Alert(ctx context.Context, subject, body string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(a.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{a.toAddress},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}
	if _, err := a.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send alert via SES: %w", err)
	}
	return nil
}

type noopAlerter struct {
	logger *slog.Logger
}

func (a *noopAlerter) Alert(ctx context.Context, subject, body string) error {
	a.logger.Warn("operator alert", "subject", subject, "body", body)
	return nil
}
