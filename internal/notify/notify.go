// Package notify announces finished audits to downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/tracker-tv/phi-guard/models"
)

// Verdict is the message published for every persisted audit.
type Verdict struct {
	DeliveryID string        `json:"delivery_id,omitempty"`
	RecordID   string        `json:"record_id"`
	Repo       string        `json:"repo"`
	PRNumber   int           `json:"pr_number"`
	Status     models.Status `json:"status"`
	RiskScore  int           `json:"risk_score"`
	Findings   int           `json:"findings"`
	LedgerHash string        `json:"ledger_hash"`
}

type Notifier interface {
	Notify(ctx context.Context, v Verdict) error
}

// Noop drops every verdict.
type Noop struct{}

func (Noop) Notify(context.Context, Verdict) error { return nil }

// SQSAPI is the part of the SQS client the notifier uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSNotifier struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSNotifier loads the default AWS configuration chain.
func NewSQSNotifier(ctx context.Context, queueURL string) (*SQSNotifier, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &SQSNotifier{
		Client:   sqs.NewFromConfig(awsCfg),
		QueueURL: queueURL,
	}, nil
}

func (n *SQSNotifier) Notify(ctx context.Context, v Verdict) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding verdict: %w", err)
	}

	_, err = n.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.QueueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"status": {DataType: aws.String("String"), StringValue: aws.String(string(v.Status))},
			"repo":   {DataType: aws.String("String"), StringValue: aws.String(v.Repo)},
		},
	})
	if err != nil {
		return fmt.Errorf("sending verdict for %s #%d: %w", v.Repo, v.PRNumber, err)
	}
	return nil
}
