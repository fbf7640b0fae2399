package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/cbailey/wallet-ledger/pkg/models"
)

// SQSAPI is the subset of the SQS client used by the scheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS. The queue
// feeds the confirmation worker, which resolves pending gateway transactions.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

const maxSQSDelay = 900 * time.Second // SQS caps per-message delay at 15 minutes.

// ScheduleStatusCheck sends the transaction to the reconciliation queue with
// the requested delivery delay.
func (s *SQSScheduler) ScheduleStatusCheck(ctx context.Context, tx *models.Transaction, delay time.Duration) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction for SQS: %w", err)
	}

	if delay < 0 {
		delay = 0
	}
	if delay > maxSQSDelay {
		delay = maxSQSDelay
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
