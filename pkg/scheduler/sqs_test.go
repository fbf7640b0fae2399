package scheduler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/scheduler"
	"github.com/cbailey/wallet-ledger/pkg/scheduler/mocks"
)

func TestScheduleStatusCheck(t *testing.T) {
	tx := &models.Transaction{
		Id:          "tx-1",
		UserId:      "user-a",
		Type:        models.TOPUP,
		Status:      models.PENDING,
		AmountMinor: 4000,
		Currency:    "USD",
		Gateway:     "stripe",
		GatewayRef:  "pay_123",
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			if *in.QueueUrl != "https://sqs.test/queue" || in.DelaySeconds != 300 {
				return false
			}
			var decoded models.Transaction
			if err := json.Unmarshal([]byte(*in.MessageBody), &decoded); err != nil {
				return false
			}
			return decoded.Id == "tx-1" && decoded.GatewayRef == "pay_123"
		})).Return(&sqs.SendMessageOutput{}, nil)

		s := scheduler.NewSQSScheduler(mockClient, "https://sqs.test/queue")

		err := s.ScheduleStatusCheck(context.Background(), tx, 5*time.Minute)
		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Delay Capped At SQS Maximum", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			return in.DelaySeconds == 900
		})).Return(&sqs.SendMessageOutput{}, nil)

		s := scheduler.NewSQSScheduler(mockClient, "https://sqs.test/queue")

		err := s.ScheduleStatusCheck(context.Background(), tx, time.Hour)
		assert.NoError(t, err)
	})

	t.Run("Negative Delay Sent Immediately", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			return in.DelaySeconds == 0
		})).Return(&sqs.SendMessageOutput{}, nil)

		s := scheduler.NewSQSScheduler(mockClient, "https://sqs.test/queue")

		err := s.ScheduleStatusCheck(context.Background(), tx, -time.Minute)
		assert.NoError(t, err)
	})

	t.Run("Send Failure", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.Anything).
			Return(nil, errors.New("queue unavailable"))

		s := scheduler.NewSQSScheduler(mockClient, "https://sqs.test/queue")

		err := s.ScheduleStatusCheck(context.Background(), tx, time.Minute)
		assert.ErrorContains(t, err, "failed to send message to SQS")
	})
}
