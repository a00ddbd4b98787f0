package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/iyhunko/product-catalog/internal/model"
)

const (
	maxMessagesPerPoll = 10
	longPollSeconds    = 20
	receiveRetryDelay  = time.Second
)

var errNoProductID = errors.New("message has no product id")

// ConsumerAPI defines the interface for SQS operations used by Consumer.
type ConsumerAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// EventHandler processes one product event. A message is acknowledged only
// when its handler returns nil.
type EventHandler func(ctx context.Context, event model.ProductEvent) error

// Consumer reads product events from an SQS queue.
type Consumer struct {
	client     ConsumerAPI
	queueURL   string
	handle     EventHandler
	retryDelay time.Duration
}

// NewConsumer creates a Consumer. A nil handler logs every event.
func NewConsumer(client ConsumerAPI, queueURL string, handler EventHandler) *Consumer {
	if handler == nil {
		handler = LogEvent
	}
	return &Consumer{
		client:     client,
		queueURL:   queueURL,
		handle:     handler,
		retryDelay: receiveRetryDelay,
	}
}

// LogEvent writes the event to the default logger.
func LogEvent(_ context.Context, event model.ProductEvent) error {
	slog.Info("Received product notification",
		slog.String("action", string(event.Action)),
		slog.String("product_id", event.ProductID),
		slog.String("title", event.Title),
		slog.String("price", event.Price),
		slog.String("category", string(event.Category)),
	)
	return nil
}

// Start polls the queue until the context is cancelled. Failed polls are
// retried after a short delay.
func (c *Consumer) Start(ctx context.Context) error {
	slog.Info("Starting SQS consumer", slog.String("queueURL", c.queueURL))

	for {
		if err := ctx.Err(); err != nil {
			slog.Info("Stopping SQS consumer")
			return err
		}
		if err := c.receiveMessages(ctx); err != nil {
			slog.Error("Error receiving messages", slog.Any("err", err))
			select {
			case <-ctx.Done():
			case <-time.After(c.retryDelay):
			}
		}
	}
}

func (c *Consumer) receiveMessages(ctx context.Context) error {
	result, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(c.queueURL),
		MaxNumberOfMessages:   maxMessagesPerPoll,
		WaitTimeSeconds:       longPollSeconds,
		MessageAttributeNames: []string{actionAttribute},
	})
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, message := range result.Messages {
		if err := c.processMessage(ctx, message); err != nil {
			// left on the queue; SQS redelivers it after the visibility timeout
			slog.Error("Error processing message", slog.Any("err", err), slog.String("message_id", aws.ToString(message.MessageId)))
			continue
		}

		if err := c.deleteMessage(ctx, message); err != nil {
			slog.Error("Error deleting message", slog.Any("err", err))
		}
	}

	return nil
}

func (c *Consumer) processMessage(ctx context.Context, message types.Message) error {
	event, err := decodeEvent(message)
	if err != nil {
		return err
	}
	return c.handle(ctx, event)
}

func decodeEvent(message types.Message) (model.ProductEvent, error) {
	var event model.ProductEvent
	if message.Body == nil {
		return event, fmt.Errorf("message body is nil")
	}
	if err := json.Unmarshal([]byte(*message.Body), &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if event.ProductID == "" {
		return event, errNoProductID
	}
	return event, nil
}

func (c *Consumer) deleteMessage(ctx context.Context, message types.Message) error {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
