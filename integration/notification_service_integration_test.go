package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository/memory"
	sqspkg "github.com/iyhunko/product-catalog/internal/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSQSClient implements the ConsumerAPI interface for testing.
type MockSQSClient struct {
	mock.Mock
}

func (m *MockSQSClient) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.ReceiveMessageOutput), args.Error(1)
}

func (m *MockSQSClient) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.DeleteMessageOutput), args.Error(1)
}

func eventBody(t *testing.T, event model.ProductEvent) *string {
	t.Helper()
	b, err := json.Marshal(event)
	require.NoError(t, err)
	body := string(b)
	return &body
}

func TestNotificationService_Integration(t *testing.T) {
	const queueURL = "https://sqs.us-east-1.amazonaws.com/123456789/test-queue"

	tests := []struct {
		name        string
		messages    []types.Message
		wantDeleted []string
		wantEvents  []model.ProductAction
	}{
		{
			name: "created event is handled and acknowledged",
			messages: []types.Message{{
				Body:          eventBody(t, model.ProductEvent{Action: model.ProductCreated, ProductID: "p-1", Title: "Phone", Price: "500$", Category: model.CategoryMobile}),
				ReceiptHandle: aws.String("r-created"),
			}},
			wantDeleted: []string{"r-created"},
			wantEvents:  []model.ProductAction{model.ProductCreated},
		},
		{
			name: "mixed batch acknowledges only decodable events",
			messages: []types.Message{
				{Body: eventBody(t, model.ProductEvent{Action: model.ProductUpdated, ProductID: "p-1"}), ReceiptHandle: aws.String("r-0")},
				{Body: aws.String("invalid json message"), ReceiptHandle: aws.String("r-1")},
				{Body: nil, ReceiptHandle: aws.String("r-2")},
				{Body: eventBody(t, model.ProductEvent{Action: model.ProductDeleted, ProductID: "p-2"}), ReceiptHandle: aws.String("r-3")},
			},
			wantDeleted: []string{"r-0", "r-3"},
			wantEvents:  []model.ProductAction{model.ProductUpdated, model.ProductDeleted},
		},
		{
			name:     "undecodable message is never deleted",
			messages: []types.Message{{Body: aws.String(`{"action":"created"}`), ReceiptHandle: aws.String("r-orphan")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockSQSClient)
			mockClient.On("ReceiveMessage", mock.Anything, mock.Anything).
				Return(&sqs.ReceiveMessageOutput{Messages: tt.messages}, nil).Once()
			for _, handle := range tt.wantDeleted {
				handle := handle
				mockClient.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(params *sqs.DeleteMessageInput) bool {
					return aws.ToString(params.ReceiptHandle) == handle
				})).Return(&sqs.DeleteMessageOutput{}, nil).Once()
			}
			mockClient.On("ReceiveMessage", mock.Anything, mock.Anything).
				Return(&sqs.ReceiveMessageOutput{}, nil).After(5 * time.Millisecond)

			var mu sync.Mutex
			var actions []model.ProductAction
			consumer := sqspkg.NewConsumer(mockClient, queueURL, func(_ context.Context, e model.ProductEvent) error {
				mu.Lock()
				defer mu.Unlock()
				actions = append(actions, e.Action)
				return nil
			})

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			assert.ErrorIs(t, consumer.Start(ctx), context.DeadlineExceeded)

			mockClient.AssertExpectations(t)
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, tt.wantEvents, actions)
		})
	}
}

// queue is an in-process SQS stand-in shared by a Publisher and a Consumer.
type queue struct {
	mu       sync.Mutex
	messages []types.Message
	deleted  []string
}

func (q *queue) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	handle := "receipt-" + strconv.Itoa(len(q.messages))
	q.messages = append(q.messages, types.Message{Body: params.MessageBody, ReceiptHandle: &handle})
	return &sqs.SendMessageOutput{}, nil
}

func (q *queue) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	q.mu.Lock()
	pending := q.messages
	q.messages = nil
	q.mu.Unlock()

	if len(pending) == 0 {
		// Long polling
		select {
		case <-ctx.Done():
		case <-time.After(10 * time.Millisecond):
		}
	}
	return &sqs.ReceiveMessageOutput{Messages: pending}, nil
}

func (q *queue) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deleted = append(q.deleted, *params.ReceiptHandle)
	return &sqs.DeleteMessageOutput{}, nil
}

func (q *queue) deletedCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.deleted)
}

func TestCatalogNotifications_Integration(t *testing.T) {
	q := &queue{}
	queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/product-notifications"
	publisher := sqspkg.NewPublisher(q, queueURL)
	router := NewTestRouter(memory.NewProductStore(memory.DefaultProduct()), publisher)

	var list struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	w := serve(t, router, http.MethodGet, "/products", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Products, 1)

	w = serve(t, router, http.MethodDelete, "/products/"+list.Products[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	consumer := sqspkg.NewConsumer(q, queueURL, sqspkg.LogEvent)
	done := make(chan error, 1)
	go func() {
		done <- consumer.Start(ctx)
	}()

	require.Eventually(t, func() bool { return q.deletedCount() == 1 }, time.Second, 10*time.Millisecond,
		"the deleted event is consumed and acknowledged")
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
