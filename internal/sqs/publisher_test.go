package sqs

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendRecorder struct {
	sent []*sqs.SendMessageInput
	err  error
}

func (s *sendRecorder) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, params)
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestPublisher_Notify(t *testing.T) {
	tests := []struct {
		name     string
		event    model.ProductEvent
		wantBody string
	}{
		{
			name:     "Notify_Created",
			event:    model.ProductEvent{Action: model.ProductCreated, ProductID: "p-1", Title: "Phone", Price: "500$", Category: model.CategoryMobile},
			wantBody: `{"action":"created","product_id":"p-1","title":"Phone","price":"500$","category":"Mobile"}`,
		},
		{
			name:     "Notify_Updated",
			event:    model.ProductEvent{Action: model.ProductUpdated, ProductID: "p-2", Title: "TV", Price: "900$", Category: model.CategoryTelevision},
			wantBody: `{"action":"updated","product_id":"p-2","title":"TV","price":"900$","category":"Television"}`,
		},
		{
			name:     "Notify_Deleted",
			event:    model.ProductEvent{Action: model.ProductDeleted, ProductID: "p-3", Title: "Shirt", Price: "20$", Category: model.CategoryClothing},
			wantBody: `{"action":"deleted","product_id":"p-3","title":"Shirt","price":"20$","category":"Clothing"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &sendRecorder{}

			require.NoError(t, NewPublisher(client, testQueueURL).Notify(context.Background(), tt.event))

			require.Len(t, client.sent, 1)
			input := client.sent[0]
			assert.Equal(t, testQueueURL, aws.ToString(input.QueueUrl))
			assert.JSONEq(t, tt.wantBody, aws.ToString(input.MessageBody))
			attr := input.MessageAttributes[actionAttribute]
			assert.Equal(t, "String", aws.ToString(attr.DataType))
			assert.Equal(t, string(tt.event.Action), aws.ToString(attr.StringValue))
		})
	}

	t.Run("send failure is wrapped", func(t *testing.T) {
		sendErr := errors.New("access denied")
		client := &sendRecorder{err: sendErr}

		err := NewPublisher(client, testQueueURL).Notify(context.Background(), model.ProductEvent{ProductID: "p-1"})

		assert.ErrorIs(t, err, sendErr)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
	})
}
