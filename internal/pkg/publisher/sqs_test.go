package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSPublisher_Publish(t *testing.T) {
	client := &fakeSQS{}
	p := NewSQSPublisher(client, "https://sqs.local/queue")

	err := p.Publish(context.Background(), Message{
		ID:          "evt-1",
		Type:        "booking.status_changed",
		AggregateID: "bk-1",
		Body:        `{"booking_id":"bk-1"}`,
	})
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "https://sqs.local/queue", aws.ToString(in.QueueUrl))
	assert.Equal(t, `{"booking_id":"bk-1"}`, aws.ToString(in.MessageBody))
	assert.Equal(t, "booking.status_changed", aws.ToString(in.MessageAttributes["EventType"].StringValue))
}

func TestSQSPublisher_PublishError(t *testing.T) {
	p := NewSQSPublisher(&fakeSQS{err: errors.New("throttled")}, "q")

	err := p.Publish(context.Background(), Message{Type: "booking.created"})
	assert.ErrorContains(t, err, "throttled")
}
