// Package publisher delivers outbox events to a message queue.
package publisher

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// Message is one event to deliver.
type Message struct {
	ID          string
	Type        string
	AggregateID string
	Body        string
}

// SendMessageAPI is the subset of the SQS client used here.
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends messages to one queue.
type SQSPublisher struct {
	client   SendMessageAPI
	queueURL string
}

// NewSQSPublisher wraps an SQS client.
func NewSQSPublisher(client SendMessageAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// NewSQSPublisherFromEnv builds a client from the default AWS credential chain.
func NewSQSPublisherFromEnv(ctx context.Context, region, queueURL string) (*SQSPublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSQSPublisher(sqs.NewFromConfig(cfg), queueURL), nil
}

// Publish sends msg with its type and aggregate id as message attributes.
func (p *SQSPublisher) Publish(ctx context.Context, msg Message) error {
	_, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(msg.Body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.ID),
			},
			"EventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.Type),
			},
			"AggregateID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.AggregateID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send %s to SQS: %w", msg.Type, err)
	}
	return nil
}
