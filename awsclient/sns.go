package awsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Atlas00000/productvisualizer/models"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// SNSAPI is the subset of *sns.Client used for publishing.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSCartSink publishes cart events to an SNS topic.
type SNSCartSink struct {
	client   SNSAPI
	topicArn string
	logger   *zap.Logger
}

func NewSNSCartSink(client SNSAPI, topicArn string, logger *zap.Logger) *SNSCartSink {
	return &SNSCartSink{client: client, topicArn: topicArn, logger: logger}
}

// NewSNSClient creates an SNS client from AWS config.
func NewSNSClient(cfg sdkaws.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}

func (s *SNSCartSink) Publish(ctx context.Context, event models.CartEvent) error {
	if s.topicArn == "" {
		return errors.New("empty topicArn")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cart event: %w", err)
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: sdkaws.String(s.topicArn),
		Message:  sdkaws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(event.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", s.topicArn, err)
	}

	s.logger.Debug("Cart event published to SNS",
		zap.String("topic_arn", s.topicArn),
		zap.String("message_id", sdkaws.ToString(out.MessageId)),
	)
	return nil
}
