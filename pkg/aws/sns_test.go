package aws

import (
	"context"
	"errors"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{}, f.err
}

const testTopic = "arn:aws:sns:us-east-1:000000000000:order-events"

func TestSNSClient_PublishTagsEventType(t *testing.T) {
	api := &fakeSNS{}
	c := &SNSClient{api: api}

	err := c.Publish(context.Background(), testTopic, "order.placed", map[string]string{"order_number": "ORD-1"})
	require.NoError(t, err)

	require.Len(t, api.inputs, 1)
	in := api.inputs[0]
	assert.Equal(t, testTopic, *in.TopicArn)
	assert.JSONEq(t, `{"order_number":"ORD-1"}`, *in.Message)
	assert.Equal(t, "order.placed", *in.MessageAttributes[EventTypeAttribute].StringValue)
	assert.Equal(t, "String", *in.MessageAttributes[EventTypeAttribute].DataType)
}

func TestSNSClient_Errors(t *testing.T) {
	api := &fakeSNS{err: errors.New("throttled")}
	c := &SNSClient{api: api}
	ctx := context.Background()

	assert.ErrorIs(t, c.Publish(ctx, "", "order.placed", struct{}{}), ErrEmptyTopic)
	assert.Error(t, c.Publish(ctx, testTopic, "order.placed", make(chan int)))
	assert.Empty(t, api.inputs)

	err := c.Publish(ctx, testTopic, "order.placed", struct{}{})
	assert.ErrorContains(t, err, "throttled")
}

func TestNewSNSClient(t *testing.T) {
	c := NewSNSClient(sdkaws.Config{Region: "us-east-1"})
	assert.ErrorIs(t, c.Publish(context.Background(), "", "order.placed", nil), ErrEmptyTopic)
}
