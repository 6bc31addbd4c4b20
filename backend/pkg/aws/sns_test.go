package aws

import (
	"context"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNSAPI struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNSAPI) Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{}, f.err
}

func TestSNSClient_Publish(t *testing.T) {
	api := &fakeSNSAPI{}
	c := &SNSClient{api: api}

	err := c.Publish(context.Background(), "arn:orders", []byte(`{"type":"order.created"}`),
		map[string]string{"eventType": "order.created", "status": ""})
	require.NoError(t, err)

	require.Len(t, api.inputs, 1)
	in := api.inputs[0]
	assert.Equal(t, "arn:orders", sdkaws.ToString(in.TopicArn))
	assert.Equal(t, `{"type":"order.created"}`, sdkaws.ToString(in.Message))
	require.Len(t, in.MessageAttributes, 1)
	assert.Equal(t, "order.created", sdkaws.ToString(in.MessageAttributes["eventType"].StringValue))
	assert.Equal(t, "String", sdkaws.ToString(in.MessageAttributes["eventType"].DataType))
}

func TestSNSClient_PublishErrors(t *testing.T) {
	c := &SNSClient{api: &fakeSNSAPI{err: assert.AnError}}

	assert.ErrorIs(t, c.Publish(context.Background(), "", nil, nil), errNoTopic)
	assert.ErrorIs(t, c.Publish(context.Background(), "arn:orders", []byte("{}"), nil), assert.AnError)
}
