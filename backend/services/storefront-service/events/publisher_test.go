package events

import (
	"context"
	"encoding/json"
	"testing"

	aws_pkg "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/pkg/aws"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type publishedMessage struct {
	topic string
	body  []byte
	attrs map[string]string
}

type fakeSNS struct {
	published []publishedMessage
	err       error
}

func (f *fakeSNS) Publish(ctx context.Context, topicArn string, message []byte, attributes map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedMessage{topicArn, message, attributes})
	return nil
}

type fakeCounter struct {
	counts []string
	values map[string]float64
}

func (f *fakeCounter) RecordCount(ctx context.Context, name string, dims map[string]string) error {
	f.counts = append(f.counts, name)
	return nil
}

func (f *fakeCounter) RecordValue(ctx context.Context, name string, v float64, dims map[string]string) error {
	if f.values == nil {
		f.values = map[string]float64{}
	}
	f.values[name] += v
	return nil
}

func TestPublish_SendsEventAndCounters(t *testing.T) {
	sns := &fakeSNS{}
	counter := &fakeCounter{}
	p := NewPublisher(sns, "arn:aws:sns:ap-south-1:123:orders", counter, zap.NewNop())

	evt := models.OrderEvent{Type: models.EventOrderCreated, OrderID: "o1", Status: models.StatusPending, Total: 300}
	require.NoError(t, p.Publish(context.Background(), evt))

	require.Len(t, sns.published, 1)
	msg := sns.published[0]
	assert.Equal(t, "arn:aws:sns:ap-south-1:123:orders", msg.topic)
	assert.Equal(t, map[string]string{"eventType": "order.created", "status": "Pending"}, msg.attrs)

	var decoded models.OrderEvent
	require.NoError(t, json.Unmarshal(msg.body, &decoded))
	assert.Equal(t, "o1", decoded.OrderID)

	assert.Equal(t, []string{aws_pkg.MetricOrdersCreated}, counter.counts)
	assert.Equal(t, 300.0, counter.values[aws_pkg.MetricOrderValue])
}

func TestPublish_StatusChangeCounter(t *testing.T) {
	counter := &fakeCounter{}
	p := NewPublisher(nil, "", counter, zap.NewNop())

	evt := models.OrderEvent{Type: models.EventOrderStatusChanged, Status: models.StatusShipped, PreviousStatus: models.StatusPending}
	require.NoError(t, p.Publish(context.Background(), evt))

	assert.Equal(t, []string{aws_pkg.MetricOrderStatusChanged}, counter.counts)
}

func TestPublish_WithoutSinks(t *testing.T) {
	p := NewPublisher(nil, "", nil, zap.NewNop())

	assert.NoError(t, p.Publish(context.Background(), models.OrderEvent{Type: models.EventOrderCreated}))
}

func TestPublish_SNSFailure(t *testing.T) {
	p := NewPublisher(&fakeSNS{err: assert.AnError}, "arn", nil, zap.NewNop())

	assert.ErrorIs(t, p.Publish(context.Background(), models.OrderEvent{Type: models.EventOrderCreated}), assert.AnError)
}
