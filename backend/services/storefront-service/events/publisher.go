package events

import (
	"context"
	"encoding/json"
	"fmt"

	aws_pkg "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/pkg/aws"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"go.uber.org/zap"
)

// Counter records business counters. *aws_pkg.MetricsClient satisfies it.
type Counter interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordValue(ctx context.Context, metricName string, value float64, dimensions map[string]string) error
}

// Publisher fans order lifecycle events out to an SNS topic and CloudWatch
// counters. Either sink may be absent.
type Publisher struct {
	sns      aws_pkg.SNSPublisher
	topicArn string
	metrics  Counter
	logger   *zap.Logger
}

func NewPublisher(sns aws_pkg.SNSPublisher, topicArn string, metrics Counter, logger *zap.Logger) *Publisher {
	return &Publisher{sns: sns, topicArn: topicArn, metrics: metrics, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, evt models.OrderEvent) error {
	p.record(ctx, evt)

	if p.sns == nil || p.topicArn == "" {
		p.logger.Debug("SNS not configured, skipping event publish", zap.String("event", evt.Type))
		return nil
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.Type, err)
	}

	attrs := map[string]string{"eventType": evt.Type, "status": evt.Status}
	if err := p.sns.Publish(ctx, p.topicArn, body, attrs); err != nil {
		return err
	}

	p.logger.Info("Order event published",
		zap.String("event", evt.Type),
		zap.String("order_id", evt.OrderID),
	)
	return nil
}

func (p *Publisher) record(ctx context.Context, evt models.OrderEvent) {
	if p.metrics == nil {
		return
	}
	dims := map[string]string{"Status": evt.Status}
	switch evt.Type {
	case models.EventOrderCreated:
		_ = p.metrics.RecordCount(ctx, aws_pkg.MetricOrdersCreated, dims)
		_ = p.metrics.RecordValue(ctx, aws_pkg.MetricOrderValue, evt.Total, nil)
	case models.EventOrderStatusChanged:
		_ = p.metrics.RecordCount(ctx, aws_pkg.MetricOrderStatusChanged, dims)
	}
}
