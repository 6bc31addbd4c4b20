package aws

import (
	"context"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetricsAPI struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeMetricsAPI) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestMetricsClient_RecordCount(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := newMetricsClient(api, "", true)
	fixed := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	require.NoError(t, m.RecordCount(context.Background(), MetricOrdersCreated,
		map[string]string{"Status": "Pending", "Empty": "", "Service": "storefront-service"}))

	require.Len(t, api.inputs, 1)
	in := api.inputs[0]
	assert.Equal(t, "BetterBite", sdkaws.ToString(in.Namespace))
	datum := in.MetricData[0]
	assert.Equal(t, MetricOrdersCreated, sdkaws.ToString(datum.MetricName))
	assert.Equal(t, 1.0, sdkaws.ToFloat64(datum.Value))
	assert.Equal(t, types.StandardUnitCount, datum.Unit)
	assert.Equal(t, fixed, sdkaws.ToTime(datum.Timestamp))
	require.Len(t, datum.Dimensions, 2)
	assert.Equal(t, "Service", sdkaws.ToString(datum.Dimensions[0].Name))
	assert.Equal(t, "Status", sdkaws.ToString(datum.Dimensions[1].Name))
}

func TestMetricsClient_RecordLatency(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := newMetricsClient(api, "Shop", true)

	require.NoError(t, m.RecordLatency(context.Background(), MetricHTTPLatency, 1500*time.Millisecond, nil))

	datum := api.inputs[0].MetricData[0]
	assert.Equal(t, 1500.0, sdkaws.ToFloat64(datum.Value))
	assert.Equal(t, types.StandardUnitMilliseconds, datum.Unit)
	assert.Empty(t, datum.Dimensions)
}

func TestMetricsClient_Disabled(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := newMetricsClient(api, "Shop", false)

	assert.NoError(t, m.RecordValue(context.Background(), MetricOrderValue, 300, nil))
	assert.Empty(t, api.inputs)

	var nilClient *MetricsClient
	assert.False(t, nilClient.IsEnabled())
	assert.NoError(t, nilClient.RecordCount(context.Background(), MetricHTTPRequests, nil))
}

func TestMetricsClient_Error(t *testing.T) {
	m := newMetricsClient(&fakeMetricsAPI{err: assert.AnError}, "Shop", true)

	err := m.RecordCount(context.Background(), MetricHTTPErrors, nil)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "put metric HTTPErrors")
}
