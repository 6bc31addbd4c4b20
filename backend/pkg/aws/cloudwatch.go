package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

const (
	defaultLogGroup   = "/betterbite/services"
	logRetentionDays  = 30
	logFlushInterval  = 2 * time.Second
	logMaxBatchEvents = 500
)

type logsAPI interface {
	CreateLogGroup(ctx context.Context, in *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	PutRetentionPolicy(ctx context.Context, in *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
	CreateLogStream(ctx context.Context, in *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatchLogsClient is an io.Writer that buffers log lines and ships them
// to a CloudWatch Logs stream in batches. Close flushes what is left.
type CloudWatchLogsClient struct {
	api    logsAPI
	group  string
	stream string

	mu      sync.Mutex
	pending []types.InputLogEvent

	flushNow chan struct{}
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewCloudWatchLogsClient creates the log group if missing and a stream named
// after the service and start time, then starts the flush loop.
func NewCloudWatchLogsClient(ctx context.Context, cfg sdkaws.Config, logGroupName, serviceName string) (*CloudWatchLogsClient, error) {
	c, err := newCloudWatchLogsClient(ctx, cloudwatchlogs.NewFromConfig(cfg), logGroupName,
		fmt.Sprintf("%s-%d", serviceName, time.Now().Unix()))
	if err != nil {
		return nil, err
	}
	go c.run(logFlushInterval)
	return c, nil
}

func newCloudWatchLogsClient(ctx context.Context, api logsAPI, group, stream string) (*CloudWatchLogsClient, error) {
	if group == "" {
		group = defaultLogGroup
	}
	c := &CloudWatchLogsClient{
		api:      api,
		group:    group,
		stream:   stream,
		flushNow: make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if _, err := api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{LogGroupName: sdkaws.String(group)}); err != nil {
		var exists *types.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return nil, fmt.Errorf("create log group %s: %w", group, err)
		}
	}
	if _, err := api.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    sdkaws.String(group),
		RetentionInDays: sdkaws.Int32(logRetentionDays),
	}); err != nil {
		return nil, fmt.Errorf("set retention on %s: %w", group, err)
	}
	if _, err := api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  sdkaws.String(group),
		LogStreamName: sdkaws.String(stream),
	}); err != nil {
		return nil, fmt.Errorf("create log stream %s: %w", stream, err)
	}
	return c, nil
}

// Write queues one log line. It never fails; delivery errors go to stderr.
func (c *CloudWatchLogsClient) Write(p []byte) (int, error) {
	event := types.InputLogEvent{
		Message:   sdkaws.String(string(p)),
		Timestamp: sdkaws.Int64(time.Now().UnixMilli()),
	}

	c.mu.Lock()
	c.pending = append(c.pending, event)
	full := len(c.pending) >= logMaxBatchEvents
	c.mu.Unlock()

	if full {
		select {
		case c.flushNow <- struct{}{}:
		default:
		}
	}
	return len(p), nil
}

// Flush sends every queued line.
func (c *CloudWatchLogsClient) Flush(ctx context.Context) error {
	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.mu.Unlock()

	for len(batch) > 0 {
		n := len(batch)
		if n > logMaxBatchEvents {
			n = logMaxBatchEvents
		}
		if _, err := c.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
			LogGroupName:  sdkaws.String(c.group),
			LogStreamName: sdkaws.String(c.stream),
			LogEvents:     batch[:n],
		}); err != nil {
			return fmt.Errorf("put log events: %w", err)
		}
		batch = batch[n:]
	}
	return nil
}

// Close stops the flush loop and ships remaining lines.
func (c *CloudWatchLogsClient) Close() error {
	c.once.Do(func() { close(c.stop) })
	<-c.done
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.Flush(ctx)
}

func (c *CloudWatchLogsClient) run(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		case <-c.flushNow:
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.Flush(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "CloudWatch write error: %v\n", err)
		}
		cancel()
	}
}
