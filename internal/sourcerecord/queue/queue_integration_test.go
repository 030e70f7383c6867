//go:build integration

package queue

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/platform/kafka"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/testutil/containers"
)

type recordingProcessor struct {
	mu        sync.Mutex
	processed []id.SourceRecordID
	seen      chan struct{}
}

func (p *recordingProcessor) ProcessFetch(_ context.Context, recordID id.SourceRecordID) error {
	p.mu.Lock()
	p.processed = append(p.processed, recordID)
	p.mu.Unlock()
	p.seen <- struct{}{}
	return nil
}

func TestPublishAndConsume(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	producer, err := kafka.NewProducer([]string{rp.Broker})
	require.NoError(t, err)
	defer producer.Close()
	require.NoError(t, kafka.EnsureTopic(ctx, producer, Topic, 1))

	consumer, err := kafka.NewConsumer([]string{rp.Broker}, "fetch-test", Topic)
	require.NoError(t, err)
	defer consumer.Close()

	processor := &recordingProcessor{seen: make(chan struct{}, 4)}
	worker := NewWorker(consumer, processor, logger, nil)

	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- worker.Run(workerCtx) }()

	publisher := NewPublisher(producer, logger, nil)
	first, second := id.NewSourceRecordID(), id.NewSourceRecordID()
	require.NoError(t, publisher.EnqueueFetch(ctx, first))
	require.NoError(t, publisher.EnqueueFetch(ctx, second))

	for i := 0; i < 2; i++ {
		select {
		case <-processor.seen:
		case <-time.After(30 * time.Second):
			t.Fatal("timed out waiting for fetch job")
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	assert.ElementsMatch(t, []id.SourceRecordID{first, second}, processor.processed)
}
