// Package queue moves document-fetch jobs through Kafka, so the HTTP
// handler that accepts UJS search results never blocks on downloads.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"cleanslate/internal/sourcerecord/metrics"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
)

// Topic is the fetch job topic.
const Topic = "cleanslate.sourcerecords.fetch"

// FetchJob asks the worker to download one source record's document.
type FetchJob struct {
	SourceRecordID string `json:"source_record_id"`
}

// Publisher enqueues fetch jobs.
type Publisher struct {
	client  *kgo.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewPublisher constructs a fetch job publisher.
func NewPublisher(client *kgo.Client, logger *slog.Logger, m *metrics.Metrics) *Publisher {
	return &Publisher{client: client, logger: logger, metrics: m}
}

// EnqueueFetch publishes a fetch job for one source record. Keying by the
// record id keeps retries for the same document in order.
func (p *Publisher) EnqueueFetch(ctx context.Context, recordID id.SourceRecordID) error {
	payload, err := json.Marshal(FetchJob{SourceRecordID: recordID.String()})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode fetch job")
	}
	record := &kgo.Record{
		Topic: Topic,
		Key:   []byte(recordID.String()),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "enqueue fetch job")
	}
	p.metrics.IncrementFetchJobs("enqueued")
	return nil
}

// Processor handles one fetch job. The source record service implements it.
type Processor interface {
	ProcessFetch(ctx context.Context, recordID id.SourceRecordID) error
}

// Worker consumes fetch jobs and hands them to the processor.
type Worker struct {
	client    *kgo.Client
	processor Processor
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewWorker constructs a fetch worker.
func NewWorker(client *kgo.Client, processor Processor, logger *slog.Logger, m *metrics.Metrics) *Worker {
	return &Worker{client: client, processor: processor, logger: logger, metrics: m}
}

// Run polls for fetch jobs until the context is cancelled. A failing job is
// logged and committed anyway; the record keeps its FETCH_FAILED status so a
// user can retry it, and one bad url can't wedge the partition.
func (w *Worker) Run(ctx context.Context) error {
	for {
		fetches := w.client.PollFetches(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			w.logger.ErrorContext(ctx, "fetch queue poll error",
				"topic", topic, "partition", partition, "error", err)
		})

		fetches.EachRecord(func(record *kgo.Record) {
			w.handle(ctx, record)
		})

		if err := w.client.CommitUncommittedOffsets(ctx); err != nil {
			w.logger.ErrorContext(ctx, "fetch queue commit failed", "error", err)
		}
	}
}

func (w *Worker) handle(ctx context.Context, record *kgo.Record) {
	var job FetchJob
	if err := json.Unmarshal(record.Value, &job); err != nil {
		w.logger.ErrorContext(ctx, "malformed fetch job dropped", "error", err)
		w.metrics.IncrementFetchJobs("malformed")
		return
	}
	recordID, err := id.ParseSourceRecordID(job.SourceRecordID)
	if err != nil {
		w.logger.ErrorContext(ctx, "fetch job with bad record id dropped",
			"source_record_id", job.SourceRecordID, "error", err)
		w.metrics.IncrementFetchJobs("malformed")
		return
	}
	if err := w.processor.ProcessFetch(ctx, recordID); err != nil {
		w.logger.ErrorContext(ctx, "fetch job failed",
			"source_record_id", recordID, "error", err)
		w.metrics.IncrementFetchJobs("failed")
		return
	}
	w.metrics.IncrementFetchJobs("processed")
}
