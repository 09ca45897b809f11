package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/botschema/internal/config"
	"github.com/dgallion1/botschema/internal/extract"
)

// Orchestrator manages the extraction queue and its workers.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	stats *extract.Stats
	log   *slog.Logger
	cfg   config.Config
	opts  extract.Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, stats *extract.Stats, log *slog.Logger) *Orchestrator {
	opts := extract.DefaultOptions()
	if cfg.StartMarker != "" {
		opts.StartMarker = cfg.StartMarker
	}
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		stats: stats,
		log:   log,
		cfg:   cfg,
		opts:  opts,
	}
}

// Start launches worker goroutines. Each extraction itself is sequential;
// workers only run independent documents side by side.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.log, o.opts, o.cfg.ContentRootID, o.stats)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a job. A document identical to one already extracted is
// answered from that job's catalogue without queueing.
func (o *Orchestrator) Submit(job *Job) error {
	if job.ContentHash == "" {
		job.ContentHash = ContentHashHex(job.FileData())
	}
	if prev := o.jobs.FindCompleted(job.ContentHash); prev != nil {
		job.SetCatalogue(prev.Catalogue())
		job.SetFileData(nil)
		job.SetStatus(StatusCompleted, "deduplicated")
		o.jobs.Put(job)
		o.log.Info("duplicate document, reusing catalogue", "job_id", job.ID, "previous_job_id", prev.ID)
		return nil
	}

	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the extraction latency window.
func (o *Orchestrator) Stats() *extract.Stats {
	return o.stats
}
