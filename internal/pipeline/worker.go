package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/botschema/internal/extract"
	"github.com/dgallion1/botschema/internal/parser"
)

// Worker runs the extraction of one document at a time.
type Worker struct {
	log           *slog.Logger
	opts          extract.Options
	contentRootID string
	stats         *extract.Stats
}

func NewWorker(log *slog.Logger, opts extract.Options, contentRootID string, stats *extract.Stats) *Worker {
	return &Worker{
		log:           log,
		opts:          opts,
		contentRootID: contentRootID,
		stats:         stats,
	}
}

// Process parses the job's document and extracts its catalogue. Any error
// fails the job; partial catalogues are never stored.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "queued")
		return
	}
	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.contentRootID)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	log.Info("parsed document", "title", doc.Title, "nodes", len(doc.Nodes))

	// Phase 2: Walk, index, resolve.
	job.SetStatus(StatusExtracting, "extracting")
	opts := w.opts
	opts.Logger = log
	cat, err := extract.Extract(doc, opts)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	job.SetCatalogue(cat)
	job.SetFileData(nil)
	snap := job.Snapshot()
	if w.stats != nil {
		w.stats.Record(time.Since(start), snap.Progress.Entities)
	}
	log.Info("extraction complete",
		"version", cat.Version,
		"groups", snap.Progress.Groups,
		"entities", snap.Progress.Entities,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	job.SetStatus(StatusCompleted, "done")
}
