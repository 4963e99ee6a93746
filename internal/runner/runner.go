package runner

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobradar/internal/filter"
	"go-jobradar/internal/ledger"
	"go-jobradar/internal/remoteok"

	"golang.org/x/time/rate"
)

// Fetcher produces the candidate job set for one run.
type Fetcher interface {
	Fetch(ctx context.Context) ([]remoteok.Job, error)
}

// Notifier delivers a single job to the notification sink.
type Notifier interface {
	SendJob(ctx context.Context, job remoteok.Job) error
}

// Mirror is an optional best-effort secondary sink.
type Mirror interface {
	SendJob(job remoteok.Job) error
	SendStatus(message string) error
}

// Stats are the counters for one run. They are reported at the end and
// never persisted.
type Stats struct {
	TotalFetched int
	Fresh        int
	AlreadySent  int
	Matched      int
	Sent         int
	SendFailed   int
}

type Options struct {
	Fetcher  Fetcher
	Ledger   *ledger.Ledger
	Criteria *filter.Criteria
	Notifier Notifier
	Mirror   Mirror // nil disables mirroring
	Window   time.Duration
	MaxSends int
	// SendsPerSecond paces webhook posts so a backlog after an outage
	// does not trip Discord's rate limit. Zero means one per second.
	SendsPerSecond float64
}

// Runner drives one fetch → filter → notify cycle and exits.
type Runner struct {
	fetcher  Fetcher
	ledger   *ledger.Ledger
	criteria *filter.Criteria
	notifier Notifier
	mirror   Mirror
	window   time.Duration
	maxSends int
	limiter  *rate.Limiter
	now      func() time.Time
}

func New(opts Options) *Runner {
	perSec := opts.SendsPerSecond
	if perSec <= 0 {
		perSec = 1
	}
	return &Runner{
		fetcher:  opts.Fetcher,
		ledger:   opts.Ledger,
		criteria: opts.Criteria,
		notifier: opts.Notifier,
		mirror:   opts.Mirror,
		window:   opts.Window,
		maxSends: opts.MaxSends,
		limiter:  rate.NewLimiter(rate.Limit(perSec), 1),
		now:      time.Now,
	}
}

// Run performs a single cycle. Nothing in the per-record pipeline is fatal:
// a fetch failure reports zero activity, a send failure moves on to the next
// record, and the run always ends with a statistics report.
func (r *Runner) Run(ctx context.Context) Stats {
	var stats Stats

	jobs, err := r.fetcher.Fetch(ctx)
	if err != nil {
		log.Printf("❌ Error fetching jobs: %v", err)
		r.report(stats)
		return stats
	}
	stats.TotalFetched = len(jobs)
	log.Printf("✅ Fetched %d total jobs from RemoteOK", len(jobs))

	for _, job := range jobs {
		// order matters: freshness before dedup before criteria before send
		if !filter.Fresh(job, r.window, r.now()) {
			continue
		}
		stats.Fresh++

		if job.ID == "" {
			log.Printf("⚠️ Job %q has no id, cannot dedup, skipping", job.Position)
			continue
		}
		if r.ledger.IsSent(job.ID) {
			stats.AlreadySent++
			continue
		}

		if !r.criteria.Matches(job) {
			continue
		}
		stats.Matched++

		log.Printf("📤 Processing: %s", job.Position)
		if err := r.limiter.Wait(ctx); err != nil {
			log.Printf("❌ Run cancelled: %v", err)
			break
		}
		if err := r.notifier.SendJob(ctx, job); err != nil {
			log.Printf("❌ Error sending to Discord: %v", err)
			stats.SendFailed++
			continue
		}
		stats.Sent++
		log.Printf("✅ Sent to Discord: %s at %s", job.Position, job.Company)

		if r.mirror != nil {
			if err := r.mirror.SendJob(job); err != nil {
				log.Printf("⚠️ Failed to mirror job to Telegram: %v", err)
			}
		}

		// the notification already went out, so a failed ledger write is
		// logged and accepted: worst case is one future duplicate
		if err := r.ledger.Append(job.ID); err != nil {
			log.Printf("❌ Error saving sent jobs: %v", err)
		}

		if stats.Sent >= r.maxSends {
			log.Printf("⚠️ Reached %d jobs limit for this run", stats.Sent)
			break
		}
	}

	r.report(stats)
	return stats
}

func (r *Runner) report(stats Stats) {
	log.Println("📊 Run Statistics:")
	log.Printf("   • Total jobs fetched: %d", stats.TotalFetched)
	log.Printf("   • Fresh jobs (last %.0fh): %d", r.window.Hours(), stats.Fresh)
	log.Printf("   • Already sent (skipped): %d", stats.AlreadySent)
	log.Printf("   • Matched criteria: %d", stats.Matched)
	log.Printf("   • Successfully sent: %d", stats.Sent)
	if stats.SendFailed > 0 {
		log.Printf("   • Failed to send: %d", stats.SendFailed)
	}

	if r.mirror != nil {
		status := fmt.Sprintf("Run complete: %d fetched, %d fresh, %d sent.", stats.TotalFetched, stats.Fresh, stats.Sent)
		if err := r.mirror.SendStatus(status); err != nil {
			log.Printf("⚠️ Failed to mirror run status: %v", err)
		}
	}
}
