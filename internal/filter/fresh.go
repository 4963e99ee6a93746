package filter

import (
	"log"
	"time"

	"go-jobradar/internal/remoteok"
)

// Fresh reports whether the job was posted within window of now.
//
// Timestamp policy is fail-closed: a zero or missing epoch counts as stale.
// A posting we cannot date is more likely ancient than minutes old, and a
// skipped fresh job comes around again on the next scheduled run.
func Fresh(job remoteok.Job, window time.Duration, now time.Time) bool {
	if job.Epoch <= 0 {
		log.Printf("⚠️ Job %s has no timestamp, skipping", idOrUnknown(job))
		return false
	}

	posted := time.Unix(job.Epoch, 0)
	if posted.Before(now.Add(-window)) {
		log.Printf("⏰ Skipping old job: %s (%.1fh old)", titleOrUnknown(job), now.Sub(posted).Hours())
		return false
	}
	return true
}

func idOrUnknown(job remoteok.Job) string {
	if job.ID == "" {
		return "unknown"
	}
	return job.ID
}

func titleOrUnknown(job remoteok.Job) string {
	if job.Position == "" {
		return "Unknown"
	}
	return job.Position
}
