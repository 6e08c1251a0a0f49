package jobs

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ReportSource produces the current daily report text.
type ReportSource interface {
	DailyReport() string
}

// ReportStore persists generated reports.
type ReportStore interface {
	PutReport(ctx context.Context, key string, body []byte) error
}

// ReportArchiver periodically snapshots the daily usage report to object
// storage. One object per run, keyed by timestamp, so consecutive
// snapshots never overwrite each other.
type ReportArchiver struct {
	source ReportSource
	store  ReportStore
	now    func() time.Time
}

// NewReportArchiver creates a ReportArchiver.
func NewReportArchiver(source ReportSource, store ReportStore) *ReportArchiver {
	return &ReportArchiver{
		source: source,
		store:  store,
		now:    time.Now,
	}
}

// ArchiveKey is the object key for a report snapshot taken at t.
func ArchiveKey(t time.Time) string {
	return fmt.Sprintf("reports/%s/daily-%s.txt", t.Format("2006-01"), t.Format("2006-01-02T15-04-05"))
}

// ProcessJobs implements the JobProcessor interface: it renders the
// current report and stores one snapshot.
func (a *ReportArchiver) ProcessJobs(ctx context.Context) error {
	key, err := a.Archive(ctx)
	if err != nil {
		return err
	}
	log.Printf("Daily report archived as %s", key)
	return nil
}

// Archive stores the current report immediately and returns the object
// key. The HTTP API uses this for on-demand archiving.
func (a *ReportArchiver) Archive(ctx context.Context) (string, error) {
	report := a.source.DailyReport()
	key := ArchiveKey(a.now())

	if err := a.store.PutReport(ctx, key, []byte(report)); err != nil {
		return "", fmt.Errorf("failed to archive report: %w", err)
	}
	return key, nil
}
