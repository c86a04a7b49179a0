package services

import "log/slog"

// SyncObserver is notified of the individual mutations a reconciliation
// pass performed, after they have been committed.
type SyncObserver interface {
	RecordCreated(date, templateID string)
	RecordUpdated(date, recordID string)
	OrphanRemoved(date, recordID string)
	SyncFailed(date string, err error)
}

type LogObserver struct{}

func NewLogObserver() LogObserver { return LogObserver{} }

func (LogObserver) RecordCreated(date, templateID string) {
	slog.Info("sync created record", "date", date, "template_id", templateID)
}

func (LogObserver) RecordUpdated(date, recordID string) {
	slog.Info("sync updated record", "date", date, "record_id", recordID)
}

func (LogObserver) OrphanRemoved(date, recordID string) {
	slog.Info("sync removed orphaned record", "date", date, "record_id", recordID)
}

func (LogObserver) SyncFailed(date string, err error) {
	slog.Error("sync failed", "date", date, "error", err)
}

// MultiObserver fans notifications out to several observers.
type MultiObserver []SyncObserver

func (observers MultiObserver) RecordCreated(date, templateID string) {
	for _, observer := range observers {
		observer.RecordCreated(date, templateID)
	}
}

func (observers MultiObserver) RecordUpdated(date, recordID string) {
	for _, observer := range observers {
		observer.RecordUpdated(date, recordID)
	}
}

func (observers MultiObserver) OrphanRemoved(date, recordID string) {
	for _, observer := range observers {
		observer.OrphanRemoved(date, recordID)
	}
}

func (observers MultiObserver) SyncFailed(date string, err error) {
	for _, observer := range observers {
		observer.SyncFailed(date, err)
	}
}
