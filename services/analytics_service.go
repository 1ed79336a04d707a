package services

import (
	"context"
	"time"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"
)

// snapshot loads an owner's cases with statuses brought up to date as of now
func (s *TrackerService) snapshot(ctx context.Context, ownerID uint, now time.Time) ([]models.SARCase, error) {
	var cases []models.SARCase
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		cases, err = refreshAll(ctx, tx, ownerID, now)
		return err
	})
	return cases, err
}

// Dashboard returns the owner's overview counts
func (s *TrackerService) Dashboard(ctx context.Context, ownerID uint) (sar.DashboardCounts, error) {
	now := s.Now()
	cases, err := s.snapshot(ctx, ownerID, now)
	if err != nil {
		return sar.DashboardCounts{}, err
	}
	return sar.DashboardSummary(cases, now), nil
}

// OrganizationPerformance returns per-organization compliance metrics
func (s *TrackerService) OrganizationPerformance(ctx context.Context, ownerID uint) ([]sar.OrganizationMetrics, error) {
	now := s.Now()
	cases, err := s.snapshot(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	return sar.OrganizationPerformance(cases, now), nil
}

// UpcomingDeadlines lists open cases due within days of today. Zero means due today
// or already overdue.
func (s *TrackerService) UpcomingDeadlines(ctx context.Context, ownerID uint, days int) ([]sar.DeadlineRow, error) {
	if days < 0 {
		return nil, &sar.ValidationError{Field: "days", Message: "must not be negative"}
	}
	now := s.Now()
	cases, err := s.snapshot(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	return sar.UpcomingDeadlines(cases, days, now), nil
}

// CalendarEvents returns the owner's deadlines, submissions and open reminders
// between start and end inclusive
func (s *TrackerService) CalendarEvents(ctx context.Context, ownerID uint, start, end time.Time) ([]sar.CalendarEvent, error) {
	now := s.Now()
	cases, err := s.snapshot(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	reminders, err := s.repo.ListReminders(ctx, ownerID, ReminderFilter{})
	if err != nil {
		return nil, err
	}
	return sar.CalendarEvents(cases, reminders, start, end, now)
}
