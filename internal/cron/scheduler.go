package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/services"
)

const digestTimeout = 2 * time.Minute

// Scheduler runs the periodic jobs: a daily digest of pending reviews per
// teacher, published as notification events.
type Scheduler struct {
	cron          *cron.Cron
	repo          repositories.Repository
	stats         services.StatsService
	notifications services.NotificationEventService
	logger        *slog.Logger
}

func NewScheduler(
	repo repositories.Repository,
	stats services.StatsService,
	notifications services.NotificationEventService,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		repo:          repo,
		stats:         stats,
		notifications: notifications,
		logger:        logger,
	}
}

// Start registers the jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.runPendingDigest); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Cron scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler stopped")
}

// runPendingDigest publishes one digest event per teacher that has pending
// reviews in any of their groups.
func (s *Scheduler) runPendingDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	s.logger.Info("Running pending review digest job")

	teachers, err := s.repo.Teacher().ListActive(ctx)
	if err != nil {
		s.logger.Error("Digest job failed to list teachers", "error", err)
		return
	}

	published := 0
	for _, teacher := range teachers {
		teacherStats, err := s.stats.TeacherStats(ctx, teacher.ID)
		if err != nil {
			s.logger.Error("Digest job failed to compute teacher stats",
				"teacher_id", teacher.ID, "error", err)
			continue
		}
		if teacherStats.PendingReviews == 0 {
			continue
		}

		groups, err := s.repo.Teacher().ListGroupsByTeacher(ctx, teacher.ID)
		if err != nil {
			s.logger.Error("Digest job failed to list teacher groups",
				"teacher_id", teacher.ID, "error", err)
			continue
		}
		groupNumbers := make([]string, 0, len(groups))
		for _, g := range groups {
			groupNumbers = append(groupNumbers, g.GroupNumber)
		}

		if err := s.notifications.NotifyPendingDigest(ctx, teacher.ID, groupNumbers, teacherStats.PendingReviews); err != nil {
			s.logger.Error("Digest job failed to publish event",
				"teacher_id", teacher.ID, "error", err)
			continue
		}
		published++
	}

	s.logger.Info("Pending review digest finished",
		"teachers", len(teachers), "digests_published", published)
}
