// Package scheduler runs the periodic notification jobs: birthday
// greetings to staff and assessment-due reminders to administrators.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"carehub/internal/mailer"
	"carehub/internal/repository"
)

// assessmentLookahead is how far ahead reminders are sent for upcoming
// assessment and care-plan dates.
const assessmentLookahead = 10 * 24 * time.Hour

// Scheduler owns the background jobs. Each job runs on its own ticker
// and stops when the context is cancelled.
type Scheduler struct {
	users       repository.UserRepository
	assessments repository.AssessmentRepository
	notifier    mailer.Notifier

	birthdayEvery   time.Duration
	assessmentEvery time.Duration
}

func New(users repository.UserRepository, assessments repository.AssessmentRepository, notifier mailer.Notifier, birthdayEvery, assessmentEvery time.Duration) *Scheduler {
	return &Scheduler{
		users:           users,
		assessments:     assessments,
		notifier:        notifier,
		birthdayEvery:   birthdayEvery,
		assessmentEvery: assessmentEvery,
	}
}

// Start launches the job loops. It returns immediately; the loops run
// until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx, "birthday", s.birthdayEvery, s.runBirthdayJob)
	go s.loop(ctx, "assessment", s.assessmentEvery, s.runAssessmentJob)
}

func (s *Scheduler) loop(ctx context.Context, name string, every time.Duration, job func(context.Context) error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Info().Str("job", name).Dur("interval", every).Msg("scheduler job started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("job", name).Msg("scheduler job stopped")
			return
		case <-ticker.C:
			if err := job(ctx); err != nil {
				log.Error().Err(err).Str("job", name).Msg("scheduler job failed")
			}
		}
	}
}

// runBirthdayJob emails a greeting to every staff member whose date of
// birth matches today.
func (s *Scheduler) runBirthdayJob(ctx context.Context) error {
	now := time.Now().UTC()
	users, err := s.users.ListWithBirthdayOn(ctx, int(now.Month()), now.Day())
	if err != nil {
		return err
	}

	for i := range users {
		user := &users[i]
		subject, body := mailer.Birthday(user.FullName())
		if err := s.notifier.Send(ctx, user.Username, user.FullName(), subject, body); err != nil {
			log.Warn().Err(err).Str("to", user.Username).Msg("birthday greeting failed")
		}
	}
	return nil
}

// runAssessmentJob reminds every active superuser of assessments or
// care-plan reviews due within the lookahead window.
func (s *Scheduler) runAssessmentJob(ctx context.Context) error {
	now := time.Now().UTC()
	due, err := s.assessments.DueBetween(ctx, now, now.Add(assessmentLookahead))
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	admins, err := s.users.ListActiveSuperusers(ctx)
	if err != nil {
		return err
	}

	for i := range due {
		assessment := &due[i]
		residentName := "a resident"
		if assessment.Resident != nil {
			residentName = assessment.Resident.FullName()
		}

		kind, dueDate := "assessment", ""
		switch {
		case assessment.AssessmentNextDate != nil && !assessment.AssessmentNextDate.After(now.Add(assessmentLookahead)) && !assessment.AssessmentNextDate.Before(now.Truncate(24*time.Hour)):
			dueDate = assessment.AssessmentNextDate.Format("2006-01-02")
		case assessment.NCPNextDate != nil:
			kind = "nursing care plan review"
			dueDate = assessment.NCPNextDate.Format("2006-01-02")
		default:
			continue
		}

		for j := range admins {
			admin := &admins[j]
			subject, body := mailer.AssessmentDue(admin.FullName(), residentName, kind, dueDate)
			if err := s.notifier.Send(ctx, admin.Username, admin.FullName(), subject, body); err != nil {
				log.Warn().Err(err).Str("to", admin.Username).Msg("assessment reminder failed")
			}
		}
	}
	return nil
}
