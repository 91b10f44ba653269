package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/events"
	"github.com/spec-kit/talent-marketplace/internal/repository"
	apperrors "github.com/spec-kit/talent-marketplace/pkg/util/errorutil"
)

// LifecycleService owns every status transition of a Job and its applicants.
// All transitions are creator-gated; direct status writes through the generic
// update path are rejected so the accept fan-out invariant cannot be bypassed.
type LifecycleService struct {
	jobs       repository.JobRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// LifecycleDependencies bundles repositories for the lifecycle service.
type LifecycleDependencies struct {
	JobRepo    repository.JobRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		jobs:       deps.JobRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// JobUpdateInput carries the editable metadata fields. Nil fields are left
// untouched. Status is deliberately absent: transitions go through the
// dedicated operations.
type JobUpdateInput struct {
	Title       *string
	Description *string
	Category    *domain.JobCategory
	Budget      *int
	Duration    *string
	Location    *domain.JobLocation
	Skills      []string
	Attachments []domain.Attachment
}

// Apply records a new pending application for the job.
func (s *LifecycleService) Apply(ctx context.Context, jobID, applicantUserID, coverLetter string, proposedBudget int) (*domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatorID == applicantUserID {
		return nil, apperrors.NewInvalidOperation("cannot apply to own job", nil)
	}
	if !job.Status.AcceptsApplications() {
		return nil, apperrors.NewInvalidOperation("job is not open for applications",
			map[string]any{"status": job.Status})
	}
	if job.ApplicantByUser(applicantUserID) != nil {
		return nil, apperrors.NewConflict("already applied to this job", nil)
	}

	applicant := &domain.Applicant{
		JobID:          job.ID,
		UserID:         applicantUserID,
		CoverLetter:    coverLetter,
		ProposedBudget: proposedBudget,
		Status:         domain.ApplicantStatusPending,
	}
	if err := s.jobs.AddApplicant(ctx, applicant); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplicant) {
			return nil, apperrors.NewConflict("already applied to this job", nil)
		}
		return nil, apperrors.MapError(err)
	}
	job.Applicants = append(job.Applicants, *applicant)

	s.publishEvent(ctx, events.Event{
		Type:    events.EventJobApplied,
		JobID:   job.ID,
		ActorID: applicantUserID,
		Payload: events.JobAppliedPayload{
			ApplicantUserID: applicantUserID,
			ProposedBudget:  proposedBudget,
		},
	})
	return job, nil
}

// AcceptApplicant accepts one applicant and atomically rejects all others,
// moving the job to in-progress and recording the assignment. Only open and
// in-progress jobs take applicant decisions; the store re-checks under its
// row lock so a racing complete/cancel cannot be undone. At most one
// applicant is accepted at any observable point, even under concurrent calls.
func (s *LifecycleService) AcceptApplicant(ctx context.Context, jobID, requesterID, applicantUserID string) (*domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatorID != requesterID {
		return nil, apperrors.NewForbidden("only the job creator may accept applicants")
	}
	if !job.Status.AllowsAssignment() {
		return nil, apperrors.NewInvalidOperation("applicants cannot be accepted in the job's current status",
			map[string]any{"status": job.Status})
	}
	target := job.ApplicantByUser(applicantUserID)
	if target == nil {
		return nil, apperrors.NewNotFound("applicant", map[string]any{"user_id": applicantUserID})
	}

	rejected := make([]string, 0, len(job.Applicants))
	for _, a := range job.Applicants {
		if a.UserID != applicantUserID {
			rejected = append(rejected, a.UserID)
		}
	}

	if err := s.jobs.AssignApplicant(ctx, job.ID, applicantUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("applicant", map[string]any{"user_id": applicantUserID})
		}
		if errors.Is(err, repository.ErrJobNotAssignable) {
			return nil, apperrors.NewInvalidOperation("applicants cannot be accepted in the job's current status", nil)
		}
		return nil, apperrors.MapError(err)
	}

	updated, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventApplicantAccepted,
		JobID:   job.ID,
		ActorID: requesterID,
		Payload: events.ApplicantAcceptedPayload{
			AcceptedUserID:  applicantUserID,
			RejectedUserIDs: rejected,
		},
	})
	return updated, nil
}

// RejectApplicant rejects a single applicant on an open or in-progress job.
// No other field changes.
func (s *LifecycleService) RejectApplicant(ctx context.Context, jobID, requesterID, applicantUserID string) (*domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatorID != requesterID {
		return nil, apperrors.NewForbidden("only the job creator may reject applicants")
	}
	if !job.Status.AllowsAssignment() {
		return nil, apperrors.NewInvalidOperation("applicants cannot be rejected in the job's current status",
			map[string]any{"status": job.Status})
	}
	target := job.ApplicantByUser(applicantUserID)
	if target == nil {
		return nil, apperrors.NewNotFound("applicant", map[string]any{"user_id": applicantUserID})
	}

	if err := s.jobs.UpdateApplicantStatus(ctx, job.ID, applicantUserID, domain.ApplicantStatusRejected); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("applicant", map[string]any{"user_id": applicantUserID})
		}
		return nil, apperrors.MapError(err)
	}
	target.Status = domain.ApplicantStatusRejected

	s.publishEvent(ctx, events.Event{
		Type:    events.EventApplicantRejected,
		JobID:   job.ID,
		ActorID: requesterID,
		Payload: events.ApplicantRejectedPayload{RejectedUserID: applicantUserID},
	})
	return job, nil
}

// CompleteJob marks an in-progress job completed and credits the assigned
// expert. The completed-jobs counter is derived state: if its increment fails
// after the job write committed, the failure is logged and surfaced via the
// event payload, never rolled back.
func (s *LifecycleService) CompleteJob(ctx context.Context, jobID, requesterID string) (*domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatorID != requesterID {
		return nil, apperrors.NewForbidden("only the job creator may complete the job")
	}
	if job.Status != domain.JobStatusInProgress {
		return nil, apperrors.NewInvalidOperation("only in-progress jobs can be completed",
			map[string]any{"status": job.Status})
	}

	now := time.Now()
	job.Status = domain.JobStatusCompleted
	job.EndDate = &now
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}

	counterUpdated := false
	if job.AssignedTo != nil {
		if err := s.users.IncrementCompletedJobs(ctx, *job.AssignedTo); err != nil {
			s.logger.Error("completed-jobs counter update failed",
				zap.String("job_id", job.ID),
				zap.String("user_id", *job.AssignedTo),
				zap.Error(err))
		} else {
			counterUpdated = true
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventJobCompleted,
		JobID:   job.ID,
		ActorID: requesterID,
		Payload: events.JobCompletedPayload{
			AssignedTo:     job.AssignedTo,
			CounterUpdated: counterUpdated,
		},
	})
	return job, nil
}

// CancelJob cancels an open or in-progress job. The assignment is cleared so
// assigned_to stays coupled to the in-progress/completed states.
func (s *LifecycleService) CancelJob(ctx context.Context, jobID, requesterID string) (*domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatorID != requesterID {
		return nil, apperrors.NewForbidden("only the job creator may cancel the job")
	}
	if !domain.CanTransition(job.Status, domain.JobStatusCanceled) {
		return nil, apperrors.NewInvalidOperation("job cannot be canceled in its current status",
			map[string]any{"status": job.Status})
	}

	previous := job.Status
	job.Status = domain.JobStatusCanceled
	job.AssignedTo = nil
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventJobCanceled,
		JobID:   job.ID,
		ActorID: requesterID,
		Payload: events.JobCanceledPayload{PreviousStatus: previous},
	})
	return job, nil
}

// UpdateJob merges metadata edits into the job. Status is not editable here.
func (s *LifecycleService) UpdateJob(ctx context.Context, jobID, requesterID string, input JobUpdateInput) (*domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatorID != requesterID {
		return nil, apperrors.NewForbidden("only the job creator may edit the job")
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Category != nil {
		if !domain.ValidCategory(*input.Category) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": *input.Category})
		}
		job.Category = *input.Category
	}
	if input.Budget != nil {
		if *input.Budget <= 0 {
			return nil, apperrors.NewValidationError("budget must be positive", nil)
		}
		job.Budget = *input.Budget
	}
	if input.Duration != nil {
		job.Duration = *input.Duration
	}
	if input.Location != nil {
		if !domain.ValidLocation(*input.Location) {
			return nil, apperrors.NewValidationError("unknown location", map[string]any{"location": *input.Location})
		}
		job.Location = *input.Location
	}
	if input.Skills != nil {
		job.Skills = input.Skills
	}
	if input.Attachments != nil {
		job.Attachments = input.Attachments
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}
	return job, nil
}

// DeleteJob hard-deletes the job; applicants cascade at the store.
func (s *LifecycleService) DeleteJob(ctx context.Context, jobID, requesterID string) error {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.CreatorID != requesterID {
		return apperrors.NewForbidden("only the job creator may delete the job")
	}

	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventJobDeleted,
		JobID:   job.ID,
		ActorID: requesterID,
		Payload: events.JobDeletedPayload{Title: job.Title},
	})
	return nil
}

func (s *LifecycleService) loadJob(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, apperrors.MapError(err)
	}
	return job, nil
}

func (s *LifecycleService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
