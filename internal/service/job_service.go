package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/events"
	"github.com/spec-kit/talent-marketplace/internal/repository"
	apperrors "github.com/spec-kit/talent-marketplace/pkg/util/errorutil"
)

const defaultPageSize = 10

// JobService handles job creation and read paths.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
}

// JobDependencies bundles repositories for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Dispatcher events.Dispatcher
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{jobs: deps.JobRepo, dispatcher: deps.Dispatcher}
}

// JobCreateInput describes job creation payload.
type JobCreateInput struct {
	Title       string
	Description string
	JobType     domain.JobType
	Category    domain.JobCategory
	Budget      int
	Duration    string
	Location    domain.JobLocation
	Skills      []string
	Attachments []domain.Attachment
}

// JobListFilter describes listing filters and pagination.
type JobListFilter struct {
	CreatorID  *string
	JobType    *domain.JobType
	Category   *domain.JobCategory
	MinBudget  *int
	MaxBudget  *int
	Location   *domain.JobLocation
	Status     *domain.JobStatus
	Skills     []string
	SearchTerm *string
	Page       int
	Limit      int
	SortBy     string
	SortDesc   bool
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// CreateJob validates input and persists a new open job.
func (s *JobService) CreateJob(ctx context.Context, creatorID string, input JobCreateInput) (*domain.Job, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if !domain.ValidJobType(input.JobType) {
		return nil, apperrors.NewValidationError("unknown job type", map[string]any{"job_type": input.JobType})
	}
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	if input.Budget <= 0 {
		return nil, apperrors.NewValidationError("budget must be positive", nil)
	}
	if !domain.ValidLocation(input.Location) {
		return nil, apperrors.NewValidationError("unknown location", map[string]any{"location": input.Location})
	}

	job := &domain.Job{
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		JobType:     input.JobType,
		Category:    input.Category,
		Budget:      input.Budget,
		Duration:    strings.TrimSpace(input.Duration),
		Location:    input.Location,
		Skills:      input.Skills,
		Attachments: input.Attachments,
		Status:      domain.JobStatusOpen,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventJobCreated,
		JobID:   job.ID,
		ActorID: creatorID,
		Payload: events.JobCreatedPayload{
			CreatorID: creatorID,
			JobType:   job.JobType,
			Category:  job.Category,
			Budget:    job.Budget,
			Title:     job.Title,
		},
	})
	return job, nil
}

// ListJobs returns a page of jobs plus pagination metadata.
func (s *JobService) ListJobs(ctx context.Context, filter JobListFilter) ([]domain.Job, Pagination, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	repoFilter := repository.JobFilter{
		CreatorID:  filter.CreatorID,
		JobType:    filter.JobType,
		Category:   filter.Category,
		MinBudget:  filter.MinBudget,
		MaxBudget:  filter.MaxBudget,
		Location:   filter.Location,
		Status:     filter.Status,
		Skills:     filter.Skills,
		SearchTerm: filter.SearchTerm,
		SortBy:     filter.SortBy,
		SortDesc:   filter.SortDesc,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	jobs, err := s.jobs.List(ctx, repoFilter)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}
	total, err := s.jobs.Count(ctx, repoFilter)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return jobs, Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// GetJob returns the job aggregate, counting the view.
func (s *JobService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	if err := s.jobs.IncrementViews(ctx, jobID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, apperrors.MapError(err)
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, apperrors.MapError(err)
	}
	return job, nil
}

func (s *JobService) publishEvent(ctx context.Context, event events.Event) {
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
