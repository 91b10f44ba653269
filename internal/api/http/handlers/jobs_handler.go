package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/talent-marketplace/internal/api/dto"
	"github.com/spec-kit/talent-marketplace/internal/auth"
	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/service"
	apperrors "github.com/spec-kit/talent-marketplace/pkg/util/errorutil"
)

// JobsHandler exposes job posting and lifecycle endpoints.
type JobsHandler struct {
	jobs      *service.JobService
	lifecycle *service.LifecycleService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService, lifecycleService *service.LifecycleService) *JobsHandler {
	return &JobsHandler{jobs: jobService, lifecycle: lifecycleService}
}

// CreateJob POST /jobs.
func (h *JobsHandler) CreateJob(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.CreateJob(c.Context(), principal.User.ID, service.JobCreateInput{
		Title:       req.Title,
		Description: req.Description,
		JobType:     req.JobType,
		Category:    req.Category,
		Budget:      req.Budget,
		Duration:    req.Duration,
		Location:    req.Location,
		Skills:      req.Skills,
		Attachments: req.Attachments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobResponse(job)})
}

// ListJobs GET /jobs.
func (h *JobsHandler) ListJobs(c *fiber.Ctx) error {
	filter := parseJobListQuery(c)
	jobs, pagination, err := h.jobs.ListJobs(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": dto.JobListResponse{Jobs: items, Pagination: pagination}})
}

// GetJob GET /jobs/:id. Each read increments the view counter.
func (h *JobsHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.jobs.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// UpdateJob PUT /jobs/:id.
func (h *JobsHandler) UpdateJob(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status != nil {
		return apperrors.NewInvalidOperation("status cannot be set directly; use the lifecycle endpoints", nil)
	}

	job, err := h.lifecycle.UpdateJob(c.Context(), c.Params("id"), principal.User.ID, service.JobUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		Duration:    req.Duration,
		Location:    req.Location,
		Skills:      req.Skills,
		Attachments: req.Attachments,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// DeleteJob DELETE /jobs/:id.
func (h *JobsHandler) DeleteJob(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.lifecycle.DeleteJob(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Apply POST /jobs/:id/apply.
func (h *JobsHandler) Apply(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.lifecycle.Apply(c.Context(), c.Params("id"), principal.User.ID, req.CoverLetter, req.ProposedBudget)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// AcceptApplicant PUT /jobs/:id/applicants/:applicantId/accept.
func (h *JobsHandler) AcceptApplicant(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	job, err := h.lifecycle.AcceptApplicant(c.Context(), c.Params("id"), principal.User.ID, c.Params("applicantId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// RejectApplicant PUT /jobs/:id/applicants/:applicantId/reject.
func (h *JobsHandler) RejectApplicant(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	job, err := h.lifecycle.RejectApplicant(c.Context(), c.Params("id"), principal.User.ID, c.Params("applicantId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// CompleteJob PUT /jobs/:id/complete.
func (h *JobsHandler) CompleteJob(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	job, err := h.lifecycle.CompleteJob(c.Context(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// CancelJob PUT /jobs/:id/cancel.
func (h *JobsHandler) CancelJob(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	job, err := h.lifecycle.CancelJob(c.Context(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parseJobListQuery(c *fiber.Ctx) service.JobListFilter {
	filter := service.JobListFilter{}

	if v := c.Query("creatorId"); v != "" {
		creatorID := v
		filter.CreatorID = &creatorID
	}
	if v := c.Query("jobType"); v != "" {
		jobType := domain.JobType(v)
		filter.JobType = &jobType
	}
	if v := c.Query("category"); v != "" {
		category := domain.JobCategory(v)
		filter.Category = &category
	}
	if v := c.Query("minBudget"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.MinBudget = &parsed
		}
	}
	if v := c.Query("maxBudget"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.MaxBudget = &parsed
		}
	}
	if v := c.Query("location"); v != "" {
		location := domain.JobLocation(v)
		filter.Location = &location
	}
	if v := c.Query("status"); v != "" {
		status := domain.JobStatus(v)
		filter.Status = &status
	}
	if v := c.Query("skills"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if skill := strings.TrimSpace(part); skill != "" {
				filter.Skills = append(filter.Skills, skill)
			}
		}
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}

	filter.Page = parseInt(c.Query("page"), 1)
	filter.Limit = parseInt(c.Query("limit"), 10)
	filter.SortBy = c.Query("sortBy", "created_at")
	filter.SortDesc = !strings.EqualFold(c.Query("sortOrder"), "asc")
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func jobResponse(job *domain.Job) dto.JobResponse {
	applicants := make([]dto.ApplicantResponse, 0, len(job.Applicants))
	for _, a := range job.Applicants {
		applicants = append(applicants, dto.ApplicantResponse{
			ID:             a.ID,
			UserID:         a.UserID,
			CoverLetter:    a.CoverLetter,
			ProposedBudget: a.ProposedBudget,
			Status:         a.Status,
			AppliedAt:      a.AppliedAt,
		})
	}
	return dto.JobResponse{
		ID:          job.ID,
		CreatorID:   job.CreatorID,
		Title:       job.Title,
		Description: job.Description,
		JobType:     job.JobType,
		Category:    job.Category,
		Budget:      job.Budget,
		Duration:    job.Duration,
		Location:    job.Location,
		Skills:      job.Skills,
		Attachments: job.Attachments,
		Views:       job.Views,
		Status:      job.Status,
		AssignedTo:  job.AssignedTo,
		StartDate:   job.StartDate,
		EndDate:     job.EndDate,
		Applicants:  applicants,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}
