package dto

import (
	"time"

	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/service"
)

// CreateJobRequest payload.
type CreateJobRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	JobType     domain.JobType      `json:"jobType"`
	Category    domain.JobCategory  `json:"category"`
	Budget      int                 `json:"budget"`
	Duration    string              `json:"duration"`
	Location    domain.JobLocation  `json:"location"`
	Skills      []string            `json:"skills"`
	Attachments []domain.Attachment `json:"attachments"`
}

// UpdateJobRequest payload; absent fields are left untouched. Status is not
// accepted here: lifecycle transitions have dedicated endpoints.
type UpdateJobRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Category    *domain.JobCategory `json:"category"`
	Budget      *int                `json:"budget"`
	Duration    *string             `json:"duration"`
	Location    *domain.JobLocation `json:"location"`
	Skills      []string            `json:"skills"`
	Attachments []domain.Attachment `json:"attachments"`
	Status      *string             `json:"status"`
}

// ApplyRequest payload.
type ApplyRequest struct {
	CoverLetter    string `json:"coverLetter"`
	ProposedBudget int    `json:"proposedBudget"`
}

// ApplicantResponse represents one application on a job.
type ApplicantResponse struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	CoverLetter    string                 `json:"coverLetter"`
	ProposedBudget int                    `json:"proposedBudget"`
	Status         domain.ApplicantStatus `json:"status"`
	AppliedAt      time.Time              `json:"appliedAt"`
}

// JobResponse provides the full job aggregate.
type JobResponse struct {
	ID          string              `json:"id"`
	CreatorID   string              `json:"creatorId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	JobType     domain.JobType      `json:"jobType"`
	Category    domain.JobCategory  `json:"category"`
	Budget      int                 `json:"budget"`
	Duration    string              `json:"duration"`
	Location    domain.JobLocation  `json:"location"`
	Skills      []string            `json:"skills"`
	Attachments []domain.Attachment `json:"attachments"`
	Views       int64               `json:"views"`
	Status      domain.JobStatus    `json:"status"`
	AssignedTo  *string             `json:"assignedTo"`
	StartDate   *time.Time          `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
	Applicants  []ApplicantResponse `json:"applicants,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// JobListResponse pairs a page of jobs with pagination metadata.
type JobListResponse struct {
	Jobs       []JobResponse      `json:"jobs"`
	Pagination service.Pagination `json:"pagination"`
}
