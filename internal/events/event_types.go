package events

import (
	"time"

	"github.com/spec-kit/talent-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated        EventType = "job_created"
	EventJobApplied        EventType = "job_applied"
	EventApplicantAccepted EventType = "applicant_accepted"
	EventApplicantRejected EventType = "applicant_rejected"
	EventJobCompleted      EventType = "job_completed"
	EventJobCanceled       EventType = "job_canceled"
	EventJobDeleted        EventType = "job_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	JobID     string      `json:"job_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	CreatorID string             `json:"creator_id"`
	JobType   domain.JobType     `json:"job_type"`
	Category  domain.JobCategory `json:"category"`
	Budget    int                `json:"budget"`
	Title     string             `json:"title"`
}

// JobAppliedPayload payload.
type JobAppliedPayload struct {
	ApplicantUserID string `json:"applicant_user_id"`
	ProposedBudget  int    `json:"proposed_budget"`
}

// ApplicantAcceptedPayload payload. RejectedUserIDs lists the applicants
// closed out by the accept fan-out.
type ApplicantAcceptedPayload struct {
	AcceptedUserID  string   `json:"accepted_user_id"`
	RejectedUserIDs []string `json:"rejected_user_ids"`
}

// ApplicantRejectedPayload payload.
type ApplicantRejectedPayload struct {
	RejectedUserID string `json:"rejected_user_id"`
}

// JobCompletedPayload payload. CounterUpdated is false when the assignee's
// completed-jobs counter could not be incremented after the job write.
type JobCompletedPayload struct {
	AssignedTo     *string `json:"assigned_to,omitempty"`
	CounterUpdated bool    `json:"counter_updated"`
}

// JobCanceledPayload payload.
type JobCanceledPayload struct {
	PreviousStatus domain.JobStatus `json:"previous_status"`
}

// JobDeletedPayload payload.
type JobDeletedPayload struct {
	Title string `json:"title"`
}
