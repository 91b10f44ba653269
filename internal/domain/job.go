package domain

import "time"

// JobStatus enumerates lifecycle states for job postings.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCanceled   JobStatus = "canceled"
)

// JobType distinguishes who is looking for whom.
type JobType string

const (
	JobTypeCreatorPost JobType = "creator-post"
	JobTypeExpertPost  JobType = "expert-post"
)

// JobCategory is the closed set of work categories.
type JobCategory string

const (
	CategoryVideoEditing      JobCategory = "video-editing"
	CategoryThumbnailDesign   JobCategory = "thumbnail-design"
	CategoryScriptwriting     JobCategory = "scriptwriting"
	CategoryChannelManagement JobCategory = "channel-management"
	CategoryAnimation         JobCategory = "animation"
	CategoryMusicAudio        JobCategory = "music-audio"
	CategoryOther             JobCategory = "other"
)

// JobLocation enumerates work arrangements.
type JobLocation string

const (
	LocationRemote JobLocation = "remote"
	LocationOnSite JobLocation = "on-site"
	LocationHybrid JobLocation = "hybrid"
)

// ApplicantStatus enumerates application sub-states.
type ApplicantStatus string

const (
	ApplicantStatusPending  ApplicantStatus = "pending"
	ApplicantStatusAccepted ApplicantStatus = "accepted"
	ApplicantStatusRejected ApplicantStatus = "rejected"
)

// Attachment is file metadata attached to a job posting. Storage itself is external.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Applicant is one user's application to a Job. It is only addressable through
// its Job and is never deleted; accepted and rejected are terminal.
type Applicant struct {
	ID             string
	JobID          string
	UserID         string
	CoverLetter    string
	ProposedBudget int
	Status         ApplicantStatus
	AppliedAt      time.Time
}

// Job is the aggregate for posted work opportunities. Applicants are loaded in
// application order. AssignedTo is non-nil exactly when status is in-progress
// or completed, and at most one applicant is accepted at any time.
type Job struct {
	ID          string
	CreatorID   string
	Title       string
	Description string
	JobType     JobType
	Category    JobCategory
	Budget      int
	Duration    string
	Location    JobLocation
	Skills      []string
	Attachments []Attachment
	Views       int64
	Status      JobStatus
	AssignedTo  *string
	StartDate   *time.Time
	EndDate     *time.Time
	Applicants  []Applicant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// jobTransitions lists every allowed (from -> to) status pair. Completed and
// canceled are terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:       {JobStatusInProgress, JobStatusCanceled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusCanceled},
}

// CanTransition reports whether a job may move from one status to another.
func CanTransition(from, to JobStatus) bool {
	for _, candidate := range jobTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// AcceptsApplications reports whether new applications are allowed in this status.
func (s JobStatus) AcceptsApplications() bool {
	return s == JobStatusOpen
}

// AllowsAssignment reports whether applicant decisions may still be made in
// this status. Completed and canceled are terminal for the whole aggregate.
func (s JobStatus) AllowsAssignment() bool {
	return s == JobStatusOpen || s == JobStatusInProgress
}

// ValidJobStatus reports whether the value is a known status.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCanceled:
		return true
	}
	return false
}

// ValidJobType reports whether the value is a known job type.
func ValidJobType(t JobType) bool {
	return t == JobTypeCreatorPost || t == JobTypeExpertPost
}

// ValidCategory reports whether the value is in the closed category set.
func ValidCategory(c JobCategory) bool {
	switch c {
	case CategoryVideoEditing, CategoryThumbnailDesign, CategoryScriptwriting,
		CategoryChannelManagement, CategoryAnimation, CategoryMusicAudio, CategoryOther:
		return true
	}
	return false
}

// ValidLocation reports whether the value is a known location.
func ValidLocation(l JobLocation) bool {
	return l == LocationRemote || l == LocationOnSite || l == LocationHybrid
}

// ApplicantByUser returns the applicant entry for the given user, if any.
func (j *Job) ApplicantByUser(userID string) *Applicant {
	for i := range j.Applicants {
		if j.Applicants[i].UserID == userID {
			return &j.Applicants[i]
		}
	}
	return nil
}
