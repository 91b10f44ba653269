package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JobStatusOpen, JobStatusInProgress, true},
		{JobStatusOpen, JobStatusCanceled, true},
		{JobStatusOpen, JobStatusCompleted, false},
		{JobStatusInProgress, JobStatusCompleted, true},
		{JobStatusInProgress, JobStatusCanceled, true},
		{JobStatusInProgress, JobStatusOpen, false},
		{JobStatusCompleted, JobStatusOpen, false},
		{JobStatusCompleted, JobStatusCanceled, false},
		{JobStatusCanceled, JobStatusOpen, false},
		{JobStatusCanceled, JobStatusInProgress, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAcceptsApplications(t *testing.T) {
	if !JobStatusOpen.AcceptsApplications() {
		t.Error("open jobs should accept applications")
	}
	for _, status := range []JobStatus{JobStatusInProgress, JobStatusCompleted, JobStatusCanceled} {
		if status.AcceptsApplications() {
			t.Errorf("%s jobs should not accept applications", status)
		}
	}
}

func TestAllowsAssignment(t *testing.T) {
	for _, status := range []JobStatus{JobStatusOpen, JobStatusInProgress} {
		if !status.AllowsAssignment() {
			t.Errorf("%s jobs should allow applicant decisions", status)
		}
	}
	for _, status := range []JobStatus{JobStatusCompleted, JobStatusCanceled} {
		if status.AllowsAssignment() {
			t.Errorf("%s jobs should not allow applicant decisions", status)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []JobCategory{
		CategoryVideoEditing, CategoryThumbnailDesign, CategoryScriptwriting,
		CategoryChannelManagement, CategoryAnimation, CategoryMusicAudio, CategoryOther,
	} {
		if !ValidCategory(c) {
			t.Errorf("category %s should be valid", c)
		}
	}
	if ValidCategory("gardening") {
		t.Error("unknown category should be invalid")
	}
}

func TestApplicantByUser(t *testing.T) {
	job := &Job{Applicants: []Applicant{
		{ID: "a1", UserID: "u1", Status: ApplicantStatusPending},
		{ID: "a2", UserID: "u2", Status: ApplicantStatusPending},
	}}

	found := job.ApplicantByUser("u2")
	if found == nil || found.ID != "a2" {
		t.Fatalf("expected applicant a2, got %+v", found)
	}

	found.Status = ApplicantStatusRejected
	if job.Applicants[1].Status != ApplicantStatusRejected {
		t.Error("ApplicantByUser should return a pointer into the aggregate")
	}

	if job.ApplicantByUser("u3") != nil {
		t.Error("expected nil for unknown user")
	}
}
