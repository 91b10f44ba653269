package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/spec-kit/talent-marketplace/internal/domain"
)

func newJobServiceFixture() (*JobService, *fakeJobRepo) {
	jobs := newFakeJobRepo()
	return NewJobService(JobDependencies{JobRepo: jobs, Dispatcher: &recordingDispatcher{}}), jobs
}

func validJobInput() JobCreateInput {
	return JobCreateInput{
		Title:       "Design channel thumbnails",
		Description: "Ten thumbnails for a gaming channel",
		JobType:     domain.JobTypeCreatorPost,
		Category:    domain.CategoryThumbnailDesign,
		Budget:      200,
		Location:    domain.LocationRemote,
	}
}

func TestCreateJobStartsOpen(t *testing.T) {
	svc, _ := newJobServiceFixture()

	job, err := svc.CreateJob(context.Background(), "creator-1", validJobInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Status != domain.JobStatusOpen {
		t.Errorf("expected open, got %s", job.Status)
	}
	if job.ID == "" {
		t.Error("expected an assigned id")
	}
	if job.CreatorID != "creator-1" {
		t.Errorf("unexpected creator %s", job.CreatorID)
	}
}

func TestCreateJobValidation(t *testing.T) {
	svc, _ := newJobServiceFixture()

	cases := []struct {
		name   string
		mutate func(*JobCreateInput)
	}{
		{"empty title", func(in *JobCreateInput) { in.Title = "  " }},
		{"empty description", func(in *JobCreateInput) { in.Description = "" }},
		{"bad job type", func(in *JobCreateInput) { in.JobType = "freelance" }},
		{"bad category", func(in *JobCreateInput) { in.Category = "gardening" }},
		{"zero budget", func(in *JobCreateInput) { in.Budget = 0 }},
		{"negative budget", func(in *JobCreateInput) { in.Budget = -5 }},
		{"bad location", func(in *JobCreateInput) { in.Location = "moon" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validJobInput()
			tc.mutate(&input)
			_, err := svc.CreateJob(context.Background(), "creator-1", input)
			if code := errCode(t, err); code != "VALIDATION_FAILED" {
				t.Fatalf("expected VALIDATION_FAILED, got %s", code)
			}
		})
	}
}

func TestListJobsPagination(t *testing.T) {
	svc, _ := newJobServiceFixture()
	for i := 0; i < 25; i++ {
		input := validJobInput()
		input.Title = fmt.Sprintf("Job %02d", i)
		if _, err := svc.CreateJob(context.Background(), "creator-1", input); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	jobs, pagination, err := svc.ListJobs(context.Background(), JobListFilter{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 5 {
		t.Errorf("expected 5 jobs on last page, got %d", len(jobs))
	}
	if pagination.Total != 25 || pagination.Pages != 3 || pagination.Page != 3 || pagination.Limit != 10 {
		t.Errorf("unexpected pagination: %+v", pagination)
	}
}

func TestListJobsDefaults(t *testing.T) {
	svc, _ := newJobServiceFixture()
	for i := 0; i < 12; i++ {
		if _, err := svc.CreateJob(context.Background(), "creator-1", validJobInput()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	jobs, pagination, err := svc.ListJobs(context.Background(), JobListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != defaultPageSize {
		t.Errorf("expected default page size %d, got %d", defaultPageSize, len(jobs))
	}
	if pagination.Page != 1 || pagination.Pages != 2 {
		t.Errorf("unexpected pagination: %+v", pagination)
	}
}

func TestGetJobCountsView(t *testing.T) {
	svc, repo := newJobServiceFixture()
	created, err := svc.CreateJob(context.Background(), "creator-1", validJobInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.GetJob(context.Background(), created.ID); err != nil {
			t.Fatalf("get: %v", err)
		}
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Views != 3 {
		t.Errorf("expected 3 views, got %d", stored.Views)
	}
}

func TestGetJobNotFound(t *testing.T) {
	svc, _ := newJobServiceFixture()
	_, err := svc.GetJob(context.Background(), "missing")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}
