package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/events"
	"github.com/spec-kit/talent-marketplace/internal/repository"
)

// fakeJobRepo is an in-memory JobRepository. All methods hold a single mutex so
// AssignApplicant is atomic, mirroring the transactional store.
type fakeJobRepo struct {
	mu    sync.Mutex
	jobs  map[string]*domain.Job
	order []string
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*domain.Job)}
}

func copyJob(job *domain.Job) *domain.Job {
	clone := *job
	clone.Applicants = append([]domain.Applicant(nil), job.Applicants...)
	if job.AssignedTo != nil {
		assigned := *job.AssignedTo
		clone.AssignedTo = &assigned
	}
	return &clone
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	r.jobs[job.ID] = copyJob(job)
	r.order = append(r.order, job.ID)
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[job.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	updated := copyJob(job)
	updated.Applicants = stored.Applicants
	updated.UpdatedAt = time.Now()
	r.jobs[job.ID] = updated
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.jobs, id)
	for i, jobID := range r.order {
		if jobID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyJob(stored), nil
}

func (r *fakeJobRepo) List(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Job
	for i := filter.Offset; i < len(r.order) && len(result) < filter.Limit; i++ {
		result = append(result, *copyJob(r.jobs[r.order[i]]))
	}
	return result, nil
}

func (r *fakeJobRepo) Count(_ context.Context, _ repository.JobFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

func (r *fakeJobRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Views++
	return nil
}

func (r *fakeJobRepo) AddApplicant(_ context.Context, applicant *domain.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[applicant.JobID]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, existing := range stored.Applicants {
		if existing.UserID == applicant.UserID {
			return repository.ErrDuplicateApplicant
		}
	}
	applicant.ID = uuid.NewString()
	applicant.AppliedAt = time.Now()
	stored.Applicants = append(stored.Applicants, *applicant)
	return nil
}

func (r *fakeJobRepo) UpdateApplicantStatus(_ context.Context, jobID, userID string, status domain.ApplicantStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[jobID]
	if !ok {
		return pgx.ErrNoRows
	}
	for i := range stored.Applicants {
		if stored.Applicants[i].UserID == userID {
			stored.Applicants[i].Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeJobRepo) AssignApplicant(_ context.Context, jobID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[jobID]
	if !ok {
		return pgx.ErrNoRows
	}
	if !stored.Status.AllowsAssignment() {
		return repository.ErrJobNotAssignable
	}
	found := false
	for i := range stored.Applicants {
		if stored.Applicants[i].UserID == userID {
			stored.Applicants[i].Status = domain.ApplicantStatusAccepted
			found = true
		} else {
			stored.Applicants[i].Status = domain.ApplicantStatusRejected
		}
	}
	if !found {
		return pgx.ErrNoRows
	}
	assigned := userID
	stored.Status = domain.JobStatusInProgress
	stored.AssignedTo = &assigned
	if stored.StartDate == nil {
		now := time.Now()
		stored.StartDate = &now
	}
	stored.UpdatedAt = time.Now()
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu           sync.Mutex
	users        map[string]*domain.User
	incrementErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.users {
		if strings.EqualFold(stored.Email, email) {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) IncrementCompletedJobs(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErr != nil {
		return r.incrementErr
	}
	stored, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.CompletedJobs++
	return nil
}

func (r *fakeUserRepo) completedJobs(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.users[id]; ok {
		return stored.CompletedJobs
	}
	return 0
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) SubscribeAll(_ events.EventHandler) {}

func (d *recordingDispatcher) eventsOfType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
