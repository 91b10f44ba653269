package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/talent-marketplace/internal/domain"
)

// ErrDuplicateApplicant indicates the user already applied to the job. The
// applicants table enforces this with a UNIQUE(job_id, user_id) constraint, so
// the check holds even when two applications race.
var ErrDuplicateApplicant = errors.New("applicant already exists for job")

// ErrJobNotAssignable indicates the job reached a terminal status before the
// assignment could be made.
var ErrJobNotAssignable = errors.New("job status does not allow assignment")

// JobFilter captures listing parameters.
type JobFilter struct {
	CreatorID  *string
	JobType    *domain.JobType
	Category   *domain.JobCategory
	MinBudget  *int
	MaxBudget  *int
	Location   *domain.JobLocation
	Status     *domain.JobStatus
	Skills     []string
	SearchTerm *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

// JobRepository encapsulates job aggregate persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	Count(ctx context.Context, filter JobFilter) (int64, error)
	IncrementViews(ctx context.Context, id string) error
	AddApplicant(ctx context.Context, applicant *domain.Applicant) error
	UpdateApplicantStatus(ctx context.Context, jobID, userID string, status domain.ApplicantStatus) error
	AssignApplicant(ctx context.Context, jobID, userID string) error
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, creator_id, title, description, job_type, category, budget, duration,
       location, skills, attachments, views, status, assigned_to, start_date, end_date,
       created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (creator_id, title, description, job_type, category, budget, duration, location, skills, attachments, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, views, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.CreatorID,
		job.Title,
		job.Description,
		job.JobType,
		job.Category,
		job.Budget,
		job.Duration,
		job.Location,
		job.Skills,
		job.Attachments,
		job.Status,
	).Scan(&job.ID, &job.Views, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, job_type=$3, category=$4, budget=$5, duration=$6,
            location=$7, skills=$8, attachments=$9, status=$10, assigned_to=$11,
            start_date=$12, end_date=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		job.Title,
		job.Description,
		job.JobType,
		job.Category,
		job.Budget,
		job.Duration,
		job.Location,
		job.Skills,
		job.Attachments,
		job.Status,
		job.AssignedTo,
		job.StartDate,
		job.EndDate,
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	// applicants cascade at the store (ON DELETE CASCADE)
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.CreatorID,
		&job.Title,
		&job.Description,
		&job.JobType,
		&job.Category,
		&job.Budget,
		&job.Duration,
		&job.Location,
		&job.Skills,
		&job.Attachments,
		&job.Views,
		&job.Status,
		&job.AssignedTo,
		&job.StartDate,
		&job.EndDate,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}

	applicants, err := r.listApplicants(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	job.Applicants = applicants
	return &job, nil
}

func (r *jobRepository) listApplicants(ctx context.Context, jobID string) ([]domain.Applicant, error) {
	const query = `
        SELECT id, job_id, user_id, cover_letter, proposed_budget, status, applied_at
        FROM applicants WHERE job_id=$1 ORDER BY applied_at, id`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Applicant
	for rows.Next() {
		var a domain.Applicant
		if err := rows.Scan(&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ProposedBudget, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func buildFilterClauses(filter JobFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("creator_id=$%d", len(args)))
	}
	if filter.JobType != nil {
		args = append(args, *filter.JobType)
		clauses = append(clauses, fmt.Sprintf("job_type=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.MinBudget != nil {
		args = append(args, *filter.MinBudget)
		clauses = append(clauses, fmt.Sprintf("budget >= $%d", len(args)))
	}
	if filter.MaxBudget != nil {
		args = append(args, *filter.MaxBudget)
		clauses = append(clauses, fmt.Sprintf("budget <= $%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, *filter.Location)
		clauses = append(clauses, fmt.Sprintf("location=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(filter.Skills) > 0 {
		args = append(args, filter.Skills)
		clauses = append(clauses, fmt.Sprintf("skills && $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	return clauses, args
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"budget":     "budget",
	"views":      "views",
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	clauses, args := buildFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	sortCol, ok := sortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		jobColumns, strings.Join(clauses, " AND "), sortCol, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *jobRepository) Count(ctx context.Context, filter JobFilter) (int64, error) {
	clauses, args := buildFilterClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM jobs WHERE %s`, strings.Join(clauses, " AND "))

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.CreatorID,
			&job.Title,
			&job.Description,
			&job.JobType,
			&job.Category,
			&job.Budget,
			&job.Duration,
			&job.Location,
			&job.Skills,
			&job.Attachments,
			&job.Views,
			&job.Status,
			&job.AssignedTo,
			&job.StartDate,
			&job.EndDate,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}

func (r *jobRepository) IncrementViews(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) AddApplicant(ctx context.Context, applicant *domain.Applicant) error {
	const query = `
        INSERT INTO applicants (job_id, user_id, cover_letter, proposed_budget, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, applied_at`
	err := r.pool.QueryRow(ctx, query,
		applicant.JobID,
		applicant.UserID,
		applicant.CoverLetter,
		applicant.ProposedBudget,
		applicant.Status,
	).Scan(&applicant.ID, &applicant.AppliedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateApplicant
		}
		return err
	}
	return nil
}

func (r *jobRepository) UpdateApplicantStatus(ctx context.Context, jobID, userID string, status domain.ApplicantStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE applicants SET status=$1 WHERE job_id=$2 AND user_id=$3`,
		status, jobID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AssignApplicant accepts one applicant and rejects every other applicant of
// the job in a single transaction. The job row is locked first so two racing
// accepts serialize; a reader never observes two accepted applicants or an
// accepted applicant on an open job.
func (r *jobRepository) AssignApplicant(ctx context.Context, jobID, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var status domain.JobStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM jobs WHERE id=$1 FOR UPDATE`, jobID).Scan(&status); err != nil {
		return err
	}
	// re-checked under the row lock: a complete/cancel that won the race must
	// not be undone by this assignment
	if !status.AllowsAssignment() {
		return ErrJobNotAssignable
	}

	cmd, err := tx.Exec(ctx,
		`UPDATE applicants SET status='accepted' WHERE job_id=$1 AND user_id=$2`,
		jobID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx,
		`UPDATE applicants SET status='rejected' WHERE job_id=$1 AND user_id<>$2`,
		jobID, userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE jobs SET status='in-progress', assigned_to=$2,
            start_date=COALESCE(start_date, NOW()), updated_at=NOW()
         WHERE id=$1`,
		jobID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
