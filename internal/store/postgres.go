package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// PostgresStore handles users, courses, enrollments and assignments in
// PostgreSQL. Uniqueness is enforced by table constraints.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL    PRIMARY KEY,
			full_name     VARCHAR(255) NOT NULL,
			username      VARCHAR(255) UNIQUE NOT NULL,
			email         VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role          VARCHAR(32)  NOT NULL,
			created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS courses (
			id          BIGSERIAL    PRIMARY KEY,
			name        VARCHAR(255) NOT NULL,
			code        VARCHAR(64)  UNIQUE NOT NULL,
			description TEXT,
			lecturer_id BIGINT       NOT NULL REFERENCES users(id),
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS enrollments (
			id         BIGSERIAL   PRIMARY KEY,
			user_id    BIGINT      NOT NULL REFERENCES users(id),
			course_id  BIGINT      NOT NULL REFERENCES courses(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, course_id)
		);
		CREATE TABLE IF NOT EXISTS assignments (
			id          BIGSERIAL    PRIMARY KEY,
			course_id   BIGINT       NOT NULL REFERENCES courses(id),
			lecturer_id BIGINT       NOT NULL REFERENCES users(id),
			title       VARCHAR(255) NOT NULL,
			description TEXT,
			due_date    TIMESTAMPTZ  NOT NULL,
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS assignments_course_id_idx ON assignments (course_id);
	`)
	return err
}

// isUniqueViolation reports whether err is SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// uniqueViolation maps a 23505 failure onto target. Any other error,
// including nil, yields nil.
func uniqueViolation(err, target error, detail string) error {
	if !isUniqueViolation(err) {
		return nil
	}
	return fmt.Errorf("%w: %s", target, detail)
}

// notFound turns pgx.ErrNoRows into apperr.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}

// ── Users ────────────────────────────────────────────────

const userColumns = `id, full_name, username, email, password_hash, role, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.FullName, u.Username, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if dup := uniqueViolation(err, apperr.ErrConflict, "username or email already registered"); dup != nil {
		return dup
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET
			full_name = COALESCE($2, full_name),
			username  = COALESCE($3, username),
			email     = COALESCE($4, email)
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, upd.FullName, upd.Username, upd.Email,
	))
	if dup := uniqueViolation(err, apperr.ErrConflict, "username or email already registered"); dup != nil {
		return nil, dup
	}
	return u, err
}

// ── Courses ──────────────────────────────────────────────

const courseColumns = `id, name, code, description, lecturer_id, created_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.LecturerID, &c.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *PostgresStore) CreateCourse(ctx context.Context, c *models.Course) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO courses (name, code, description, lecturer_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		c.Name, c.Code, c.Description, c.LecturerID,
	).Scan(&c.ID, &c.CreatedAt)
	if dup := uniqueViolation(err, apperr.ErrConflict, fmt.Sprintf("course code %q already exists", c.Code)); dup != nil {
		return dup
	}
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return scanCourse(s.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

func (s *PostgresStore) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	return scanCourse(s.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE code = $1`, code))
}

func (s *PostgresStore) UpdateCourse(ctx context.Context, id int64, upd models.CourseUpdate) (*models.Course, error) {
	c, err := scanCourse(s.pool.QueryRow(ctx,
		`UPDATE courses SET
			name        = COALESCE($2, name),
			code        = COALESCE($3, code),
			description = COALESCE($4, description)
		 WHERE id = $1
		 RETURNING `+courseColumns,
		id, upd.Name, upd.Code, upd.Description,
	))
	if dup := uniqueViolation(err, apperr.ErrConflict, "course code already exists"); dup != nil {
		return nil, dup
	}
	return c, err
}

// ── Enrollments ──────────────────────────────────────────

func (s *PostgresStore) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO enrollments (user_id, course_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		e.UserID, e.CourseID,
	).Scan(&e.ID, &e.CreatedAt)
	if dup := uniqueViolation(err, apperr.ErrUniqueViolation, "enrollment already exists"); dup != nil {
		return dup
	}
	if err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, course_id, created_at FROM enrollments
		 WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *PostgresStore) DeleteEnrollment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListEnrollmentsByUser(ctx context.Context, userID int64) ([]models.EnrollmentDetail, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT e.id, e.user_id, e.course_id, e.created_at, c.name, c.code
		 FROM enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.user_id = $1
		 ORDER BY e.created_at, e.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EnrollmentDetail
	for rows.Next() {
		var d models.EnrollmentDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.CourseID, &d.CreatedAt, &d.CourseName, &d.CourseCode); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ── Assignments ──────────────────────────────────────────

const assignmentColumns = `id, course_id, lecturer_id, title, description, due_date, created_at`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	if err := row.Scan(&a.ID, &a.CourseID, &a.LecturerID, &a.Title, &a.Description, &a.DueDate, &a.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *PostgresStore) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO assignments (course_id, lecturer_id, title, description, due_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.CourseID, a.LecturerID, a.Title, a.Description, a.DueDate,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	return scanAssignment(s.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
}

func (s *PostgresStore) ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE course_id = $1 ORDER BY due_date, id`,
		courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}
