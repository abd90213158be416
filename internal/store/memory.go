package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// MemoryStore is an in-process stand-in for PostgresStore. It enforces the
// same unique constraints under a single mutex and returns copies.
type MemoryStore struct {
	mu  sync.Mutex
	now func() time.Time

	users       map[int64]models.User
	courses     map[int64]models.Course
	enrollments map[int64]models.Enrollment
	assignments map[int64]models.Assignment

	userSeq, courseSeq, enrollmentSeq, assignmentSeq int64
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		now:         now,
		users:       map[int64]models.User{},
		courses:     map[int64]models.Course{},
		enrollments: map[int64]models.Enrollment{},
		assignments: map[int64]models.Assignment{},
	}
}

// ── Users ────────────────────────────────────────────────

func (m *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.users {
		if other.Username == u.Username || other.Email == u.Email {
			return fmt.Errorf("%w: username or email already registered", apperr.ErrConflict)
		}
	}
	m.userSeq++
	u.ID = m.userSeq
	u.CreatedAt = m.now().UTC()
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *MemoryStore) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *MemoryStore) UpdateUser(_ context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	for otherID, other := range m.users {
		if otherID != id && (other.Username == u.Username || other.Email == u.Email) {
			return nil, fmt.Errorf("%w: username or email already registered", apperr.ErrConflict)
		}
	}
	m.users[id] = u
	return &u, nil
}

// ── Courses ──────────────────────────────────────────────

func (m *MemoryStore) CreateCourse(_ context.Context, c *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[c.LecturerID]; !ok {
		return fmt.Errorf("lecturer %d: %w", c.LecturerID, apperr.ErrNotFound)
	}
	for _, other := range m.courses {
		if other.Code == c.Code {
			return fmt.Errorf("%w: course code %q already exists", apperr.ErrConflict, c.Code)
		}
	}
	m.courseSeq++
	c.ID = m.courseSeq
	c.CreatedAt = m.now().UTC()
	m.courses[c.ID] = *c
	return nil
}

func (m *MemoryStore) ListCourses(_ context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &c, nil
}

func (m *MemoryStore) GetCourseByCode(_ context.Context, code string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.courses {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *MemoryStore) UpdateCourse(_ context.Context, id int64, upd models.CourseUpdate) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.courses[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if upd.Code != nil {
		for otherID, other := range m.courses {
			if otherID != id && other.Code == *upd.Code {
				return nil, fmt.Errorf("%w: course code already exists", apperr.ErrConflict)
			}
		}
		c.Code = *upd.Code
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Description != nil {
		d := *upd.Description
		c.Description = &d
	}
	m.courses[id] = c
	return &c, nil
}

// ── Enrollments ──────────────────────────────────────────

func (m *MemoryStore) CreateEnrollment(_ context.Context, e *models.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courses[e.CourseID]; !ok {
		return fmt.Errorf("course %d: %w", e.CourseID, apperr.ErrNotFound)
	}
	for _, other := range m.enrollments {
		if other.UserID == e.UserID && other.CourseID == e.CourseID {
			return apperr.ErrUniqueViolation
		}
	}
	m.enrollmentSeq++
	e.ID = m.enrollmentSeq
	e.CreatedAt = m.now().UTC()
	m.enrollments[e.ID] = *e
	return nil
}

func (m *MemoryStore) GetEnrollment(_ context.Context, userID, courseID int64) (*models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return &e, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *MemoryStore) DeleteEnrollment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.enrollments[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.enrollments, id)
	return nil
}

func (m *MemoryStore) ListEnrollmentsByUser(_ context.Context, userID int64) ([]models.EnrollmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.EnrollmentDetail
	for _, e := range m.enrollments {
		if e.UserID != userID {
			continue
		}
		c := m.courses[e.CourseID]
		out = append(out, models.EnrollmentDetail{Enrollment: e, CourseName: c.Name, CourseCode: c.Code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── Assignments ──────────────────────────────────────────

func (m *MemoryStore) CreateAssignment(_ context.Context, a *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courses[a.CourseID]; !ok {
		return fmt.Errorf("course %d: %w", a.CourseID, apperr.ErrNotFound)
	}
	m.assignmentSeq++
	a.ID = m.assignmentSeq
	a.CreatedAt = m.now().UTC()
	m.assignments[a.ID] = *a
	return nil
}

func (m *MemoryStore) GetAssignmentByID(_ context.Context, id int64) (*models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &a, nil
}

func (m *MemoryStore) ListAssignmentsByCourse(_ context.Context, courseID int64) ([]models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Assignment
	for _, a := range m.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ── Submissions ──────────────────────────────────────────

// MemorySubmissions is an in-process stand-in for MongoStore.
type MemorySubmissions struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Submission
}

func NewMemorySubmissions() *MemorySubmissions {
	return &MemorySubmissions{docs: map[primitive.ObjectID]models.Submission{}}
}

func (m *MemorySubmissions) Insert(_ context.Context, sub *models.Submission) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.docs {
		if other.AssignmentID == sub.AssignmentID && other.UserID == sub.UserID {
			return "", fmt.Errorf("%w: assignment %d already submitted", apperr.ErrConflict, sub.AssignmentID)
		}
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if _, taken := m.docs[sub.ID]; taken {
		return "", fmt.Errorf("%w: duplicate submission id", apperr.ErrConflict)
	}
	m.docs[sub.ID] = *sub
	return sub.ID.Hex(), nil
}

func (m *MemorySubmissions) GetByID(_ context.Context, id string) (*models.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid submission id", apperr.ErrNotFound)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.docs[oid]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &sub, nil
}

func (m *MemorySubmissions) ListByAssignment(_ context.Context, assignmentID int64) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Submission
	for _, sub := range m.docs {
		if sub.AssignmentID == assignmentID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── Files ────────────────────────────────────────────────

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryFiles is an in-process stand-in for MinioStore.
type MemoryFiles struct {
	mu      sync.Mutex
	objects map[string]memoryObject
}

func NewMemoryFiles() *MemoryFiles {
	return &MemoryFiles{objects: map[string]memoryObject{}}
}

func (m *MemoryFiles) Upload(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (m *MemoryFiles) Download(_ context.Context, key string) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("%w: object %s", apperr.ErrNotFound, key)
	}
	return append([]byte(nil), obj.data...), obj.contentType, nil
}

func (m *MemoryFiles) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Len reports how many objects are stored.
func (m *MemoryFiles) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// ── Revocations ──────────────────────────────────────────

// MemoryRevocations is an in-process stand-in for auth.RevocationStore.
type MemoryRevocations struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

func NewMemoryRevocations(now func() time.Time) *MemoryRevocations {
	if now == nil {
		now = time.Now
	}
	return &MemoryRevocations{now: now, revoked: map[string]time.Time{}}
}

func (m *MemoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = m.now().Add(ttl)
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
