package models

import "time"

// Course is owned by the lecturer that created it.
type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"course_name"`
	Code        string    `json:"course_code"`
	Description *string   `json:"description,omitempty"`
	LecturerID  int64     `json:"lecturer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CourseUpdate carries a partial course update. Nil fields are left as is.
type CourseUpdate struct {
	Name        *string `json:"course_name" validate:"omitempty,notblank,max=255"`
	Code        *string `json:"course_code" validate:"omitempty,notblank,max=64"`
	Description *string `json:"description"`
}

// Empty reports whether the update changes nothing.
func (u CourseUpdate) Empty() bool {
	return u.Name == nil && u.Code == nil && u.Description == nil
}

// CreateCourseRequest is the JSON body for POST /courses.
type CreateCourseRequest struct {
	Name        string  `json:"course_name" validate:"required,notblank,max=255"`
	Code        string  `json:"course_code" validate:"required,notblank,max=64"`
	Description *string `json:"description"`
}

// Enrollment links a user to a course. At most one exists per pair.
type Enrollment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  int64     `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrollmentDetail is an Enrollment joined with its course.
type EnrollmentDetail struct {
	Enrollment
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
}
