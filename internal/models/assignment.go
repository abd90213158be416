package models

import "time"

// Assignment belongs to a course and is created by the course's lecturer.
type Assignment struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"course_id"`
	LecturerID  int64     `json:"lecturer_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAssignmentRequest is the JSON body for POST /courses/{id}/assignments.
type CreateAssignmentRequest struct {
	Title       string    `json:"title"    validate:"required,notblank,max=255"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}
