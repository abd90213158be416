package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is a user's hand-in for an assignment, stored in MongoDB.
// The optional file lives in object storage under FileKey.
type Submission struct {
	ID           primitive.ObjectID `json:"id"                     bson:"_id,omitempty"`
	AssignmentID int64              `json:"assignment_id"          bson:"assignment_id"`
	CourseID     int64              `json:"course_id"              bson:"course_id"`
	UserID       int64              `json:"user_id"                bson:"user_id"`
	Content      string             `json:"content"                bson:"content"`
	FileKey      string             `json:"-"                      bson:"file_key,omitempty"`
	FileName     string             `json:"file_name,omitempty"    bson:"file_name,omitempty"`
	ContentType  string             `json:"content_type,omitempty" bson:"content_type,omitempty"`
	Late         bool               `json:"late"                   bson:"late"`
	CreatedAt    time.Time          `json:"created_at"             bson:"created_at"`
}

// SubmissionFile is an uploaded attachment, held in memory for the request.
type SubmissionFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmitRequest is the JSON body for POST /assignments/{id}/submissions
// when no file is attached.
type SubmitRequest struct {
	Content string `json:"content" validate:"required,notblank"`
}
