package httpx

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

func TestValidateRejectsBlankStrings(t *testing.T) {
	blank := "  \t"
	code := "CS101"
	tests := []struct {
		name string
		v    interface{}
		ok   bool
	}{
		{"signup blank username", &models.SignupRequest{FullName: "A", Username: "   ", Email: "a@x.com", Password: "password1", Role: models.RoleStudent}, false},
		{"signup blank full name", &models.SignupRequest{FullName: "\t", Username: "alice", Email: "a@x.com", Password: "password1", Role: models.RoleStudent}, false},
		{"signup ok", &models.SignupRequest{FullName: "A", Username: "alice", Email: "a@x.com", Password: "password1", Role: models.RoleStudent}, true},
		{"profile blank username", &models.ProfileUpdateRequest{Username: " ", Email: "a@x.com", FullName: "A"}, false},
		{"course blank code", &models.CreateCourseRequest{Name: "Intro", Code: "   "}, false},
		{"course blank name", &models.CreateCourseRequest{Name: "  ", Code: "CS101"}, false},
		{"course ok", &models.CreateCourseRequest{Name: "Intro", Code: "CS101"}, true},
		{"update blank code", &models.CourseUpdate{Code: &blank}, false},
		{"update code", &models.CourseUpdate{Code: &code}, true},
		{"update nothing", &models.CourseUpdate{}, true},
		{"assignment blank title", &models.CreateAssignmentRequest{Title: "   ", DueDate: time.Now()}, false},
		{"submission blank content", &models.SubmitRequest{Content: "\n"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.v)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/courses", strings.NewReader(`{"course_name":"Intro","course_code":" "}`))
	var req models.CreateCourseRequest
	assert.ErrorIs(t, DecodeJSON(r, &req), apperr.ErrInvalidInput)

	r = httptest.NewRequest("POST", "/courses", strings.NewReader(`{not json`))
	assert.ErrorIs(t, DecodeJSON(r, &req), apperr.ErrInvalidInput)

	r = httptest.NewRequest("POST", "/courses", strings.NewReader(`{"course_name":"Intro","course_code":"CS101"}`))
	require.NoError(t, DecodeJSON(r, &req))
	assert.Equal(t, "CS101", req.Code)
}
