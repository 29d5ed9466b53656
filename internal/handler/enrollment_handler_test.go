package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/openclass/courseware-backend/internal/middleware"
	"github.com/openclass/courseware-backend/internal/model"
	"github.com/openclass/courseware-backend/internal/repository"
	"github.com/openclass/courseware-backend/internal/response"
	"github.com/openclass/courseware-backend/internal/service"
	"github.com/openclass/courseware-backend/internal/validator"
)

// Minimal in-memory stores for exercising the handler through the real
// service and response envelope.

type stubCourseStore struct {
	courses map[int]*model.Course
	members map[int]map[int]bool
}

func (s *stubCourseStore) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCourseStore) List(ctx context.Context) ([]model.Course, error) { return nil, nil }

func (s *stubCourseStore) ListOwned(ctx context.Context, userID int) ([]model.Course, error) {
	return nil, nil
}

func (s *stubCourseStore) ListMembers(ctx context.Context, courseID int) ([]model.User, error) {
	var out []model.User
	for id := range s.members[courseID] {
		out = append(out, model.User{ID: id})
	}
	return out, nil
}

func (s *stubCourseStore) IsMember(ctx context.Context, courseID, userID int) (bool, error) {
	return s.members[courseID][userID], nil
}

func (s *stubCourseStore) AddMember(ctx context.Context, courseID, userID int) error {
	if s.members[courseID] == nil {
		s.members[courseID] = make(map[int]bool)
	}
	s.members[courseID][userID] = true
	return nil
}

func (s *stubCourseStore) Create(ctx context.Context, c *model.Course) error { return nil }
func (s *stubCourseStore) Update(ctx context.Context, c *model.Course) error { return nil }
func (s *stubCourseStore) Delete(ctx context.Context, id int) error          { return nil }

type stubEnrollmentStore struct {
	nextID   int
	requests []model.EnrollmentRequest
}

func (s *stubEnrollmentStore) GetByID(ctx context.Context, id int) (*model.EnrollmentRequest, error) {
	for _, r := range s.requests {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubEnrollmentStore) List(ctx context.Context, courseID *int) ([]model.EnrollmentRequest, error) {
	var out []model.EnrollmentRequest
	for _, r := range s.requests {
		if courseID != nil && r.CourseID != *courseID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *stubEnrollmentStore) Create(ctx context.Context, req *model.EnrollmentRequest) error {
	for _, r := range s.requests {
		if r.UserID == req.UserID && r.CourseID == req.CourseID {
			return repository.ErrDuplicate
		}
	}
	s.nextID++
	req.ID = s.nextID
	s.requests = append(s.requests, *req)
	return nil
}

func (s *stubEnrollmentStore) Delete(ctx context.Context, id int) error {
	for i, r := range s.requests {
		if r.ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func setupEnrollmentRouter(t *testing.T, courses ...*model.Course) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	cs := &stubCourseStore{courses: make(map[int]*model.Course), members: make(map[int]map[int]bool)}
	for _, c := range courses {
		cs.courses[c.ID] = c
	}
	h := NewEnrollmentHandler(service.NewEnrollmentService(&stubEnrollmentStore{}, cs))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyClaims, &service.Claims{UserID: 1})
	})
	r.POST("/enroll-requests", h.Create)
	r.POST("/enroll-requests/bykey", h.ByKey)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, *response.Response) {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != "" {
		reqBody = bytes.NewBufferString(body)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("json decode: %v (body %s)", err, w.Body.String())
	}
	return w, &envelope
}

func TestCreateMissingCourseReturnsNotFound(t *testing.T) {
	r := setupEnrollmentRouter(t)

	w, envelope := doJSON(t, r, "POST", "/enroll-requests?course-id=999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusNotFound, w.Body.String())
	}
	if envelope.Error == nil || envelope.Error.Code != response.ErrNotFound {
		t.Fatalf("error = %+v, want code %s", envelope.Error, response.ErrNotFound)
	}
}

func TestCreateDuplicateReturnsConflict(t *testing.T) {
	r := setupEnrollmentRouter(t, &model.Course{ID: 1, Name: "Algebra", AuthorID: 2})

	w, _ := doJSON(t, r, "POST", "/enroll-requests?course-id=1", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("first request status = %d, want %d", w.Code, http.StatusCreated)
	}

	w, envelope := doJSON(t, r, "POST", "/enroll-requests?course-id=1", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if envelope.Error == nil || envelope.Error.Code != response.ErrDuplicateRequest {
		t.Fatalf("error = %+v, want code %s", envelope.Error, response.ErrDuplicateRequest)
	}
}

func TestByKeyMissingCourseBeforePayload(t *testing.T) {
	r := setupEnrollmentRouter(t)

	// The payload is malformed too; the missing course must win.
	w, envelope := doJSON(t, r, "POST", "/enroll-requests/bykey?course-id=999", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if envelope.Error == nil || envelope.Error.Code != response.ErrCourseNotFound {
		t.Fatalf("error = %+v, want code %s", envelope.Error, response.ErrCourseNotFound)
	}
}

func TestByKeyValidatesPayloadForExistingCourse(t *testing.T) {
	key := "secret"
	r := setupEnrollmentRouter(t, &model.Course{ID: 1, Name: "Algebra", AuthorID: 2, EnrollmentKey: &key})

	w, envelope := doJSON(t, r, "POST", "/enroll-requests/bykey?course-id=1", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if envelope.Error == nil || envelope.Error.Code != response.ErrValidation {
		t.Fatalf("error = %+v, want code %s", envelope.Error, response.ErrValidation)
	}
}

func TestByKeyWrongKeyReturnsKeyMismatch(t *testing.T) {
	key := "secret"
	r := setupEnrollmentRouter(t, &model.Course{ID: 1, Name: "Algebra", AuthorID: 2, EnrollmentKey: &key})

	w, envelope := doJSON(t, r, "POST", "/enroll-requests/bykey?course-id=1", `{"enrollment_key":"guess"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if envelope.Error == nil || envelope.Error.Code != response.ErrKeyMismatch {
		t.Fatalf("error = %+v, want code %s", envelope.Error, response.ErrKeyMismatch)
	}
}
