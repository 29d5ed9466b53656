package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openclass/courseware-backend/internal/middleware"
	"github.com/openclass/courseware-backend/internal/model"
	"github.com/openclass/courseware-backend/internal/repository"
	"github.com/openclass/courseware-backend/internal/response"
	"github.com/openclass/courseware-backend/internal/service"
	"github.com/openclass/courseware-backend/internal/validator"
)

type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// GetAll godoc
// GET /api/v1/enroll-requests?course-id=
func (h *EnrollmentHandler) GetAll(c *gin.Context) {
	var courseID *int
	if raw := c.Query("course-id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		courseID = &id
	}

	requests, err := h.enrollmentService.List(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if requests == nil {
		requests = []model.EnrollmentRequest{}
	}

	response.Success(c, http.StatusOK, gin.H{"enroll_requests": requests})
}

// Create godoc
// POST /api/v1/enroll-requests?course-id=
//
// Files a pending request for the requesting user. A second pending request
// for the same course is rejected.
func (h *EnrollmentHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Query("course-id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	req, err := h.enrollmentService.Request(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicate):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateRequest)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enroll_request": req})
}

// Approve godoc
// DELETE /api/v1/enroll-requests/:id
//
// Grants the request: the user becomes a course member and the request is
// removed.
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.enrollmentService.Approve(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment request approved"})
}

// Reject godoc
// POST /api/v1/enroll-requests/:id/reject
//
// Removes the request without granting membership.
func (h *EnrollmentHandler) Reject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.enrollmentService.Reject(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment request rejected"})
}

// ByKey godoc
// POST /api/v1/enroll-requests/bykey?course-id=
//
// Key-based self-enrollment. Both a missing course and a wrong key are
// business errors the caller can correct, not server failures.
func (h *EnrollmentHandler) ByKey(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Query("course-id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrCourseNotFound)
		return
	}

	// The course must resolve before the payload is inspected.
	if err := h.enrollmentService.CourseExists(c.Request.Context(), courseID); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrCourseNotFound)
		return
	}

	var req model.EnrollmentKeyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.enrollmentService.JoinByKey(c.Request.Context(), claims.UserID, courseID, req.EnrollmentKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.Fail(c, http.StatusBadRequest, response.ErrCourseNotFound)
		case errors.Is(err, service.ErrKeyMismatch):
			response.Fail(c, http.StatusBadRequest, response.ErrKeyMismatch)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}
