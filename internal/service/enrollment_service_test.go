package service

import (
	"context"
	"errors"
	"testing"

	"github.com/openclass/courseware-backend/internal/model"
	"github.com/openclass/courseware-backend/internal/repository"
)

func strPtr(s string) *string { return &s }

func setupEnrollment(t *testing.T) (*EnrollmentService, *fakeEnrollmentStore, *fakeCourseStore) {
	t.Helper()
	requests := newFakeEnrollmentStore()
	courses := newFakeCourseStore()
	return NewEnrollmentService(requests, courses), requests, courses
}

func TestRequestCourseMustExist(t *testing.T) {
	svc, _, _ := setupEnrollment(t)

	_, err := svc.Request(context.Background(), 1, 999)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing course, got %v", err)
	}
}

func TestRequestDuplicateRejected(t *testing.T) {
	svc, requests, courses := setupEnrollment(t)
	course := &model.Course{Name: "Algebra", AuthorID: 10}
	courses.Create(context.Background(), course)

	if _, err := svc.Request(context.Background(), 1, course.ID); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	_, err := svc.Request(context.Background(), 1, course.ID)
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for second pending request, got %v", err)
	}

	all, _ := requests.List(context.Background(), nil)
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 pending request, got %d", len(all))
	}
}

func TestApproveAddsMemberAndRemovesRequest(t *testing.T) {
	svc, requests, courses := setupEnrollment(t)
	course := &model.Course{Name: "Algebra", AuthorID: 10}
	courses.Create(context.Background(), course)

	req, err := svc.Request(context.Background(), 1, course.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if err := svc.Approve(context.Background(), req.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	isMember, _ := courses.IsMember(context.Background(), course.ID, 1)
	if !isMember {
		t.Error("user should be a member after approval")
	}
	all, _ := requests.List(context.Background(), nil)
	if len(all) != 0 {
		t.Errorf("request should be removed after approval, %d remain", len(all))
	}
}

func TestApproveMissingRequest(t *testing.T) {
	svc, _, courses := setupEnrollment(t)
	course := &model.Course{Name: "Algebra", AuthorID: 10}
	courses.Create(context.Background(), course)

	req, _ := svc.Request(context.Background(), 1, course.ID)
	if err := svc.Approve(context.Background(), req.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// A second approval must not succeed silently.
	err := svc.Approve(context.Background(), req.ID)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for re-approval, got %v", err)
	}
}

func TestRejectLeavesMembershipUnchanged(t *testing.T) {
	svc, requests, courses := setupEnrollment(t)
	course := &model.Course{Name: "Algebra", AuthorID: 10}
	courses.Create(context.Background(), course)

	req, _ := svc.Request(context.Background(), 1, course.ID)
	if err := svc.Reject(context.Background(), req.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	isMember, _ := courses.IsMember(context.Background(), course.ID, 1)
	if isMember {
		t.Error("rejection must not grant membership")
	}
	all, _ := requests.List(context.Background(), nil)
	if len(all) != 0 {
		t.Errorf("request should be removed after rejection, %d remain", len(all))
	}
}

func TestJoinByKey(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		key       *string // course enrollment key
		submitted string
		wantErr   error
	}{
		{"correct key", strPtr("secret"), "secret", nil},
		{"wrong key", strPtr("secret"), "guess", ErrKeyMismatch},
		{"empty submitted key", strPtr("secret"), "", ErrKeyMismatch},
		{"course without key", nil, "anything", ErrKeyMismatch},
		{"case sensitive", strPtr("Secret"), "secret", ErrKeyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, courses := setupEnrollment(t)
			course := &model.Course{Name: "Algebra", AuthorID: 10, EnrollmentKey: tt.key}
			courses.Create(ctx, course)

			got, err := svc.JoinByKey(ctx, 1, course.ID, tt.submitted)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			isMember, _ := courses.IsMember(ctx, course.ID, 1)
			if tt.wantErr == nil {
				if !isMember {
					t.Error("user should be a member after a successful join")
				}
				if got == nil || len(got.Members) != 1 {
					t.Error("returned course should include the new member")
				}
			} else if isMember {
				t.Error("failed join must not change membership")
			}
		})
	}
}

func TestJoinByKeyMissingCourse(t *testing.T) {
	svc, _, _ := setupEnrollment(t)

	_, err := svc.JoinByKey(context.Background(), 1, 999, "secret")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestJoinByKeyIdempotentForMember(t *testing.T) {
	ctx := context.Background()
	svc, _, courses := setupEnrollment(t)
	course := &model.Course{Name: "Algebra", AuthorID: 10, EnrollmentKey: strPtr("secret")}
	courses.Create(ctx, course)

	if _, err := svc.JoinByKey(ctx, 1, course.ID, "secret"); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	got, err := svc.JoinByKey(ctx, 1, course.ID, "secret")
	if err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if len(got.Members) != 1 {
		t.Errorf("expected 1 member after repeated join, got %d", len(got.Members))
	}
}

func TestListFilterByCourse(t *testing.T) {
	ctx := context.Background()
	svc, _, courses := setupEnrollment(t)

	a := &model.Course{Name: "Algebra", AuthorID: 10}
	b := &model.Course{Name: "Biology", AuthorID: 10}
	courses.Create(ctx, a)
	courses.Create(ctx, b)

	svc.Request(ctx, 1, a.ID)
	svc.Request(ctx, 2, a.ID)
	svc.Request(ctx, 1, b.ID)

	got, err := svc.List(ctx, &a.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 requests for course %d, got %d", a.ID, len(got))
	}
	for _, r := range got {
		if r.CourseID != a.ID {
			t.Errorf("request %d belongs to course %d, want %d", r.ID, r.CourseID, a.ID)
		}
	}
}
