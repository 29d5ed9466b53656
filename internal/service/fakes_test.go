package service

import (
	"context"
	"sort"

	"github.com/openclass/courseware-backend/internal/model"
	"github.com/openclass/courseware-backend/internal/repository"
)

// In-memory store fakes backing the service tests. They mirror the
// constraints the real repositories get from Postgres: unique usernames,
// unique (user, course) request pairs, idempotent membership inserts.

// ─── fakeUserStore ──────────────────────────────────────────────────────────

type fakeUserStore struct {
	nextID int
	users  map[int]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int]*model.User)}
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GroupNames(ctx context.Context, userID int) ([]string, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), u.Groups...), nil
}

func (s *fakeUserStore) ListPaginated(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var all []model.User
	for _, id := range ids {
		all = append(all, *s.users[id])
	}
	total := len(all)

	if offset >= total {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *fakeUserStore) Create(ctx context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = s.nextID
	s.nextID++
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) Update(ctx context.Context, u *model.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *fakeUserStore) ReplaceGroups(ctx context.Context, userID int, groupNames []string) error {
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Groups = append([]string(nil), groupNames...)
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id int) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ─── fakeCourseStore ────────────────────────────────────────────────────────

type fakeCourseStore struct {
	nextID  int
	courses map[int]*model.Course
	members map[int]map[int]bool // course id → user id set
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		nextID:  1,
		courses: make(map[int]*model.Course),
		members: make(map[int]map[int]bool),
	}
}

func (s *fakeCourseStore) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCourseStore) List(ctx context.Context) ([]model.Course, error) {
	ids := make([]int, 0, len(s.courses))
	for id := range s.courses {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []model.Course
	for _, id := range ids {
		out = append(out, *s.courses[id])
	}
	return out, nil
}

func (s *fakeCourseStore) ListOwned(ctx context.Context, userID int) ([]model.Course, error) {
	all, _ := s.List(ctx)
	var out []model.Course
	for _, c := range all {
		if c.AuthorID == userID || s.members[c.ID][userID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) ListMembers(ctx context.Context, courseID int) ([]model.User, error) {
	ids := make([]int, 0, len(s.members[courseID]))
	for id := range s.members[courseID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []model.User
	for _, id := range ids {
		out = append(out, model.User{ID: id})
	}
	return out, nil
}

func (s *fakeCourseStore) IsMember(ctx context.Context, courseID, userID int) (bool, error) {
	return s.members[courseID][userID], nil
}

func (s *fakeCourseStore) AddMember(ctx context.Context, courseID, userID int) error {
	if _, ok := s.courses[courseID]; !ok {
		return repository.ErrNotFound
	}
	if s.members[courseID] == nil {
		s.members[courseID] = make(map[int]bool)
	}
	s.members[courseID][userID] = true
	return nil
}

func (s *fakeCourseStore) Create(ctx context.Context, c *model.Course) error {
	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.courses[c.ID] = &cp
	return nil
}

func (s *fakeCourseStore) Update(ctx context.Context, c *model.Course) error {
	if _, ok := s.courses[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	s.courses[c.ID] = &cp
	return nil
}

func (s *fakeCourseStore) Delete(ctx context.Context, id int) error {
	if _, ok := s.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.courses, id)
	delete(s.members, id)
	return nil
}

// ─── fakeEnrollmentStore ────────────────────────────────────────────────────

type fakeEnrollmentStore struct {
	nextID   int
	requests map[int]*model.EnrollmentRequest
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{nextID: 1, requests: make(map[int]*model.EnrollmentRequest)}
}

func (s *fakeEnrollmentStore) GetByID(ctx context.Context, id int) (*model.EnrollmentRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeEnrollmentStore) List(ctx context.Context, courseID *int) ([]model.EnrollmentRequest, error) {
	ids := make([]int, 0, len(s.requests))
	for id := range s.requests {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []model.EnrollmentRequest
	for _, id := range ids {
		r := s.requests[id]
		if courseID != nil && r.CourseID != *courseID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *fakeEnrollmentStore) Create(ctx context.Context, req *model.EnrollmentRequest) error {
	for _, existing := range s.requests {
		if existing.UserID == req.UserID && existing.CourseID == req.CourseID {
			return repository.ErrDuplicate
		}
	}
	req.ID = s.nextID
	s.nextID++
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (s *fakeEnrollmentStore) Delete(ctx context.Context, id int) error {
	if _, ok := s.requests[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.requests, id)
	return nil
}

// ─── fakeGroupStore ─────────────────────────────────────────────────────────

type fakeGroupStore struct {
	nextID int
	groups []model.Group
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{nextID: 1}
}

func (s *fakeGroupStore) List(ctx context.Context) ([]model.Group, error) {
	return append([]model.Group(nil), s.groups...), nil
}

func (s *fakeGroupStore) Ensure(ctx context.Context, name, description string) error {
	for _, g := range s.groups {
		if g.Name == name {
			return nil
		}
	}
	s.groups = append(s.groups, model.Group{ID: s.nextID, Name: name, Description: description})
	s.nextID++
	return nil
}

// ─── fakeContentStore ───────────────────────────────────────────────────────

type fakeContentStore struct {
	nextID   int
	contents map[int]*model.Content
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{nextID: 1, contents: make(map[int]*model.Content)}
}

func (s *fakeContentStore) GetByID(ctx context.Context, id int) (*model.Content, error) {
	c, ok := s.contents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeContentStore) ListByCourse(ctx context.Context, courseID int) ([]model.Content, error) {
	ids := make([]int, 0, len(s.contents))
	for id := range s.contents {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []model.Content
	for _, id := range ids {
		if s.contents[id].CourseID == courseID {
			out = append(out, *s.contents[id])
		}
	}
	return out, nil
}

func (s *fakeContentStore) Create(ctx context.Context, c *model.Content) error {
	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.contents[c.ID] = &cp
	return nil
}

func (s *fakeContentStore) Update(ctx context.Context, c *model.Content) error {
	if _, ok := s.contents[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	s.contents[c.ID] = &cp
	return nil
}

func (s *fakeContentStore) Delete(ctx context.Context, id int) error {
	if _, ok := s.contents[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.contents, id)
	return nil
}
