package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users           map[string]*domain.User
	nextID          int
	findProfilesErr error
	testimonialErr  error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) addUser(id, name string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Name: name, Email: name + "@test.io", Role: role, CreatedAt: time.Now()}
	r.users[id] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindProfiles(_ context.Context, ids []string) (map[string]domain.UserProfile, error) {
	if r.findProfilesErr != nil {
		return nil, r.findProfilesErr
	}
	out := make(map[string]domain.UserProfile)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = domain.UserProfile{ID: u.ID, Name: u.Name, Title: u.Title, Avatar: u.Avatar}
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListTalent(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.IsOpenToWork {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Title != nil {
		u.Title = *update.Title
	}
	if update.IsOpenToWork != nil {
		u.IsOpenToWork = *update.IsOpenToWork
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) AddCertification(_ context.Context, userID, certificationID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, id := range u.Certifications {
		if id == certificationID {
			return nil
		}
	}
	u.Certifications = append(u.Certifications, certificationID)
	return nil
}

func (r *stubUserRepo) AddTestimonial(_ context.Context, userID string, t domain.Testimonial) error {
	if r.testimonialErr != nil {
		return r.testimonialErr
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Testimonials = append(u.Testimonials, t)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	msgs   []*domain.Message
	nextID int

	findInvolvingErr error
	countUnreadErr   error
	lastBetweenErr   error
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{}
}

// addMessage seeds a message at the given minute offset so ordering is
// deterministic.
func (r *stubMessageRepo) addMessage(sender, recipient, content string, minute int, read bool) {
	r.nextID++
	r.msgs = append(r.msgs, &domain.Message{
		ID:          fmt.Sprintf("msg_%d", r.nextID),
		SenderID:    sender,
		RecipientID: recipient,
		Content:     content,
		Read:        read,
		CreatedAt:   time.Date(2026, 3, 1, 12, minute, 0, 0, time.UTC),
	})
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.nextID++
	clone := *m
	clone.ID = fmt.Sprintf("msg_%d", r.nextID)
	r.msgs = append(r.msgs, &clone)
	out := clone
	return &out, nil
}

func (r *stubMessageRepo) FindInvolving(_ context.Context, userID string) ([]*domain.Message, error) {
	if r.findInvolvingErr != nil {
		return nil, r.findInvolvingErr
	}
	var out []*domain.Message
	for _, m := range r.msgs {
		if m.SenderID == userID || m.RecipientID == userID {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubMessageRepo) FindThread(_ context.Context, userID, partnerID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.msgs {
		if r.between(m, userID, partnerID) {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubMessageRepo) FindLastBetween(_ context.Context, userID, partnerID string) (*domain.Message, error) {
	if r.lastBetweenErr != nil {
		return nil, r.lastBetweenErr
	}
	var last *domain.Message
	for _, m := range r.msgs {
		if r.between(m, userID, partnerID) && (last == nil || m.CreatedAt.After(last.CreatedAt)) {
			last = m
		}
	}
	if last == nil {
		return nil, domain.ErrMessageNotFound
	}
	clone := *last
	return &clone, nil
}

func (r *stubMessageRepo) CountUnread(_ context.Context, senderID, recipientID string) (int64, error) {
	if r.countUnreadErr != nil {
		return 0, r.countUnreadErr
	}
	var n int64
	for _, m := range r.msgs {
		if m.SenderID == senderID && m.RecipientID == recipientID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, senderID, recipientID string) error {
	for _, m := range r.msgs {
		if m.SenderID == senderID && m.RecipientID == recipientID {
			m.Read = true
		}
	}
	return nil
}

func (r *stubMessageRepo) between(m *domain.Message, a, b string) bool {
	return (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a)
}

// ---------------------------------------------------------------------------

type stubCourseRepo struct {
	courses map[string]*domain.Course
	nextID  int
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.nextID++
	clone := *c
	clone.ID = fmt.Sprintf("course_%d", r.nextID)
	r.courses[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) List(_ context.Context, filter ports.ListCoursesFilter) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, c := range r.courses {
		if filter.Category != "" && string(c.Category) != filter.Category {
			continue
		}
		if filter.Level != "" && string(c.Level) != filter.Level {
			continue
		}
		if filter.InstructorID != "" && c.InstructorID != filter.InstructorID {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, id, instructorID string, update ports.CourseUpdate) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok || (instructorID != "" && c.InstructorID != instructorID) {
		return nil, domain.ErrCourseNotFound
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.IsActive != nil {
		c.IsActive = *update.IsActive
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id, instructorID string) error {
	c, ok := r.courses[id]
	if !ok || (instructorID != "" && c.InstructorID != instructorID) {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *stubCourseRepo) AddModule(_ context.Context, id, instructorID string, m domain.Module) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok || (instructorID != "" && c.InstructorID != instructorID) {
		return nil, domain.ErrCourseNotFound
	}
	c.Modules = append(c.Modules, m)
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) SetExam(_ context.Context, id, instructorID string, questions []domain.ExamQuestion) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok || (instructorID != "" && c.InstructorID != instructorID) {
		return nil, domain.ErrCourseNotFound
	}
	c.Exam = questions
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

// ---------------------------------------------------------------------------

type stubCertRepo struct {
	byPair map[string]*domain.Certification
	byID   map[string]*domain.Certification
	nextID int
}

func newStubCertRepo() *stubCertRepo {
	return &stubCertRepo{
		byPair: make(map[string]*domain.Certification),
		byID:   make(map[string]*domain.Certification),
	}
}

func pairKey(userID, courseID string) string { return userID + "|" + courseID }

func (r *stubCertRepo) Create(_ context.Context, c *domain.Certification) (*domain.Certification, error) {
	key := pairKey(c.UserID, c.CourseID)
	if existing, ok := r.byPair[key]; ok {
		clone := *existing
		return &clone, nil
	}
	r.nextID++
	clone := *c
	clone.ID = fmt.Sprintf("cert_%d", r.nextID)
	r.byPair[key] = &clone
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCertRepo) FindByUserAndCourse(_ context.Context, userID, courseID string) (*domain.Certification, error) {
	c, ok := r.byPair[pairKey(userID, courseID)]
	if !ok {
		return nil, domain.ErrCertificationNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCertRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Certification, error) {
	var out []domain.Certification
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCertRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	bookings map[string]*domain.Booking
	nextID   int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	clone := *b
	clone.ID = fmt.Sprintf("booking_%d", r.nextID)
	r.bookings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindByClient(_ context.Context, clientID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) FindByProfessional(_ context.Context, professionalID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.ProfessionalID == professionalID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b.Status = status
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) SetReview(_ context.Context, id string, review domain.Review) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.Review != nil {
		return nil, domain.ErrAlreadyReviewed
	}
	b.Review = &review
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.bookings)), nil
}
