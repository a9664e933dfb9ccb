package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

const collectionCourses = "courses"

type CourseRepository struct {
	col   *mongo.Collection
	users *mongo.Collection // for resolving instructor names
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		col:   db.Collection(collectionCourses),
		users: db.Collection(collectionUsers),
	}
}

type mongoModule struct {
	Title    string `bson:"title"`
	VideoURL string `bson:"video_url"`
	Duration int    `bson:"duration"`
}

type mongoExamQuestion struct {
	Question      string   `bson:"question"`
	Options       []string `bson:"options"`
	CorrectAnswer int      `bson:"correct_answer"`
}

type mongoCourse struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	Title           string              `bson:"title"`
	Description     string              `bson:"description"`
	Thumbnail       string              `bson:"thumbnail"`
	Category        string              `bson:"category"`
	Level           string              `bson:"level"`
	Price           float64             `bson:"price"`
	DurationMinutes int                 `bson:"duration_minutes"`
	Instructor      primitive.ObjectID  `bson:"instructor"`
	Modules         []mongoModule       `bson:"modules"`
	Exam            []mongoExamQuestion `bson:"exam,omitempty"`
	IsActive        bool                `bson:"is_active"`
	CreatedAt       time.Time           `bson:"created_at"`
}

func (mc *mongoCourse) toDomain() *domain.Course {
	c := &domain.Course{
		ID:              mc.ID.Hex(),
		Title:           mc.Title,
		Description:     mc.Description,
		Thumbnail:       mc.Thumbnail,
		Category:        domain.Category(mc.Category),
		Level:           domain.Level(mc.Level),
		Price:           mc.Price,
		DurationMinutes: mc.DurationMinutes,
		InstructorID:    mc.Instructor.Hex(),
		IsActive:        mc.IsActive,
		CreatedAt:       mc.CreatedAt,
	}
	for _, m := range mc.Modules {
		c.Modules = append(c.Modules, domain.Module{Title: m.Title, VideoURL: m.VideoURL, Duration: m.Duration})
	}
	for _, q := range mc.Exam {
		c.Exam = append(c.Exam, domain.ExamQuestion{Question: q.Question, Options: q.Options, CorrectAnswer: q.CorrectAnswer})
	}
	return c
}

// ownerFilter builds the course filter, additionally scoped to an instructor
// when instructorID is non-empty. Ownership checks ride on the query so a
// non-owner update or delete simply matches nothing.
func ownerFilter(id primitive.ObjectID, instructorID string) (bson.M, error) {
	filter := bson.M{"_id": id}
	if instructorID != "" {
		oid, err := primitive.ObjectIDFromHex(instructorID)
		if err != nil {
			return nil, domain.ErrCourseNotFound
		}
		filter["instructor"] = oid
	}
	return filter, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	instructor, err := primitive.ObjectIDFromHex(c.InstructorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCourse{
		Title:           c.Title,
		Description:     c.Description,
		Thumbnail:       c.Thumbnail,
		Category:        string(c.Category),
		Level:           string(c.Level),
		Price:           c.Price,
		DurationMinutes: c.DurationMinutes,
		Instructor:      instructor,
		Modules:         []mongoModule{},
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCourse
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	course := mc.toDomain()
	r.resolveInstructorName(ctx, course)
	return course, nil
}

// resolveInstructorName fills InstructorName best-effort; a missing
// instructor leaves the field empty rather than failing the read.
func (r *CourseRepository) resolveInstructorName(ctx context.Context, c *domain.Course) {
	oid, err := primitive.ObjectIDFromHex(c.InstructorID)
	if err != nil {
		return
	}
	var mu mongoUser
	opts := options.FindOne().SetProjection(bson.M{"name": 1})
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&mu); err == nil {
		c.InstructorName = mu.Name
	}
}

func (r *CourseRepository) List(ctx context.Context, filter ports.ListCoursesFilter) ([]*domain.Course, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	if filter.InstructorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.InstructorID)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		query["instructor"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	var docs []mongoCourse
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	courses := make([]*domain.Course, 0, len(docs))
	for i := range docs {
		courses = append(courses, docs[i].toDomain())
	}
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, id, instructorID string, update ports.CourseUpdate) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	filter, err := ownerFilter(oid, instructorID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Thumbnail != nil {
		set["thumbnail"] = *update.Thumbnail
	}
	if update.Category != nil {
		set["category"] = string(*update.Category)
	}
	if update.Level != nil {
		set["level"] = string(*update.Level)
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.DurationMinutes != nil {
		set["duration_minutes"] = *update.DurationMinutes
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCourse
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id, instructorID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}
	filter, err := ownerFilter(oid, instructorID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) AddModule(ctx context.Context, id, instructorID string, m domain.Module) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	filter, err := ownerFilter(oid, instructorID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	push := bson.M{"$push": bson.M{"modules": mongoModule{Title: m.Title, VideoURL: m.VideoURL, Duration: m.Duration}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCourse
	if err := r.col.FindOneAndUpdate(ctx, filter, push, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("add module: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) SetExam(ctx context.Context, id, instructorID string, questions []domain.ExamQuestion) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	filter, err := ownerFilter(oid, instructorID)
	if err != nil {
		return nil, err
	}

	exam := make([]mongoExamQuestion, 0, len(questions))
	for _, q := range questions {
		exam = append(exam, mongoExamQuestion{Question: q.Question, Options: q.Options, CorrectAnswer: q.CorrectAnswer})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCourse
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"exam": exam}}, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("set exam: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the catalogue indexes.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "instructor", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "level", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
