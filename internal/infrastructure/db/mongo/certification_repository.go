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
)

const collectionCertifications = "certifications"

type CertificationRepository struct {
	col     *mongo.Collection
	courses *mongo.Collection // for resolving course titles
}

func NewCertificationRepository(db *mongo.Database) *CertificationRepository {
	return &CertificationRepository{
		col:     db.Collection(collectionCertifications),
		courses: db.Collection(collectionCourses),
	}
}

type mongoCertification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	User          primitive.ObjectID `bson:"user"`
	Course        primitive.ObjectID `bson:"course"`
	ExamScore     float64            `bson:"exam_score"`
	IssueDate     time.Time          `bson:"issue_date"`
	CertificateID string             `bson:"certificate_id"`
}

func (mc *mongoCertification) toDomain() *domain.Certification {
	return &domain.Certification{
		ID:            mc.ID.Hex(),
		UserID:        mc.User.Hex(),
		CourseID:      mc.Course.Hex(),
		ExamScore:     mc.ExamScore,
		IssueDate:     mc.IssueDate,
		CertificateID: mc.CertificateID,
	}
}

func (r *CertificationRepository) Create(ctx context.Context, c *domain.Certification) (*domain.Certification, error) {
	user, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	course, err := primitive.ObjectIDFromHex(c.CourseID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCertification{
		User:          user,
		Course:        course,
		ExamScore:     c.ExamScore,
		IssueDate:     c.IssueDate,
		CertificateID: c.CertificateID,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		// The unique (user, course) index turns a concurrent double-issue
		// into a lookup of the winner.
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByUserAndCourse(ctx, c.UserID, c.CourseID)
		}
		return nil, fmt.Errorf("insert certification: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CertificationRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Certification, error) {
	user, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrCertificationNotFound
	}
	course, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, domain.ErrCertificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCertification
	if err := r.col.FindOne(ctx, bson.M{"user": user, "course": course}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCertificationNotFound
		}
		return nil, fmt.Errorf("find certification: %w", err)
	}
	return mc.toDomain(), nil
}

// FindByIDs resolves certification references and joins in the course title
// and category for profile display.
func (r *CertificationRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Certification, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find certifications: %w", err)
	}
	var docs []mongoCertification
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode certifications: %w", err)
	}

	courseIDs := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		courseIDs = append(courseIDs, d.Course)
	}
	titles, categories, err := r.courseSummaries(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	certs := make([]domain.Certification, 0, len(docs))
	for i := range docs {
		cert := docs[i].toDomain()
		cert.CourseTitle = titles[docs[i].Course]
		cert.CourseCategory = categories[docs[i].Course]
		certs = append(certs, *cert)
	}
	return certs, nil
}

func (r *CertificationRepository) courseSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, map[primitive.ObjectID]domain.Category, error) {
	titles := make(map[primitive.ObjectID]string, len(ids))
	categories := make(map[primitive.ObjectID]domain.Category, len(ids))
	if len(ids) == 0 {
		return titles, categories, nil
	}

	opts := options.Find().SetProjection(bson.M{"title": 1, "category": 1})
	cursor, err := r.courses.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("find courses for certifications: %w", err)
	}
	var docs []mongoCourse
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, nil, fmt.Errorf("decode courses for certifications: %w", err)
	}
	for _, d := range docs {
		titles[d.ID] = d.Title
		categories[d.ID] = domain.Category(d.Category)
	}
	return titles, categories, nil
}

func (r *CertificationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes enforces one certificate per (user, course) pair and the
// unique public certificate id.
func (r *CertificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "course", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "certificate_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
