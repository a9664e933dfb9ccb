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

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoPortfolioEntry struct {
	Title       string `bson:"title"`
	URL         string `bson:"url"`
	Thumbnail   string `bson:"thumbnail,omitempty"`
	Description string `bson:"description,omitempty"`
}

type mongoTestimonial struct {
	ClientName string `bson:"client_name"`
	Role       string `bson:"role,omitempty"`
	Comment    string `bson:"comment"`
	Rating     int    `bson:"rating"`
}

type mongoUser struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty"`
	Name           string                `bson:"name"`
	Email          string                `bson:"email"`
	PasswordHash   string                `bson:"password_hash"`
	Role           string                `bson:"role"`
	CreatedAt      time.Time             `bson:"created_at"`
	Title          string                `bson:"title,omitempty"`
	Avatar         string                `bson:"avatar,omitempty"`
	HourlyRate     float64               `bson:"hourly_rate,omitempty"`
	Experience     string                `bson:"experience,omitempty"`
	Portfolio      []mongoPortfolioEntry `bson:"portfolio,omitempty"`
	Testimonials   []mongoTestimonial    `bson:"testimonials,omitempty"`
	IsOpenToWork   bool                  `bson:"is_open_to_work"`
	Availability   string                `bson:"availability,omitempty"`
	Certifications []primitive.ObjectID  `bson:"certifications,omitempty"`
}

func (mu *mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:           mu.ID.Hex(),
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         domain.Role(mu.Role),
		CreatedAt:    mu.CreatedAt,
		Title:        mu.Title,
		Avatar:       mu.Avatar,
		HourlyRate:   mu.HourlyRate,
		Experience:   mu.Experience,
		IsOpenToWork: mu.IsOpenToWork,
		Availability: domain.Availability(mu.Availability),
	}
	for _, p := range mu.Portfolio {
		u.Portfolio = append(u.Portfolio, domain.PortfolioEntry(p))
	}
	for _, t := range mu.Testimonials {
		u.Testimonials = append(u.Testimonials, domain.Testimonial(t))
	}
	for _, c := range mu.Certifications {
		u.Certifications = append(u.Certifications, c.Hex())
	}
	return u
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		Availability: string(user.Availability),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

// FindProfiles resolves the lightweight profile view for a set of user ids.
// Ids that do not parse or do not exist are omitted.
func (r *UserRepository) FindProfiles(ctx context.Context, ids []string) (map[string]domain.UserProfile, error) {
	profiles := make(map[string]domain.UserProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1, "title": 1, "avatar": 1})
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	for _, mu := range docs {
		profiles[mu.ID.Hex()] = domain.UserProfile{
			ID:     mu.ID.Hex(),
			Name:   mu.Name,
			Title:  mu.Title,
			Avatar: mu.Avatar,
		}
	}
	return profiles, nil
}

func (r *UserRepository) ListTalent(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, bson.M{"is_open_to_work": true})
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, bson.M{})
}

func (r *UserRepository) list(ctx context.Context, filter bson.M) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.HourlyRate != nil {
		set["hourly_rate"] = *update.HourlyRate
	}
	if update.Experience != nil {
		set["experience"] = *update.Experience
	}
	if update.Portfolio != nil {
		entries := make([]mongoPortfolioEntry, 0, len(update.Portfolio))
		for _, p := range update.Portfolio {
			entries = append(entries, mongoPortfolioEntry(p))
		}
		set["portfolio"] = entries
	}
	if update.IsOpenToWork != nil {
		set["is_open_to_work"] = *update.IsOpenToWork
	}
	if update.Availability != nil {
		set["availability"] = string(*update.Availability)
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return mu.toDomain(), nil
}

// AddCertification appends the certification reference with $addToSet so a
// concurrent retry cannot produce a duplicate entry.
func (r *UserRepository) AddCertification(ctx context.Context, userID, certificationID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	cid, err := primitive.ObjectIDFromHex(certificationID)
	if err != nil {
		return domain.ErrCertificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$addToSet": bson.M{"certifications": cid}})
	if err != nil {
		return fmt.Errorf("add certification: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) AddTestimonial(ctx context.Context, userID string, t domain.Testimonial) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$push": bson.M{"testimonials": mongoTestimonial(t)}})
	if err != nil {
		return fmt.Errorf("add testimonial: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_open_to_work", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
