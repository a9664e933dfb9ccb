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

const collectionBookings = "bookings"

type BookingRepository struct {
	col   *mongo.Collection
	users *mongo.Collection // for resolving counterpart names
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		col:   db.Collection(collectionBookings),
		users: db.Collection(collectionUsers),
	}
}

type mongoReview struct {
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"created_at"`
}

type mongoBooking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Client       primitive.ObjectID `bson:"client"`
	Professional primitive.ObjectID `bson:"professional"`
	EventType    string             `bson:"event_type"`
	Date         string             `bson:"date"`
	Location     string             `bson:"location"`
	Duration     string             `bson:"duration,omitempty"`
	Budget       string             `bson:"budget,omitempty"`
	Requirements string             `bson:"requirements,omitempty"`
	Status       string             `bson:"status"`
	Review       *mongoReview       `bson:"review,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (mb *mongoBooking) toDomain() *domain.Booking {
	b := &domain.Booking{
		ID:             mb.ID.Hex(),
		ClientID:       mb.Client.Hex(),
		ProfessionalID: mb.Professional.Hex(),
		EventType:      mb.EventType,
		Date:           mb.Date,
		Location:       mb.Location,
		Duration:       mb.Duration,
		Budget:         mb.Budget,
		Requirements:   mb.Requirements,
		Status:         domain.BookingStatus(mb.Status),
		CreatedAt:      mb.CreatedAt,
	}
	if mb.Review != nil {
		b.Review = &domain.Review{
			Rating:    mb.Review.Rating,
			Comment:   mb.Review.Comment,
			CreatedAt: mb.Review.CreatedAt,
		}
	}
	return b
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	client, err := primitive.ObjectIDFromHex(b.ClientID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	professional, err := primitive.ObjectIDFromHex(b.ProfessionalID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBooking{
		Client:       client,
		Professional: professional,
		EventType:    b.EventType,
		Date:         b.Date,
		Location:     b.Location,
		Duration:     b.Duration,
		Budget:       b.Budget,
		Requirements: b.Requirements,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookingRepository) FindByClient(ctx context.Context, clientID string) ([]*domain.Booking, error) {
	return r.findBy(ctx, "client", clientID)
}

func (r *BookingRepository) FindByProfessional(ctx context.Context, professionalID string) ([]*domain.Booking, error) {
	return r.findBy(ctx, "professional", professionalID)
}

func (r *BookingRepository) findBy(ctx context.Context, field, id string) ([]*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{field: oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	var docs []mongoBooking
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	bookings := make([]*domain.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, docs[i].toDomain())
	}
	if err := r.resolveNames(ctx, docs, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// resolveNames fills client and professional names with a single batched
// lookup on the users collection.
func (r *BookingRepository) resolveNames(ctx context.Context, docs []mongoBooking, bookings []*domain.Booking) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, d := range docs {
		idSet[d.Client] = struct{}{}
		idSet[d.Professional] = struct{}{}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return fmt.Errorf("resolve booking names: %w", err)
	}
	var users []mongoUser
	if err := cursor.All(ctx, &users); err != nil {
		return fmt.Errorf("decode booking names: %w", err)
	}

	names := make(map[primitive.ObjectID]mongoUser, len(users))
	for _, u := range users {
		names[u.ID] = u
	}
	for i, d := range docs {
		if u, ok := names[d.Client]; ok {
			bookings[i].ClientName = u.Name
			bookings[i].ClientEmail = u.Email
		}
		if u, ok := names[d.Professional]; ok {
			bookings[i].ProfessionalName = u.Name
		}
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mb mongoBooking
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}}, opts).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return mb.toDomain(), nil
}

// SetReview attaches the review only when none exists yet, so a concurrent
// double-submit cannot overwrite the first review.
func (r *BookingRepository) SetReview(ctx context.Context, id string, review domain.Review) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "review": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"review": mongoReview{
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mb mongoBooking
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("set review: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the per-party listing indexes.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "professional", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
