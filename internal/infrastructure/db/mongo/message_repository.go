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

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Sender    primitive.ObjectID `bson:"sender"`
	Recipient primitive.ObjectID `bson:"recipient"`
	Content   string             `bson:"content"`
	Read      bool               `bson:"read"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mm *mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:          mm.ID.Hex(),
		SenderID:    mm.Sender.Hex(),
		RecipientID: mm.Recipient.Hex(),
		Content:     mm.Content,
		Read:        mm.Read,
		CreatedAt:   mm.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	sender, err := primitive.ObjectIDFromHex(m.SenderID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	recipient, err := primitive.ObjectIDFromHex(m.RecipientID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMessage{
		Sender:    sender,
		Recipient: recipient,
		Content:   m.Content,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *m
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// involvingFilter matches messages where userID is sender or recipient.
func involvingFilter(userID primitive.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"sender": userID},
		bson.M{"recipient": userID},
	}}
}

// betweenFilter matches messages exchanged in either direction between the
// two users.
func betweenFilter(a, b primitive.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"sender": a, "recipient": b},
		bson.M{"sender": b, "recipient": a},
	}}
}

func (r *MessageRepository) FindInvolving(ctx context.Context, userID string) ([]*domain.Message, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, involvingFilter(uid), opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	return decodeMessages(ctx, cursor)
}

func (r *MessageRepository) FindThread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, betweenFilter(uid, pid), opts)
	if err != nil {
		return nil, fmt.Errorf("find thread: %w", err)
	}
	return decodeMessages(ctx, cursor)
}

func (r *MessageRepository) FindLastBetween(ctx context.Context, userID, partnerID string) (*domain.Message, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var mm mongoMessage
	if err := r.col.FindOne(ctx, betweenFilter(uid, pid), opts).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find last message: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, senderID, recipientID string) (int64, error) {
	sid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	rid, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"sender": sid, "recipient": rid, "read": false})
}

// MarkRead flips read to true on unread messages from senderID to
// recipientID. The update filter includes read=false so the write is
// idempotent and the flag can never transition back.
func (r *MessageRepository) MarkRead(ctx context.Context, senderID, recipientID string) error {
	sid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	rid, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateMany(ctx,
		bson.M{"sender": sid, "recipient": rid, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func decodeMessages(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Message, error) {
	var docs []mongoMessage
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	msgs := make([]*domain.Message, 0, len(docs))
	for i := range docs {
		msgs = append(msgs, docs[i].toDomain())
	}
	return msgs, nil
}

// EnsureIndexes mirrors the lookup patterns: per-pair threads and
// newest-first scans.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "recipient", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
