package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

type userDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Name           string        `bson:"name"`
	Email          string        `bson:"email"`
	HashedPassword string        `bson:"hashed_password"`
	CreatedAt      time.Time     `bson:"created_at"`
}

type chatDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	UserID     bson.ObjectID `bson:"user_id"`
	Message    string        `bson:"message"`
	Mood       string        `bson:"mood"`
	Confidence float64       `bson:"confidence"`
	AIReply    string        `bson:"ai_reply"`
	Timestamp  time.Time     `bson:"timestamp"`
}

func (d userDoc) toModel() *model.User {
	return &model.User{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Email:          d.Email,
		HashedPassword: d.HashedPassword,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

func (d chatDoc) toModel() model.ChatRecord {
	mood, _ := model.ParseMood(d.Mood)
	return model.ChatRecord{
		ID:         d.ID.Hex(),
		UserID:     d.UserID.Hex(),
		Message:    d.Message,
		Mood:       mood,
		Confidence: d.Confidence,
		AIReply:    d.AIReply,
		Timestamp:  d.Timestamp.UTC(),
	}
}

// MongoStore keeps users and chat logs in one Mongo database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.chats().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}

func (s *MongoStore) users() *mongo.Collection { return s.db.Collection(userCollection) }
func (s *MongoStore) chats() *mongo.Collection { return s.db.Collection(chatCollection) }

func (s *MongoStore) CreateUser(ctx context.Context, user *model.User) (string, error) {
	doc := userDoc{
		ID:             bson.NewObjectID(),
		Name:           user.Name,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		CreatedAt:      user.CreatedAt,
	}
	if _, err := s.users().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: email %s", ErrDuplicate, user.Email)
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	user.ID = doc.ID.Hex()
	return user.ID, nil
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDoc
	err := s.users().FindOne(ctx, filter).Decode(&doc)
	switch {
	case err == nil:
		return doc.toModel(), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a stored user
		return nil, ErrNotFound
	}
	return s.findUser(ctx, bson.M{"_id": objID})
}

func (s *MongoStore) InsertChat(ctx context.Context, chat *model.ChatRecord) (string, error) {
	if !chat.Mood.IsValid() {
		return "", fmt.Errorf("insert chat: %w: %q", ErrInvalidMood, chat.Mood)
	}
	userID, err := bson.ObjectIDFromHex(chat.UserID)
	if err != nil {
		return "", fmt.Errorf("invalid user id %q: %w", chat.UserID, err)
	}
	doc := chatDoc{
		ID:         bson.NewObjectID(),
		UserID:     userID,
		Message:    chat.Message,
		Mood:       chat.Mood.String(),
		Confidence: chat.Confidence,
		AIReply:    chat.AIReply,
		Timestamp:  chat.Timestamp,
	}
	if _, err := s.chats().InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert chat: %w", err)
	}
	chat.ID = doc.ID.Hex()
	return chat.ID, nil
}

func (s *MongoStore) findChats(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]model.ChatRecord, error) {
	cursor, err := s.chats().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find chats: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []chatDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode chats: %w", err)
	}

	out := make([]model.ChatRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoStore) RecentChats(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error) {
	objID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return []model.ChatRecord{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return s.findChats(ctx, bson.M{"user_id": objID}, opts)
}

func (s *MongoStore) ChatsBetween(ctx context.Context, userID string, from, to time.Time) ([]model.ChatRecord, error) {
	objID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return []model.ChatRecord{}, nil
	}
	filter := bson.M{
		"user_id":   objID,
		"timestamp": bson.M{"$gte": from, "$lte": to},
	}
	// ObjectIDs grow with insert order and break timestamp ties
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	return s.findChats(ctx, filter, opts)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
