package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/identity"
)

const mongoDatabase = "taskdeck"

func init() {
	Register("mongo", openMongo)
}

func openMongo(ctx context.Context, dsn string) (domain.Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, err
	}

	s := &MongoStorage{
		client: client,
		db:     client.Database(mongoDatabase),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// MongoStorage implements domain.Storage on the official MongoDB driver.
// Username/email uniqueness is enforced by unique indexes so concurrent
// signups race at the index, not in application logic.
type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStorage(client *mongo.Client, database string) *MongoStorage {
	return &MongoStorage{client: client, db: client.Database(database)}
}

func (s *MongoStorage) ensureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	_, err := s.db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique("username"),
		unique("email"),
	})
	return err
}

func (s *MongoStorage) CreateUser(ctx context.Context, u *identity.User) error {
	_, err := s.db.Collection("users").InsertOne(ctx, u)
	if field, ok := duplicateField(err); ok {
		return &domain.DuplicateKeyError{Field: field}
	}
	return err
}

// duplicateField extracts the colliding field name from a unique-index
// violation. Index names follow the driver's "<field>_1" convention.
func duplicateField(err error) (string, bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			for _, field := range []string{"username", "email"} {
				if strings.Contains(e.Message, field+"_1") {
					return field, true
				}
			}
		}
	}
	return "key", true
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	var u identity.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStorage) GetUserByResetToken(ctx context.Context, token string) (*identity.User, error) {
	var u identity.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": bson.M{"$gt": time.Now()},
	}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStorage) UpdateUser(ctx context.Context, u *identity.User) error {
	res, err := s.db.Collection("users").ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MongoStorage) CreateTodo(ctx context.Context, t *identity.Todo) error {
	_, err := s.db.Collection("todos").InsertOne(ctx, t)
	return err
}

func (s *MongoStorage) GetTodo(ctx context.Context, id string) (*identity.Todo, error) {
	var t identity.Todo
	err := s.db.Collection("todos").FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MongoStorage) ListTodosByUser(ctx context.Context, userID string) ([]identity.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.db.Collection("todos").Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var todos []identity.Todo
	if err := cur.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *MongoStorage) UpdateTodo(ctx context.Context, t *identity.Todo) error {
	res, err := s.db.Collection("todos").ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MongoStorage) DeleteTodo(ctx context.Context, id string) error {
	res, err := s.db.Collection("todos").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MongoStorage) CreateLog(ctx context.Context, l *identity.ErrorLog) error {
	_, err := s.db.Collection("logs").InsertOne(ctx, l)
	return err
}
