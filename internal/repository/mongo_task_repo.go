package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo_backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     time.Time          `bson:"dueDate"`
	DateCreated time.Time          `bson:"dateCreated"`
	Completed   bool               `bson:"completed"`
}

func (d *taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     domain.Normalize(d.DueDate),
		DateCreated: domain.Normalize(d.DateCreated),
		Completed:   d.Completed,
	}
}

// MongoTaskRepository stores tasks as documents in a single collection.
type MongoTaskRepository struct {
	coll *mongo.Collection
}

func NewMongoTaskRepository(coll *mongo.Collection) *MongoTaskRepository {
	return &MongoTaskRepository{coll: coll}
}

// EnsureIndexes creates the ascending dueDate and dateCreated indexes used by sorted listings.
func (r *MongoTaskRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dueDate", Value: 1}}, Options: options.Index().SetName("dueDate_1")},
		{Keys: bson.D{{Key: "dateCreated", Value: 1}}, Options: options.Index().SetName("dateCreated_1")},
	})
	if err != nil {
		return fmt.Errorf("create task indexes: %w", err)
	}
	return nil
}

func (r *MongoTaskRepository) List(ctx context.Context, sort domain.SortKey) ([]*domain.Task, error) {
	// ObjectIDs grow with insertion, so _id gives creation order and breaks ties.
	order := bson.D{{Key: "_id", Value: 1}}
	if sort != domain.SortNone {
		order = append(bson.D{{Key: string(sort), Value: 1}}, order...)
	}
	opts := options.Find().SetSort(order)

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	res := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		res = append(res, docs[i].toDomain())
	}
	return res, nil
}

func (r *MongoTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		DateCreated: t.DateCreated,
		Completed:   t.Completed,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID = doc.ID.Hex()
	return nil
}

func (r *MongoTaskRepository) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	return r.findAndSet(ctx, id, bson.D{{Key: "completed", Value: completed}})
}

func (r *MongoTaskRepository) Update(ctx context.Context, id string, fields domain.TaskFields) (*domain.Task, error) {
	return r.findAndSet(ctx, id, bson.D{
		{Key: "title", Value: fields.Title},
		{Key: "description", Value: fields.Description},
		{Key: "dueDate", Value: fields.DueDate},
	})
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc taskDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mapMongoErr(err, "delete task")
	}
	return doc.toDomain(), nil
}

func (r *MongoTaskRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *MongoTaskRepository) findAndSet(ctx context.Context, id string, set bson.D) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, mapMongoErr(err, "update task")
	}
	return doc.toDomain(), nil
}

func mapMongoErr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
