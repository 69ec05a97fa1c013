package repository

import (
	"context"

	"pawn-ledger/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository[T any] struct {
	collection interfaces.MongoRepositoryInterface
}

func NewMongoRepository[T any](collection interfaces.MongoRepositoryInterface) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection}
}

func (r *MongoRepository[T]) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {

	if result, err := r.collection.InsertOne(ctx, document); err != nil {
		return nil, err
	} else {
		return result, nil
	}

}

// CreateMany inserts documents without stopping at the first failed write.
// The result is returned alongside the error so callers can inspect partial writes.
func (r *MongoRepository[T]) CreateMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error) {

	return r.collection.InsertMany(ctx, documents, options.InsertMany().SetOrdered(false))

}

// Read a document by filter
func (r *MongoRepository[T]) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (T, error) {

	var result T

	if opt == nil {
		opt = options.FindOne()
	}

	if err := r.collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		return result, err
	}

	return result, nil

}

// FindOneAndUpdate applies update to the matched document and returns it as
// it is after the update. With upsert set a missing document is created.
func (r *MongoRepository[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, upsert bool) (T, error) {

	var result T

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(upsert)

	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return result, err
	}

	return result, nil
}

// Upsert runs a raw update document with upsert enabled.
func (r *MongoRepository[T]) Upsert(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {

	return r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))

}

// Delete a document and report how many were removed
func (r *MongoRepository[T]) Delete(ctx context.Context, filter interface{}) (int64, error) {

	if deleteResult, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return 0, err
	} else {
		return deleteResult.DeletedCount, nil
	}
}

func (r *MongoRepository[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {

	if count, err := r.collection.CountDocuments(ctx, filter); err != nil {
		return 0, err
	} else {
		return count, nil
	}
}

func (r *MongoRepository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {

	if cursor, err := r.collection.Find(ctx, filter, opts...); err != nil {
		return nil, err
	} else {
		defer func() {
			_ = cursor.Close(ctx)
		}()

		results := make([]T, 0)
		for cursor.Next(ctx) {
			var entity T
			if err := cursor.Decode(&entity); err != nil {
				return nil, err
			}
			results = append(results, entity)
		}
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return results, nil
	}
}

// AggregateAll runs the pipeline and decodes every resulting document.
func (r *MongoRepository[T]) AggregateAll(ctx context.Context, pipeline interface{}) ([]T, error) {

	if cursor, err := r.collection.Aggregate(ctx, pipeline); err != nil {
		return nil, err
	} else {
		defer func() {
			_ = cursor.Close(ctx)
		}()

		results := make([]T, 0)
		if err := cursor.All(ctx, &results); err != nil {
			return nil, err
		}
		return results, nil
	}

}
