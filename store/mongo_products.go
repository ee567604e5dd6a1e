package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylehub-labs/stylehub-backend-go/models"
)

type MongoProductStore struct {
	coll *mongo.Collection
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{coll: db.Collection("products")}
}

func (s *MongoProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func filterQuery(f ProductFilter) bson.M {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Subcategory != "" {
		query["subcategory"] = f.Subcategory
	}
	if f.Size != "" {
		query["sizes"] = bson.M{"$in": []string{f.Size}}
	}
	if f.Color != "" {
		query["colors"] = bson.M{"$in": []string{f.Color}}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}
	if f.Bestseller {
		query["isBestseller"] = true
	}
	if f.Keyword != "" {
		// Partial, case-insensitive matching; more forgiving than $text.
		kw := primitive.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": kw},
			bson.M{"description": kw},
			bson.M{"tags": kw},
			bson.M{"brand": kw},
			bson.M{"category": kw},
			bson.M{"subcategory": kw},
		}
	}
	return query
}

func sortSpec(sort ProductSort) bson.D {
	switch sort {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case SortRating:
		return bson.D{{Key: "ratings", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (s *MongoProductStore) List(ctx context.Context, f ProductFilter, page, pageSize int, sort ProductSort) ([]models.Product, int64, error) {
	query := filterQuery(f)

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sortSpec(sort)).
		SetSkip(int64(pageSize * (page - 1))).
		SetLimit(int64(pageSize))

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *MongoProductStore) ListBestsellers(ctx context.Context, limit int) ([]models.Product, error) {
	return s.find(ctx, bson.M{"isBestseller": true}, nil, limit)
}

func (s *MongoProductStore) ListNewest(ctx context.Context, limit int) ([]models.Product, error) {
	return s.find(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, limit)
}

func (s *MongoProductStore) ListRelated(ctx context.Context, category, subcategory string, exclude primitive.ObjectID, limit int) ([]models.Product, error) {
	query := bson.M{
		"category":    category,
		"subcategory": subcategory,
		"_id":         bson.M{"$ne": exclude},
	}
	return s.find(ctx, query, nil, limit)
}

func (s *MongoProductStore) find(ctx context.Context, query bson.M, sort bson.D, limit int) ([]models.Product, error) {
	opts := options.Find().SetLimit(int64(limit))
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProductStore) Insert(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *MongoProductStore) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock is a decrement-if-enough compare-and-swap: the stock bound
// lives in the filter so two concurrent checkouts cannot both take the last
// unit.
func (s *MongoProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	result, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing product from one that is out of stock.
		count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (s *MongoProductStore) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	result, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
