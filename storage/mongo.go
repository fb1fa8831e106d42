// path: storage/mongo.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lgnappsweb/qruuei-sub000/models"
)

// MongoBackend keeps one document per report in a single collection.
// Writes require an authenticated user id on the record. Identifiers are
// ObjectID hex strings, so sorting by _id descending is newest-first.
type MongoBackend struct {
	col *mongo.Collection
}

func NewMongoBackend(col *mongo.Collection) *MongoBackend {
	return &MongoBackend{col: col}
}

func (b *MongoBackend) Create(ctx context.Context, rep models.StoredReport) (string, error) {
	if rep.UserID == "" {
		return "", ErrUnauthenticated
	}
	rep.ID = primitive.NewObjectID().Hex()
	rep.Timestamp = time.Now().UTC()
	if _, err := b.col.InsertOne(ctx, rep); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return rep.ID, nil
}

func (b *MongoBackend) Update(ctx context.Context, id string, rep models.StoredReport) error {
	if rep.UserID == "" {
		return ErrUnauthenticated
	}
	// _id, timestamp and userId stay as created
	set := bson.M{
		"codOcorrencia":    rep.CodOcorrencia,
		"type":             rep.Type,
		"rodovia":          rep.Rodovia,
		"km":               rep.KM,
		"status":           rep.Status,
		"fullReport":       rep.FullReport,
		"numeroOcorrencia": rep.NumeroOcorrencia,
		"formPath":         rep.FormPath,
	}
	res, err := b.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (b *MongoBackend) Get(ctx context.Context, id string) (models.StoredReport, error) {
	var rep models.StoredReport
	err := b.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rep)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StoredReport{}, ErrNotFound
	}
	if err != nil {
		return models.StoredReport{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return rep, nil
}

func (b *MongoBackend) List(ctx context.Context, f ListFilter) ([]models.StoredReport, string, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := bson.M{}
	if f.CodOcorrencia != "" {
		filter["codOcorrencia"] = f.CodOcorrencia
	}
	if f.Rodovia != "" {
		filter["rodovia"] = f.Rodovia
	}
	if !f.From.IsZero() {
		setRange(filter, "timestamp", "$gte", f.From)
	}
	if !f.To.IsZero() {
		setRange(filter, "timestamp", "$lte", f.To)
	}
	if f.Cursor != "" {
		filter["_id"] = bson.M{"$lt": f.Cursor}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(int64(limit + 1))
	cur, err := b.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	items := make([]models.StoredReport, 0, limit)
	next := ""
	for cur.Next(ctx) {
		var rep models.StoredReport
		if err := cur.Decode(&rep); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if len(items) == limit {
			next = items[limit-1].ID
			break
		}
		items = append(items, rep)
	}
	if err := cur.Err(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return items, next, nil
}

func setRange(m bson.M, key, op string, t time.Time) {
	if m[key] == nil {
		m[key] = bson.M{}
	}
	m[key].(bson.M)[op] = t
}
