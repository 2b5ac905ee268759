package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityerrors "wedmarket/internal/availability/errors"
	"wedmarket/pkg/config"
	mongotx "wedmarket/pkg/db/mongo"
	"wedmarket/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Availability"
)

type AvailabilityRepository interface {
	FindRange(ctx context.Context, vendorID, startDate, endDate string) ([]*model.AvailabilityRecord, error)
	FindByDate(ctx context.Context, vendorID, date string) (*model.AvailabilityRecord, error)
	Upsert(ctx context.Context, record *model.AvailabilityRecord) error
	Delete(ctx context.Context, vendorID, date string) error
	Ping(ctx context.Context) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoAvailabilityRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds ctx by timeout unless it already carries an earlier deadline.
// Session contexts are returned unchanged so they stay bound to their transaction.
func (r *mongoAvailabilityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

// FindRange returns the vendor's records with startDate <= date <= endDate, ordered by
// date. ISO day strings sort chronologically, so the bounds compare as strings.
func (r *mongoAvailabilityRepository) FindRange(ctx context.Context, vendorID, startDate, endDate string) ([]*model.AvailabilityRecord, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"vendor_id": vendorID,
		"date":      bson.M{"$gte": startDate, "$lte": endDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*model.AvailabilityRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	return records, nil
}

func (r *mongoAvailabilityRepository) FindByDate(ctx context.Context, vendorID, date string) (*model.AvailabilityRecord, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var record model.AvailabilityRecord
	err := r.collection.FindOne(ctx, bson.M{"vendor_id": vendorID, "date": date}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availabilityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}
	return &record, nil
}

// Upsert writes the record keyed by (vendor_id, date) and stamps UpdatedAt.
func (r *mongoAvailabilityRepository) Upsert(ctx context.Context, record *model.AvailabilityRecord) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	record.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	filter := bson.M{"vendor_id": record.VendorID, "date": record.Date}
	update := bson.M{
		"$set": bson.M{
			"is_available":   record.IsAvailable,
			"booking_status": record.BookingStatus,
			"reason":         record.Reason,
			"updated_at":     record.UpdatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepository) Delete(ctx context.Context, vendorID, date string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"vendor_id": vendorID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if result.DeletedCount == 0 {
		return availabilityerrors.ErrNotFound
	}
	return nil
}

func (r *mongoAvailabilityRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()
	return r.db.Client().Ping(ctx, nil)
}

func (r *mongoAvailabilityRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
