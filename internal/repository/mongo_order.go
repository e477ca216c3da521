package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepository implements domain.OrderRepository
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a new order repository
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	coll := db.Collection("orders")
	return &MongoOrderRepository{
		collection: coll,
	}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.ID == "" {
		// ULIDs are time-ordered like the timestamp ids they replace, without
		// the collision window of bare timestamps.
		order.ID = ulid.Make().String()
	}

	doc := bson.M{
		"_id":                     order.ID,
		"customer_name":           order.CustomerName,
		"email":                   order.Email,
		"phone":                   order.Phone,
		"health_authority_number": order.HealthAuthorityNumber,
		"specialty":               order.Specialty,
		"package_id":              order.PackageID,
		"package_name":            order.PackageName,
		"hours":                   order.Hours,
		"total_price":             order.TotalPrice,
		"status":                  order.Status,
		"notify_pending":          order.NotifyPending,
		"notes":                   order.Notes,
		"created_at":              order.CreatedAt,
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// List returns every order, oldest first. Callers wanting "recent first"
// reverse the slice themselves.
func (r *MongoOrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var order domain.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, nil
}

// UpdateStatus moves an order between any two of the four statuses, including
// reflexive and backward moves. Administrative override is a feature here, not
// a bug, so no transition graph is enforced.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.ErrInvalidStatus
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) SetNotes(ctx context.Context, id string, notes string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notes": notes}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order notes: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) SetNotifyPending(ctx context.Context, id string, pending bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notify_pending": pending}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order notify flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
