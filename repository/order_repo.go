package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/models"
)

// OrderRepo menyimpan pesanan di koleksi orders.
type OrderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepo(coll *mongo.Collection) *OrderRepo {
	return &OrderRepo{coll: coll}
}

// ListRecent mengambil semua pesanan, terbaru lebih dulu.
func (r *OrderRepo) ListRecent(ctx context.Context) ([]models.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "error fetching orders")
	}
	defer cursor.Close(ctx)

	orderList := []models.Order{}
	if err = cursor.All(ctx, &orderList); err != nil {
		return nil, errors.Wrap(err, "error parsing orders")
	}
	return orderList, nil
}

// Create menyimpan pesanan baru.
func (r *OrderRepo) Create(ctx context.Context, order *models.Order) error {
	result, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return errors.Wrap(err, "error creating order")
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateStatus mengganti status satu pesanan.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return errors.Wrap(err, "error updating order")
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
