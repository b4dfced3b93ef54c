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

// ProductRepo menyimpan produk di koleksi products.
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepo membungkus koleksi products.
func NewProductRepo(coll *mongo.Collection) *ProductRepo {
	return &ProductRepo{coll: coll}
}

// ListByName mengambil semua produk terurut berdasarkan nama.
func (r *ProductRepo) ListByName(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "error fetching products")
	}
	defer cursor.Close(ctx)

	productList := []models.Product{}
	if err = cursor.All(ctx, &productList); err != nil {
		return nil, errors.Wrap(err, "error parsing products")
	}
	return productList, nil
}

// Get mengambil satu produk berdasarkan ID.
func (r *ProductRepo) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, models.ErrNotFound
		}
		return product, errors.Wrap(err, "error fetching product")
	}
	return product, nil
}

// Create menyimpan produk baru dan mengisi ID yang diberikan database.
func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	result, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return errors.Wrap(err, "error creating product")
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// CreateMany dipakai oleh perintah seed.
func (r *ProductRepo) CreateMany(ctx context.Context, products []models.Product) (int, error) {
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		docs = append(docs, products[i])
	}
	result, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, errors.Wrap(err, "error seeding products")
	}
	return len(result.InsertedIDs), nil
}

// Update menerapkan patch parsial pada satu produk.
func (r *ProductRepo) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) error {
	if update.IsEmpty() {
		return models.ErrEmptyUpdate
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update.BSON())
	if err != nil {
		return errors.Wrap(err, "error updating product")
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete menghapus satu produk.
func (r *ProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "error deleting product")
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
