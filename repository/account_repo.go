package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/models"
)

// AccountRepo menyimpan kredensial di koleksi accounts dan profil di koleksi users.
type AccountRepo struct {
	accounts *mongo.Collection
	profiles *mongo.Collection
}

func NewAccountRepo(accounts, profiles *mongo.Collection) *AccountRepo {
	return &AccountRepo{accounts: accounts, profiles: profiles}
}

// FindByEmail mengambil akun berdasarkan email.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	var account models.Account
	err := r.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return account, models.ErrNotFound
		}
		return account, errors.Wrap(err, "error fetching account")
	}
	return account, nil
}

// Create menyimpan akun baru. Email harus unik.
func (r *AccountRepo) Create(ctx context.Context, account *models.Account) error {
	if _, err := r.FindByEmail(ctx, account.Email); err == nil {
		return models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	result, err := r.accounts.InsertOne(ctx, account)
	if err != nil {
		return errors.Wrap(err, "error creating account")
	}
	account.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List mengambil semua akun tanpa hash password.
func (r *AccountRepo) List(ctx context.Context) ([]models.Account, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0}).SetSort(bson.D{{Key: "email", Value: 1}})
	cursor, err := r.accounts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching accounts")
	}
	defer cursor.Close(ctx)

	accountList := []models.Account{}
	if err = cursor.All(ctx, &accountList); err != nil {
		return nil, errors.Wrap(err, "error parsing accounts")
	}
	return accountList, nil
}

// Delete menghapus akun beserta profilnya.
func (r *AccountRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.accounts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "error deleting account")
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	if _, err := r.profiles.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(err, "error deleting profile")
	}
	return nil
}

// TouchSignIn mencatat waktu login terakhir.
func (r *AccountRepo) TouchSignIn(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.touch(ctx, id, "last_sign_in_at", at)
}

// TouchSignOut mencatat waktu logout terakhir.
func (r *AccountRepo) TouchSignOut(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.touch(ctx, id, "last_sign_out_at", at)
}

func (r *AccountRepo) touch(ctx context.Context, id primitive.ObjectID, field string, at time.Time) error {
	_, err := r.accounts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: at}})
	return errors.Wrapf(err, "error updating %s", field)
}

// Profile mengambil profil pengguna. ok=false bila belum ada.
func (r *AccountRepo) Profile(ctx context.Context, id primitive.ObjectID) (models.Profile, bool, error) {
	var profile models.Profile
	err := r.profiles.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return profile, false, nil
		}
		return profile, false, errors.Wrap(err, "error fetching profile")
	}
	return profile, true, nil
}

// SaveProfile membuat atau mengganti profil pengguna.
func (r *AccountRepo) SaveProfile(ctx context.Context, profile models.Profile) error {
	_, err := r.profiles.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, options.Replace().SetUpsert(true))
	return errors.Wrap(err, "error saving profile")
}
