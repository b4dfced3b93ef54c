package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account mendefinisikan kredensial yang disimpan oleh penyedia auth.
type Account struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"-" bson:"password"`
	DisplayName string             `json:"display_name,omitempty" bson:"display_name,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	LastSignIn  *time.Time         `json:"last_sign_in_at,omitempty" bson:"last_sign_in_at,omitempty"`
	LastSignOut *time.Time         `json:"last_sign_out_at,omitempty" bson:"last_sign_out_at,omitempty"`
}

// Profile adalah data tambahan pengguna di koleksi users.
type Profile struct {
	ID      primitive.ObjectID `json:"id" bson:"_id"`
	Name    string             `json:"name,omitempty" bson:"name,omitempty"`
	IsAdmin bool               `json:"is_admin" bson:"is_admin"`
}

// User adalah identitas sesi yang dilihat oleh dashboard.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

// LoginRequest mendefinisikan struktur untuk permintaan login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest mendefinisikan struktur untuk permintaan registrasi.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
}
