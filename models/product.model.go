package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product mendefinisikan struktur untuk produk.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required,min=3"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64            `json:"price" bson:"price" validate:"gte=0"`
	SalePrice   *float64           `json:"sale_price,omitempty" bson:"sale_price,omitempty" validate:"omitempty,gte=0"`
	SaleEndsAt  *time.Time         `json:"sale_ends_at,omitempty" bson:"sale_ends_at,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string             `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// Clone menyalin produk beserta nilai yang ditunjuk field pointer.
func (p Product) Clone() Product {
	if p.SalePrice != nil {
		v := *p.SalePrice
		p.SalePrice = &v
	}
	if p.SaleEndsAt != nil {
		v := *p.SaleEndsAt
		p.SaleEndsAt = &v
	}
	return p
}

// OnSale bernilai true bila harga diskon ada dan jendela diskon belum berakhir.
func (p Product) OnSale(now time.Time) bool {
	if p.SalePrice == nil {
		return false
	}
	return p.SaleEndsAt == nil || !now.After(*p.SaleEndsAt)
}

// EffectivePrice adalah harga yang dibayar pembeli saat ini.
func (p Product) EffectivePrice(now time.Time) float64 {
	if p.OnSale(now) {
		return *p.SalePrice
	}
	return p.Price
}

// DiscountPercentage dibulatkan ke bilangan bulat terdekat.
func (p Product) DiscountPercentage() int {
	if p.SalePrice == nil || p.Price <= 0 {
		return 0
	}
	return int(math.Round((p.Price - *p.SalePrice) / p.Price * 100))
}

// ProductInput adalah data form untuk membuat produk baru.
type ProductInput struct {
	Name        string     `json:"name" validate:"required,min=3"`
	Category    string     `json:"category"`
	Price       float64    `json:"price" validate:"gte=0"`
	OnSale      bool       `json:"is_on_sale"`
	SalePrice   *float64   `json:"sale_price" validate:"omitempty,gte=0"`
	SaleEndsAt  *time.Time `json:"sale_ends_at"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
}

// Normalize membuang field diskon bila produk tidak sedang diskon.
func (in ProductInput) Normalize() ProductInput {
	if !in.OnSale {
		in.SalePrice = nil
		in.SaleEndsAt = nil
	}
	return in
}

// Product membangun dokumen produk dari input.
func (in ProductInput) Product(now time.Time) Product {
	in = in.Normalize()
	return Product{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		SalePrice:   in.SalePrice,
		SaleEndsAt:  in.SaleEndsAt,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
	}
}

// ProductUpdate adalah patch parsial. Field nil tidak disentuh,
// ClearSale menghapus harga diskon dan akhir diskon.
type ProductUpdate struct {
	Name        *string
	Category    *string
	Price       *float64
	SalePrice   *float64
	SaleEndsAt  *time.Time
	Description *string
	ImageURL    *string
	ClearSale   bool
}

// IsEmpty bernilai true bila patch tidak mengubah apa pun.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Price == nil &&
		u.SalePrice == nil && u.SaleEndsAt == nil && u.Description == nil &&
		u.ImageURL == nil && !u.ClearSale
}

// ApplyTo menggabungkan patch ke salinan produk.
func (u ProductUpdate) ApplyTo(p Product) Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.ClearSale {
		p.SalePrice = nil
		p.SaleEndsAt = nil
	} else {
		if u.SalePrice != nil {
			v := *u.SalePrice
			p.SalePrice = &v
		}
		if u.SaleEndsAt != nil {
			v := *u.SaleEndsAt
			p.SaleEndsAt = &v
		}
	}
	return p
}

// BSON menerjemahkan patch menjadi dokumen update MongoDB.
func (u ProductUpdate) BSON() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.ImageURL != nil {
		set["image_url"] = *u.ImageURL
	}

	update := bson.M{}
	if u.ClearSale {
		update["$unset"] = bson.M{"sale_price": "", "sale_ends_at": ""}
	} else {
		if u.SalePrice != nil {
			set["sale_price"] = *u.SalePrice
		}
		if u.SaleEndsAt != nil {
			set["sale_ends_at"] = *u.SaleEndsAt
		}
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update
}
