package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus adalah status pesanan.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid bernilai true untuk kelima status yang dikenal.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem adalah satu baris pesanan.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
}

// Order mendefinisikan struktur untuk pesanan.
type Order struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CustomerName string             `json:"customer_name" bson:"customer_name"`
	OrderDate    time.Time          `json:"order_date" bson:"order_date"`
	Total        float64            `json:"total" bson:"total"`
	Status       OrderStatus        `json:"status" bson:"status"`
	Items        []OrderItem        `json:"items" bson:"items"`
}

// StatusRequest adalah body untuk mengubah status pesanan.
type StatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderSummary merangkum sekumpulan pesanan.
type OrderSummary struct {
	Count        int     `json:"count"`
	Revenue      float64 `json:"revenue"`
	AverageValue float64 `json:"average_value"`
	Pending      int     `json:"pending"`
}

// Summarize menghitung ringkasan pesanan.
func Summarize(orders []Order) OrderSummary {
	s := OrderSummary{Count: len(orders)}
	for _, o := range orders {
		s.Revenue += o.Total
		if o.Status == OrderPending {
			s.Pending++
		}
	}
	if s.Count > 0 {
		s.AverageValue = s.Revenue / float64(s.Count)
	}
	return s
}
