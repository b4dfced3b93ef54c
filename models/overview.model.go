package models

import (
	"sort"
	"time"
)

// CategoryCount adalah jumlah produk per kategori.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PricePoint adalah satu batang grafik harga produk.
type PricePoint struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"sale_price"`
}

// Overview adalah ringkasan untuk halaman utama dashboard.
type Overview struct {
	TotalProducts  int             `json:"total_products"`
	ProductsOnSale int             `json:"products_on_sale"`
	AveragePrice   float64         `json:"average_price"`
	Categories     []CategoryCount `json:"categories"`
	PriceChart     []PricePoint    `json:"price_chart"`
	Orders         OrderSummary    `json:"orders"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

const (
	priceChartSize = 8
	chartNameLen   = 10
)

// BuildOverview menghitung ringkasan produk dan pesanan.
func BuildOverview(products []Product, orders []Order, now time.Time) Overview {
	o := Overview{
		TotalProducts: len(products),
		Categories:    []CategoryCount{},
		PriceChart:    []PricePoint{},
		Orders:        Summarize(orders),
		GeneratedAt:   now,
	}

	counts := map[string]int{}
	var sum float64
	for _, p := range products {
		sum += p.Price
		if p.SalePrice != nil && *p.SalePrice != 0 {
			o.ProductsOnSale++
		}
		category := p.Category
		if category == "" {
			category = "Uncategorized"
		}
		counts[category]++
	}
	if o.TotalProducts > 0 {
		o.AveragePrice = sum / float64(o.TotalProducts)
	}

	for name, n := range counts {
		o.Categories = append(o.Categories, CategoryCount{Name: name, Value: n})
	}
	sort.Slice(o.Categories, func(i, j int) bool { return o.Categories[i].Name < o.Categories[j].Name })

	for i, p := range products {
		if i == priceChartSize {
			break
		}
		point := PricePoint{Name: chartName(p.Name), Price: p.Price}
		if p.SalePrice != nil {
			point.SalePrice = *p.SalePrice
		}
		o.PriceChart = append(o.PriceChart, point)
	}
	return o
}

func chartName(name string) string {
	r := []rune(name)
	if len(r) > chartNameLen {
		return string(r[:chartNameLen]) + "..."
	}
	return name
}
