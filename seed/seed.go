package seed

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront-backend/models"
)

const demoImage = "https://res.cloudinary.com/demo/image/upload/v1312461204/sample.jpg"

// ProductWriter menyimpan banyak produk sekaligus.
type ProductWriter interface {
	CreateMany(ctx context.Context, products []models.Product) (int, error)
}

// OrderWriter menyimpan satu pesanan.
type OrderWriter interface {
	Create(ctx context.Context, order *models.Order) error
}

// Registrar membuat akun beserta profilnya.
type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.Account, error)
}

// Targets adalah tempat penyimpanan yang diisi oleh Run.
type Targets struct {
	Products ProductWriter
	Orders   OrderWriter
	Accounts Registrar
}

// Options mengatur apa saja yang diisi.
type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	Products      bool
	Orders        bool
}

// Result adalah ringkasan hasil seeding.
type Result struct {
	Products     int
	Orders       int
	AdminCreated bool
}

func float(v float64) *float64 { return &v }

func until(now time.Time, days int) *time.Time {
	t := now.Add(time.Duration(days) * 24 * time.Hour)
	return &t
}

// DemoProducts mengembalikan katalog contoh. Tiga produk sedang diskon.
func DemoProducts(now time.Time) []models.Product {
	products := []models.Product{
		{Name: "iPhone 14 Pro", Category: "Electronics", Price: 999.99, Description: "Latest iPhone with dynamic island and amazing camera system"},
		{Name: "Nike Air Max", Category: "Sports", Price: 129.99, SalePrice: float(99.99), SaleEndsAt: until(now, 7), Description: "Comfortable running shoes with air cushioning"},
		{Name: "The Alchemist", Category: "Books", Price: 14.99, Description: "International bestseller by Paulo Coelho"},
		{Name: "Smart LED TV", Category: "Electronics", Price: 699.99, SalePrice: float(599.99), SaleEndsAt: until(now, 3), Description: "55-inch 4K Smart LED TV with HDR"},
		{Name: "Garden Tools Set", Category: "Home & Garden", Price: 49.99, Description: "Complete set of essential garden tools"},
		{Name: "LEGO Star Wars Set", Category: "Toys", Price: 79.99, Description: "Build your own Millennium Falcon"},
		{Name: "Face Serum", Category: "Beauty", Price: 29.99, Description: "Anti-aging vitamin C serum"},
		{Name: "Car Wash Kit", Category: "Automotive", Price: 39.99, SalePrice: float(29.99), SaleEndsAt: until(now, 5), Description: "Complete car cleaning and detailing kit"},
		{Name: "Organic Coffee Beans", Category: "Food", Price: 19.99, Description: "Premium organic coffee beans from Ethiopia"},
		{Name: "Yoga Mat", Category: "Sports", Price: 24.99, Description: "Non-slip eco-friendly yoga mat"},
	}
	for i := range products {
		products[i].ImageURL = demoImage
		products[i].CreatedAt = now
	}
	return products
}

// DemoOrders mengembalikan pesanan contoh dengan berbagai status.
func DemoOrders(now time.Time) []models.Order {
	return []models.Order{
		{CustomerName: "John Doe", OrderDate: now, Total: 299.99, Status: models.OrderPending,
			Items: []models.OrderItem{{Quantity: 2, Price: 149.99}}},
		{CustomerName: "Jane Smith", OrderDate: now.Add(-26 * time.Hour), Total: 129.99, Status: models.OrderProcessing,
			Items: []models.OrderItem{{Quantity: 1, Price: 129.99}}},
		{CustomerName: "Budi Santoso", OrderDate: now.Add(-72 * time.Hour), Total: 64.97, Status: models.OrderShipped,
			Items: []models.OrderItem{{Quantity: 2, Price: 19.99}, {Quantity: 1, Price: 24.99}}},
		{CustomerName: "Maria Garcia", OrderDate: now.Add(-7 * 24 * time.Hour), Total: 699.99, Status: models.OrderDelivered,
			Items: []models.OrderItem{{Quantity: 1, Price: 699.99}}},
		{CustomerName: "Ken Tanaka", OrderDate: now.Add(-10 * 24 * time.Hour), Total: 29.99, Status: models.OrderCancelled,
			Items: []models.OrderItem{{Quantity: 1, Price: 29.99}}},
	}
}

// Run mengisi database dengan akun admin dan, bila diminta, produk dan pesanan contoh.
// Akun yang sudah ada dilewati.
func Run(ctx context.Context, targets Targets, opts Options, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res Result

	if opts.AdminEmail != "" {
		req := models.RegisterRequest{
			Email:    opts.AdminEmail,
			Password: opts.AdminPassword,
			Name:     opts.AdminName,
			IsAdmin:  true,
		}
		if err := models.Validate(req); err != nil {
			return res, errors.Wrap(err, "invalid admin account")
		}

		account, err := targets.Accounts.Register(ctx, req)
		switch {
		case errors.Is(err, models.ErrDuplicateEmail):
			log.Info("admin account already exists", zap.String("email", opts.AdminEmail))
		case err != nil:
			return res, errors.Wrap(err, "error creating admin account")
		default:
			res.AdminCreated = true
			log.Info("admin account created", zap.String("id", account.ID.Hex()))
		}
	}

	if opts.Products {
		demo := DemoProducts(time.Now())
		for _, p := range demo {
			if err := models.ValidateProduct(p); err != nil {
				return res, errors.Wrapf(err, "invalid demo product %q", p.Name)
			}
		}
		n, err := targets.Products.CreateMany(ctx, demo)
		if err != nil {
			return res, errors.Wrap(err, "error seeding products")
		}
		res.Products = n
		log.Info("seeded products", zap.Int("count", n))
	}

	if opts.Orders {
		for _, o := range DemoOrders(time.Now()) {
			if err := targets.Orders.Create(ctx, &o); err != nil {
				return res, errors.Wrap(err, "error seeding orders")
			}
			res.Orders++
		}
		log.Info("seeded orders", zap.Int("count", res.Orders))
	}

	return res, nil
}
