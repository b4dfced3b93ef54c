package models

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldErrors memetakan nama field JSON ke pesan yang ditampilkan di form.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(productLevel, Product{})
	v.RegisterStructValidation(productInputLevel, ProductInput{})
	return v
}

// Aturan harga diskon hanya ada di sini, dipakai oleh form maupun store.
func salePriceValid(price float64, salePrice *float64) bool {
	return salePrice == nil || *salePrice < price
}

func productLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(Product)
	if !salePriceValid(p.Price, p.SalePrice) {
		sl.ReportError(p.SalePrice, "sale_price", "SalePrice", "ltprice", "")
	}
}

func productInputLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(ProductInput)
	if !in.OnSale {
		return
	}
	if in.SalePrice == nil {
		sl.ReportError(in.SalePrice, "sale_price", "SalePrice", "required_on_sale", "")
		return
	}
	if !salePriceValid(in.Price, in.SalePrice) {
		sl.ReportError(in.SalePrice, "sale_price", "SalePrice", "ltprice", "")
	}
}

var messages = map[string]string{
	"name.required":               "Product name must be at least 3 characters",
	"name.min":                    "Product name must be at least 3 characters",
	"price.gte":                   "Price must be positive",
	"sale_price.gte":              "Sale price must be positive",
	"sale_price.ltprice":          "Sale price must be less than regular price",
	"sale_price.required_on_sale": "Sale price is required when product is on sale",
	"status.oneof":                "Invalid order status",
	"email.required":              "Email is required",
	"email.email":                 "Invalid email address",
	"password.required":           "Password is required",
	"password.min":                "Password must be at least 6 characters",
}

// Validate menjalankan validasi struct dan mengubah hasilnya menjadi FieldErrors.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validation")
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		field := e.Field()
		if _, seen := fe[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+e.Tag()]; ok {
			fe[field] = msg
		} else {
			fe[field] = "Invalid value"
		}
	}
	return fe
}

// ValidateProduct memeriksa produk utuh, termasuk hasil penggabungan patch.
func ValidateProduct(p Product) error {
	return Validate(p)
}

// ValidateInput menormalkan lalu memeriksa data form produk.
func ValidateInput(in ProductInput) error {
	return Validate(in.Normalize())
}

// ValidEmail memeriksa format alamat email.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
