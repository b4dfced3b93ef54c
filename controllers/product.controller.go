package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"storefront-backend/imagehost"
	"storefront-backend/models"
	"storefront-backend/store"
)

// GetProducts menangani pengambilan semua produk.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	if err := ctrl.Products.Fetch(ctx); err != nil {
		respondError(c, err, store.Message(err, "Product not found"), "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": ctrl.Products.Products()})
}

// GetProduct menangani pengambilan satu produk berdasarkan ID.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	product, ok := ctrl.findProduct(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct menangani pembuatan produk baru.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidateInput(input); err != nil {
		respondError(c, err, err.Error(), "")
		return
	}

	product, err := ctrl.Products.Add(ctx, input.Product(time.Now()))
	if err != nil {
		respondError(c, err, store.Message(err, "Product not found"), "Product not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct menangani pembaruan data produk. Field yang tidak dikirim
// tidak diubah; sale_price null atau is_on_sale false menghapus diskon.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	id, ok := objectID(c, "Invalid product ID")
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update, err := decodeProductUpdate(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctrl.Products.Update(ctx, id, update)
	if err != nil {
		respondError(c, err, store.Message(err, "Product not found"), "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// DeleteProduct menangani penghapusan produk.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	id, ok := objectID(c, "Invalid product ID")
	if !ok {
		return
	}

	if err := ctrl.Products.Delete(ctx, id); err != nil {
		respondError(c, err, store.Message(err, "Product not found"), "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// UploadImage menangani upload gambar produk ke image host.
func (ctrl *Controller) UploadImage(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded. Please select an image file."})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	url, err := ctrl.Uploader.Upload(ctx, file.Filename, file.Size, f)
	if err != nil {
		switch {
		case imagehost.IsRejection(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, imagehost.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "File uploaded successfully", "image_url": url})
}

func (ctrl *Controller) findProduct(c *gin.Context) (models.Product, bool) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	id, ok := objectID(c, "Invalid product ID")
	if !ok {
		return models.Product{}, false
	}
	product, err := ctrl.Products.Find(ctx, id)
	if err != nil {
		respondError(c, err, store.Message(err, "Product not found"), "Product not found")
		return models.Product{}, false
	}
	return product, true
}

func decodeProductUpdate(body []byte) (models.ProductUpdate, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.ProductUpdate{}, errors.Wrap(err, "invalid request body")
	}

	var u models.ProductUpdate
	fields := map[string]interface{}{
		"name":         &u.Name,
		"category":     &u.Category,
		"price":        &u.Price,
		"sale_ends_at": &u.SaleEndsAt,
		"description":  &u.Description,
		"image_url":    &u.ImageURL,
	}
	for key, dst := range fields {
		if v, ok := raw[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return models.ProductUpdate{}, errors.Wrapf(err, "invalid %s", key)
			}
		}
	}

	if v, ok := raw["sale_price"]; ok {
		if isNull(v) {
			u.ClearSale = true
		} else if err := json.Unmarshal(v, &u.SalePrice); err != nil {
			return models.ProductUpdate{}, errors.Wrap(err, "invalid sale_price")
		}
	}
	if v, ok := raw["is_on_sale"]; ok {
		var onSale bool
		if err := json.Unmarshal(v, &onSale); err != nil {
			return models.ProductUpdate{}, errors.Wrap(err, "invalid is_on_sale")
		}
		if !onSale {
			u.ClearSale = true
		}
	}
	if u.ClearSale {
		u.SalePrice = nil
		u.SaleEndsAt = nil
	}
	return u, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
