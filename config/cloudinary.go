package config

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/pkg/errors"
)

// ConnectCloudinary membuat klien Cloudinary dari CLOUDINARY_URL.
// Mengembalikan nil bila URL kosong sehingga upload dinonaktifkan.
func ConnectCloudinary(url string) (*cloudinary.Cloudinary, error) {
	if url == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid CLOUDINARY_URL")
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
