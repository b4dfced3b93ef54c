package imagehost

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxSize adalah ukuran gambar maksimum yang diterima.
const MaxSize = 5 << 20

const sniffLen = 3072

var (
	ErrTooLarge        = errors.New("Image must be less than 5MB")
	ErrUnsupportedType = errors.New("Please upload a valid image file (JPG, PNG, or WebP)")
	ErrNotConfigured   = errors.New("image host is not configured")
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Validate menolak file yang terlalu besar atau bukan JPEG/PNG/WebP.
// Jenis file dibaca dari isi, bukan dari nama atau header Content-Type.
func Validate(size int64, header []byte) error {
	if size > MaxSize {
		return ErrTooLarge
	}
	detected := mimetype.Detect(header)
	for _, t := range allowedTypes {
		if detected.Is(t) {
			return nil
		}
	}
	return ErrUnsupportedType
}

// IsRejection bernilai true untuk penolakan lokal (bukan kegagalan host).
func IsRejection(err error) bool {
	return errors.Is(err, ErrTooLarge) || errors.Is(err, ErrUnsupportedType)
}

// Host adalah layanan penyimpanan gambar yang mengembalikan URL publik.
type Host interface {
	Upload(ctx context.Context, name string, file io.Reader) (string, error)
}

// CloudinaryHost mengunggah ke Cloudinary dengan upload preset unsigned.
type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	preset string
	folder string
}

func NewCloudinaryHost(cld *cloudinary.Cloudinary, preset, folder string) *CloudinaryHost {
	return &CloudinaryHost{cld: cld, preset: preset, folder: folder}
}

func (h *CloudinaryHost) Upload(ctx context.Context, name string, file io.Reader) (string, error) {
	if h.cld == nil {
		return "", ErrNotConfigured
	}

	params := uploader.UploadParams{Folder: h.folder}

	var result *uploader.UploadResult
	var err error
	if h.preset != "" {
		result, err = h.cld.Upload.UnsignedUpload(ctx, file, h.preset, params)
	} else {
		result, err = h.cld.Upload.Upload(ctx, file, params)
	}
	if err != nil {
		return "", errors.Wrap(err, "Failed to upload image")
	}
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("Failed to upload image")
	}
	return result.SecureURL, nil
}

// Recorder mencatat hasil upload.
type Recorder interface {
	RecordUpload(err error)
}

// Uploader memvalidasi file secara lokal lalu meneruskannya ke Host.
type Uploader struct {
	host    Host
	log     *zap.Logger
	metrics Recorder

	inflight atomic.Int32
}

func NewUploader(host Host, log *zap.Logger, metrics Recorder) *Uploader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{host: host, log: log.Named("uploader"), metrics: metrics}
}

// Uploading bernilai true selama ada upload yang berjalan.
func (u *Uploader) Uploading() bool {
	return u.inflight.Load() > 0
}

// Upload memeriksa ukuran dan jenis file sebelum memanggil host.
func (u *Uploader) Upload(ctx context.Context, name string, size int64, file io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", u.done(errors.Wrap(err, "failed to read image"))
	}
	head = head[:n]

	if err := Validate(size, head); err != nil {
		return "", u.done(err)
	}

	u.inflight.Add(1)
	defer u.inflight.Add(-1)

	url, err := u.host.Upload(ctx, name, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		u.log.Error("image upload failed", zap.String("name", name), zap.Error(err))
		return "", u.done(err)
	}

	u.log.Info("image uploaded", zap.String("name", name), zap.String("url", url))
	return url, u.done(nil)
}

func (u *Uploader) done(err error) error {
	if u.metrics != nil {
		u.metrics.RecordUpload(err)
	}
	return err
}
