// Package images stores product photos with an external image host and
// returns their public URLs.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
)

var (
	ErrUploadDisabled = errors.New("image uploads are not configured")
	ErrNotAnImage     = fmt.Errorf("%w: file is not an image", apperr.ErrInvalid)
)

type Uploader interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type DisabledUploader struct{}

func (DisabledUploader) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrUploadDisabled
}

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

type CloudinaryUploader struct {
	api    uploadAPI
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("create cloudinary client: %w", err)
	}
	return &CloudinaryUploader{api: &cld.Upload, folder: folder}, nil
}

// New returns a Cloudinary uploader when credentials are set and a
// DisabledUploader otherwise.
func New(cloudName, apiKey, apiSecret, folder string) (Uploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return DisabledUploader{}, nil
	}
	return NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder)
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	body, err := sniffImage(r)
	if err != nil {
		return "", err
	}

	res, err := u.api.Upload(ctx, body, uploader.UploadParams{
		Folder:       u.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if res == nil {
		return "", fmt.Errorf("upload %s: empty response", filename)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("upload %s: no url returned", filename)
	}
	return res.SecureURL, nil
}

// sniffImage checks the leading bytes and returns a reader over the full
// content.
func sniffImage(r io.Reader) (io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read image: %w", err)
	}
	head = head[:n]
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return nil, ErrNotAnImage
	}
	return io.MultiReader(bytes.NewReader(head), r), nil
}
