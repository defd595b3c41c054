package domain

import (
	"context"
	"image"
)

// ImageEncoder produces base64 strings of encoded image bytes.
type ImageEncoder interface {
	// EncodeImageFromURL downloads the image as is (no re-encoding).
	EncodeImageFromURL(ctx context.Context, url string) (string, error)
	// EncodeImage encodes an in-memory image as JPEG.
	EncodeImage(img image.Image) (string, error)
}
