package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // registers the GIF decoder for DecodeImage
	"image/jpeg"
	"image/png"
	"net/http"
	"time"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

// Format the format used to encode in-memory images.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

const jpegQuality = 95

// maxImageSize hosted models reject huge payloads anyway.
const maxImageSize = 20 << 20

type Encoder struct {
	httpClient *http.Client
	format     Format
}

// NewEncoder `fetchTimeout` applies to downloading images from URLs.
func NewEncoder(fetchTimeout time.Duration) *Encoder {
	return &Encoder{
		httpClient: common.NewHTTPClient(fetchTimeout),
		format:     FormatJPEG,
	}
}

// EncodeImageFromURL downloads the image and base64-encodes its bytes as is. Failures are returned as
// *domain.FetchError; there are no retries.
func (e *Encoder) EncodeImageFromURL(ctx context.Context, url string) (string, error) {
	response, err := common.ReadAllFromURL(ctx, e.httpClient, url, maxImageSize)
	if err != nil {
		fetchErr := &domain.FetchError{Source: url, Err: err}
		var statusErr *common.HTTPStatusError
		if errors.As(err, &statusErr) {
			fetchErr.StatusCode = statusErr.StatusCode
		}
		return "", fetchErr
	}
	return base64.StdEncoding.EncodeToString(response.Body), nil
}

// EncodeImage encodes the image as JPEG and base64-encodes the result.
func (e *Encoder) EncodeImage(img image.Image) (string, error) {
	return EncodeImage(img, e.format)
}

// EncodeImage encodes the image in the given format and base64-encodes the result.
func EncodeImage(img image.Image, format Format) (string, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJPEG, "":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case FormatPNG:
		err = png.Encode(&buf, img)
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeImage is the reverse of EncodeImage. Returns the image and the name of its format.
func DecodeImage(imageBase64 string) (image.Image, string, error) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, "", err
	}
	return image.Decode(bytes.NewReader(data))
}
