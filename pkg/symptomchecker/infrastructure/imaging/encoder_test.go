package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

func redImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	return img
}

func redJPEGBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, redImage(10, 10), nil))
	return buf.Bytes()
}

func TestEncodeImageFromURL_RoundTrip(t *testing.T) {
	original := redJPEGBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(original)
	}))
	defer srv.Close()

	encoded, err := NewEncoder(time.Second).EncodeImageFromURL(context.Background(), srv.URL+"/rash.jpg")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, original, decoded, "the bytes are passed through as is")
}

func TestEncodeImageFromURL_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := NewEncoder(time.Second).EncodeImageFromURL(context.Background(), srv.URL+"/rash.jpg")
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusGone, fetchErr.StatusCode)
	require.Equal(t, srv.URL+"/rash.jpg", fetchErr.Source)
}

func TestEncodeImageFromURL_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewEncoder(time.Second).EncodeImageFromURL(context.Background(), url)
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 0, fetchErr.StatusCode)
}

func TestEncodeImage_JPEGRoundTrip(t *testing.T) {
	encoded, err := NewEncoder(time.Second).EncodeImage(redImage(10, 10))
	require.NoError(t, err)

	img, format, err := DecodeImage(encoded)
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 10, img.Bounds().Dx())
	require.Equal(t, 10, img.Bounds().Dy())
	r, g, b, _ := img.At(5, 5).RGBA()
	require.Greater(t, r>>8, uint32(200), "still red")
	require.Less(t, g>>8, uint32(60))
	require.Less(t, b>>8, uint32(60))
}

func TestEncodeImage_PNGIsLossless(t *testing.T) {
	original := redImage(3, 4)
	encoded, err := EncodeImage(original, FormatPNG)
	require.NoError(t, err)

	img, format, err := DecodeImage(encoded)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, original.Bounds(), img.Bounds())
	for x := 0; x < 3; x++ {
		for y := 0; y < 4; y++ {
			require.Equal(t, color.RGBAModel.Convert(original.At(x, y)), color.RGBAModel.Convert(img.At(x, y)))
		}
	}
}

func TestEncodeImage_UnsupportedFormat(t *testing.T) {
	_, err := EncodeImage(redImage(1, 1), Format("bmp"))
	require.Error(t, err)
}

func TestDecodeImage_InvalidBase64(t *testing.T) {
	_, _, err := DecodeImage("not base64!")
	require.Error(t, err)
}
