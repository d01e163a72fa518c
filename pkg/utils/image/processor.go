// Package image validates and re-encodes uploaded pictures before they are
// stored. Re-encoding strips whatever the browser sent and normalizes
// quality.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"

	"github.com/chai2010/webp"
)

const MaxImageSize = 5 * 1024 * 1024 // 5MB

var ErrTooLarge = errors.New("file too large")
var ErrUnsupportedType = errors.New("unsupported image type")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Process checks size and type, decodes the upload and re-encodes it.
// Returns the encoded bytes and the normalized content type.
func Process(file *multipart.FileHeader) (*bytes.Buffer, string, error) {
	if file.Size > MaxImageSize {
		return nil, "", ErrTooLarge
	}
	if !allowedTypes[file.Header.Get("Content-Type")] {
		return nil, "", ErrUnsupportedType
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open file: %w", err)
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %w", err)
	}

	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(buf, img)
	case "webp":
		err = webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85})
	default:
		return nil, "", ErrUnsupportedType
	}
	if err != nil {
		return nil, "", fmt.Errorf("could not encode image: %w", err)
	}

	return buf, fmt.Sprintf("image/%s", format), nil
}
