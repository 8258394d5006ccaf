package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

var (
	ErrImageTooLarge      = errors.New("image too large")
	ErrUnsupportedImage   = errors.New("unsupported image format")
	ErrImageNotDecodeable = errors.New("not an image")
)

// AvatarVariants maps variant name to square edge length in pixels.
var AvatarVariants = map[string]int{
	"medium":    256,
	"thumbnail": 96,
}

type ImageProcessor struct {
	MaxSize int64 // bytes
}

// NewImageProcessor returns a processor with the given limit; non-positive means 5MB.
func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage accepts JPEG and PNG up to MaxSize and returns the format name.
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrImageTooLarge, p.MaxSize)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageNotDecodeable, err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s (only jpeg/png)", ErrUnsupportedImage, format)
	}
}

// ProcessAvatar center-crops the image into each AvatarVariants size, JPEG quality 90.
func (p *ImageProcessor) ProcessAvatar(data []byte) (map[string][]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	variants := make(map[string][]byte, len(AvatarVariants))
	for name, size := range AvatarVariants {
		resized := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
		b := new(bytes.Buffer)
		if err := imaging.Encode(b, resized, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		variants[name] = b.Bytes()
	}
	return variants, nil
}

// ContentType maps a decoded format name to its MIME type.
func ContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// Extension maps a decoded format name to a file extension.
func Extension(format string) string {
	switch format {
	case "png":
		return "png"
	default:
		return "jpg"
	}
}
