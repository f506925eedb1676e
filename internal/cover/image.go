package cover

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// JPEGQuality is used for every re-encoded cover.
const JPEGQuality = 90

// ImageService resizes and re-encodes cover art.
//
// Example usage:
//
//	svc := NewImageService()
//	resized, _ := svc.Resize(ctx, imageData, 600, 600)
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Resize scales an image to fit within maxWidth x maxHeight, preserving the
// aspect ratio, and returns it JPEG-encoded. Images already inside the
// bounds are only re-encoded.
//
// The Catmull-Rom kernel is used for scaling.
//
// Example:
//
//	// A 1500x1000 image becomes 600x400
//	resized, err := svc.Resize(ctx, imageData, 600, 600)
func (s *ImageService) Resize(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertToJPEG re-encodes any decodable image as JPEG.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitWithin returns the largest size with the aspect ratio of w x h that
// fits inside maxW x maxH. Sizes already inside are returned unchanged.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}
	ratio := float64(w) / float64(h)
	if float64(maxW)/float64(maxH) > ratio {
		// height is the limiting side
		w = max(1, int(float64(maxH)*ratio))
		h = maxH
	} else {
		h = max(1, int(float64(maxW)/ratio))
		w = maxW
	}
	return w, h
}
