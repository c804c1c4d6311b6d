package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	// webp covers decode through x/image
	_ "golang.org/x/image/webp"
)

// ProcessedImage holds the resized cover and its listing thumbnail
type ProcessedImage struct {
	Original    []byte
	Thumbnail   []byte
	ContentType string
	Width       int
	Height      int
	ThumbWidth  int
	ThumbHeight int
}

// Config for cover image processing
type Config struct {
	MaxWidth    int // Max width of the stored cover
	MaxHeight   int
	ThumbWidth  int // Listing thumbnail, 16:9
	ThumbHeight int
	Quality     int // JPEG quality 1-100
}

// DefaultConfig returns the gig cover defaults
func DefaultConfig() Config {
	return Config{
		MaxWidth:    1920,
		MaxHeight:   1080,
		ThumbWidth:  640,
		ThumbHeight: 360,
		Quality:     85,
	}
}

// Processor downsizes cover images and cuts listing thumbnails
type Processor struct {
	config Config
}

// NewProcessor creates an image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes the image, fits it into the configured bounds and
// center-crops a thumbnail.
func (p *Processor) Process(reader io.Reader) (*ProcessedImage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	result := &ProcessedImage{
		ContentType: mimeFromFormat(format),
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}

	resized := img
	if result.Width > p.config.MaxWidth || result.Height > p.config.MaxHeight {
		resized = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
		result.Width = resized.Bounds().Dx()
		result.Height = resized.Bounds().Dy()
	}

	original, err := p.encode(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cover: %w", err)
	}
	result.Original = original

	thumb := imaging.Fill(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Center, imaging.Lanczos)
	result.ThumbWidth = thumb.Bounds().Dx()
	result.ThumbHeight = thumb.Bounds().Dy()

	thumbnail, err := p.encode(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	result.Thumbnail = thumbnail

	return result, nil
}

func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		// JPEG for everything else, including webp sources
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func mimeFromFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
