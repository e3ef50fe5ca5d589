package services

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"formula-pad/internal/logger"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultImageExtension is suggested by the export dialog
const DefaultImageExtension = ".png"

// ImageFormat is a raster format an exported formula can be written in
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

// FormatForPath picks the export format from the file extension, PNG unless
// the name asks for BMP or TIFF.
func FormatForPath(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	default:
		return FormatPNG
	}
}

// EncodeImage writes img to w in the given format
func EncodeImage(w io.Writer, img image.Image, format ImageFormat) error {
	if img == nil {
		return fmt.Errorf("no image to encode")
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// EncodePNG returns img as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, FormatPNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportService writes rendered formulas to disk
type ExportService struct {
	logger logger.Logger
}

// NewExportService creates a new export service
func NewExportService(log logger.Logger) *ExportService {
	return &ExportService{logger: log}
}

// Export encodes img to path. The file is only replaced once encoding has
// succeeded.
func (es *ExportService) Export(path string, img image.Image) error {
	format := FormatForPath(path)

	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, format); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	es.logger.Info("ExportService", "formula image exported", map[string]interface{}{
		"path":   path,
		"format": string(format),
		"bytes":  buf.Len(),
	})
	return nil
}
