package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder with image.Decode

	"github.com/mausham-bytes/nutrient-analyzer/models"
)

const (
	MaxImageWidth  = 800
	MaxImageHeight = 800
	JPEGQuality    = 85
)

// NormalizeImage shrinks the image at path to fit MaxImageWidth x MaxImageHeight
// (never upscaling), composites any transparency onto a white background and
// writes it as JPEG next to the original as "<name>_optimized.jpg".
//
// It never fails: if the image cannot be decoded or written, the original
// bytes and path are returned with Optimized set to false.
func NormalizeImage(path string) models.NormalizedImage {
	out, err := normalize(path)
	if err == nil {
		return out
	}

	Log().Warnw("image normalization failed, using original upload", "path", path, "error", err)
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		Log().Warnw("could not read original upload", "path", path, "error", readErr)
	}
	return models.NormalizedImage{Path: path, Data: data}
}

func normalize(path string) (models.NormalizedImage, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return models.NormalizedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	img = imaging.Fit(img, MaxImageWidth, MaxImageHeight, imaging.Lanczos)
	if hasAlpha(img) {
		img = flatten(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return models.NormalizedImage{}, fmt.Errorf("failed to encode image: %w", err)
	}

	outPath := optimizedPath(path)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		_ = os.Remove(outPath)
		return models.NormalizedImage{}, fmt.Errorf("failed to write optimized image: %w", err)
	}

	b := img.Bounds()
	return models.NormalizedImage{
		Path:      outPath,
		Data:      buf.Bytes(),
		Width:     b.Dx(),
		Height:    b.Dy(),
		Optimized: true,
	}, nil
}

func optimizedPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_optimized.jpg"
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// flatten draws img over opaque white.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
