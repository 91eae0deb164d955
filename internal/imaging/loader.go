package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrImageDecode is returned (wrapped) whenever input bytes cannot be parsed
// as a PNG, JPEG or GIF image.
var ErrImageDecode = errors.New("imaging: cannot decode image")

// Decode parses raw image bytes.
//
// Returns the decoded image and the format name reported by the registered
// decoder ("png", "jpeg" or "gif"). Any decoder failure, including empty
// input, is reported as an error wrapping ErrImageDecode.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty input", ErrImageDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, format, nil
}

// ImageCache keeps decoded maze images keyed by file path so repeated tool
// calls on the same maze skip disk I/O and decoding. Entries stay until
// Evict or Clear. Cached images are never mutated: grids are always built
// from a fresh grayscale copy.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, reading and decoding the file on
// a miss. Read failures are returned as is; undecodable content wraps
// ErrImageDecode. Failed loads are not cached.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a maze image file before it is turned into a grid.
// Format comes from the file extension: "png", "jpeg", "gif" or "unknown".
type ImageInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"`
	ColorDepth    string `json:"color_depth"`
	HasAlpha      bool   `json:"has_alpha"`
	Grayscale     bool   `json:"grayscale"`
	FileSizeBytes int64  `json:"file_size_bytes"`

	// DistinctIntensities counts the gray levels of the Rec.601 conversion.
	// A clean two-tone maze has 2.
	DistinctIntensities int `json:"distinct_intensities"`
	// SuggestedThreshold is Otsu's threshold for the Rec.601 conversion.
	SuggestedThreshold int `json:"suggested_threshold"`
}

// LoadImageInfo loads an image into the cache (if not already cached) and
// returns its metadata together with intensity statistics that help pick a
// binarization threshold.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hist := Histogram(Grayscale(img, LuminanceRec601))
	depth, alpha, gray := colorModel(img)

	return &ImageInfo{
		Width:               img.Bounds().Dx(),
		Height:              img.Bounds().Dy(),
		Format:              formatFromExt(path),
		ColorDepth:          depth,
		HasAlpha:            alpha,
		Grayscale:           gray,
		FileSizeBytes:       stat.Size(),
		DistinctIntensities: len(UniqueIntensities(hist)),
		SuggestedThreshold:  OtsuThreshold(hist),
	}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}

// colorModel reports the per-channel bit depth and whether the concrete
// image type carries alpha or a single gray channel.
func colorModel(img image.Image) (depth string, alpha, gray bool) {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64:
		return "16-bit", true, false
	case *image.RGBA, *image.NRGBA:
		return "8-bit", true, false
	case *image.Gray16:
		return "16-bit", false, true
	case *image.Gray:
		return "8-bit", false, true
	}
	return "8-bit", false, false
}
