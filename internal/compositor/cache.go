package compositor

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/patrickmn/go-cache"
	_ "golang.org/x/image/webp"

	"adstudio/internal/domain"
)

// ImageCache memoizes decoded layer images by content hash, so re-rendering
// the cards of one ad decodes each source once.
type ImageCache struct {
	items *cache.Cache
}

func NewImageCache(ttl time.Duration) *ImageCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ImageCache{items: cache.New(ttl, 2*ttl)}
}

// Decode returns the decoded image behind ref.
func (c *ImageCache) Decode(ref *domain.ImageRef) (image.Image, error) {
	data, _, err := ref.Bytes()
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if v, ok := c.items.Get(key); ok {
		return v.(image.Image), nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrAssetUnreadable, err)
	}
	c.items.SetDefault(key, img)
	return img, nil
}

// Size returns the pixel dimensions behind ref.
func (c *ImageCache) Size(ref *domain.ImageRef) (image.Point, error) {
	img, err := c.Decode(ref)
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}
