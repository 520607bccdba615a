// Package cdn provides a testcontainer serving a small fake Emoji Kitchen catalog.
package cdn

// Asset is one file published by the fake CDN.
type Asset struct {
	Path    string
	Content string
}

// CatalogConfig describes what the fake CDN serves.
type CatalogConfig struct {
	Image  string
	Assets []Asset
}

// TinyPNG is a valid 1x1 transparent PNG.
const TinyPNG = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89" +
	"\x00\x00\x00\rIDATx\x9cc\xf8\x0f\x00\x00\x01\x01\x00\x05\x18\xd8N\x00\x00\x00\x00IEND\xaeB`\x82"

// DefaultCatalogConfig serves 😊+🐶 from the 20250130 snapshot only, and the
// Twemoji SVG for 😊.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Image: "nginx:1.27-alpine",
		Assets: []Asset{
			{Path: "emojikitchen/20250130/u1f60a/u1f60a_u1f436.png", Content: TinyPNG},
			{Path: "twemoji/1f60a.svg", Content: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 36 36"></svg>`},
		},
	}
}
