package domain

import "context"

// FileRepository stores uploaded media (testimonial photos, team photos, site
// logo/hero images) and returns a public URL.
type FileRepository interface {
	Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error)
}
