package models

// UploadResult describes a stored image.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

type ImageURLRequest struct {
	ImageURL string `json:"imageUrl" form:"imageUrl" validate:"required,url"`
}

type PresignRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/gif image/webp"`
}

type PresignResult struct {
	UploadURL string            `json:"uploadUrl"`
	Headers   map[string]string `json:"headers"`
	PublicID  string            `json:"public_id"`
	URL       string            `json:"url"`
	ExpiresIn int               `json:"expiresIn"`
}
