package services

import "github.com/Atlas00000/productvisualizer/models"

// ProductInput is the request payload for creating or updating a product.
// Nil fields are left untouched on update.
type ProductInput struct {
	Name                 *string       `json:"name"`
	Description          *string       `json:"description"`
	BasePrice            *float64      `json:"basePrice"`
	ModelURL             *string       `json:"modelUrl"`
	CustomizationOptions *OptionsInput `json:"customizationOptions"`
	IsActive             *bool         `json:"isActive"`
}

// OptionsInput replaces each option list that is present.
type OptionsInput struct {
	Colors     *[]models.ColorOption     `json:"colors"`
	Materials  *[]models.MaterialOption  `json:"materials"`
	Components *[]models.ComponentOption `json:"components"`
}

// CustomizationCreateRequest is the payload for saving a customization.
type CustomizationCreateRequest struct {
	ProductID          string   `json:"productId" validate:"required"`
	UserID             string   `json:"userId" validate:"required"`
	SelectedColor      string   `json:"selectedColor" validate:"required"`
	SelectedMaterial   string   `json:"selectedMaterial" validate:"required"`
	SelectedComponents []string `json:"selectedComponents"`
}

// PresignRequest describes an asset upload for a product.
type PresignRequest struct {
	Kind           string `json:"kind"`
	Filename       string `json:"filename"`
	ContentType    string `json:"contentType"`
	ExpiresSeconds int64  `json:"expiresIn"`
}

// PresignedUpload is returned to clients uploading 3D assets directly to S3.
type PresignedUpload struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Key       string            `json:"key"`
	PublicURL string            `json:"publicUrl"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresIn int64             `json:"expiresIn"`
}
