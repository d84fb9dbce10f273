package dto

// AttachmentResponse confirms a stored upload
type AttachmentResponse struct {
	StoredFileName string `json:"storedFileName"`
}
