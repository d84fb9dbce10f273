package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/martijn/garage/internal/core/repository"
	"github.com/oklog/ulid/v2"
)

// DefaultAllowedMediaTypes are the document types accepted for upload.
var DefaultAllowedMediaTypes = []string{"image/jpeg", "image/png", "application/pdf"}

var (
	extensionRx = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

	preferredExtensions = map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"application/pdf": ".pdf",
	}
)

type AttachmentService struct {
	clients  *ClientService
	content  repository.ContentStore
	allowed  map[string]bool
	newToken func() string
}

func NewAttachmentService(clients *ClientService, content repository.ContentStore, allowedMediaTypes []string) *AttachmentService {
	if len(allowedMediaTypes) == 0 {
		allowedMediaTypes = DefaultAllowedMediaTypes
	}
	allowed := make(map[string]bool, len(allowedMediaTypes))
	for _, mt := range allowedMediaTypes {
		allowed[normalizeMediaType(mt)] = true
	}

	return &AttachmentService{
		clients:  clients,
		content:  content,
		allowed:  allowed,
		newToken: func() string { return ulid.Make().String() },
	}
}

// Attach stores data under a freshly generated name and records that name on
// the client. The record is only touched after the write succeeded; a file
// written for an unknown client is left behind.
func (s *AttachmentService) Attach(ctx context.Context, clientID string, data []byte, mediaType, originalName string) (string, error) {
	mt := normalizeMediaType(mediaType)
	if !s.allowed[mt] {
		return "", unsupportedMediaTypeError(fmt.Sprintf("Unsupported media type: %q", mediaType))
	}

	storedName := s.newToken() + extensionFor(originalName, mt)

	if err := s.content.Save(ctx, storedName, data, mt); err != nil {
		return "", storageError("failed to store attachment", err)
	}

	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("attachment %s stored for unknown client %s", storedName, clientID)
		}
		return "", err
	}

	client.AttachmentName = storedName
	client.Touch()
	if err := s.clients.save(ctx, client); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("attachment %s stored for client %s deleted meanwhile", storedName, clientID)
			return "", err
		}
		return "", storageError("failed to record attachment", err)
	}

	return storedName, nil
}

// OpenAttachment streams the document attached to a client.
func (s *AttachmentService) OpenAttachment(ctx context.Context, clientID string) (io.ReadCloser, string, error) {
	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, "", err
	}
	if client.AttachmentName == "" {
		return nil, "", notFoundError(fmt.Sprintf("Client %s has no attachment", clientID), nil)
	}

	rc, err := s.content.Open(ctx, client.AttachmentName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", notFoundError(fmt.Sprintf("Attachment not found: %s", client.AttachmentName), err)
	}
	if err != nil {
		return nil, "", storageError("failed to open attachment", err)
	}
	return rc, client.AttachmentName, nil
}

func normalizeMediaType(mediaType string) string {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mediaType))
	}
	return mt
}

// extensionFor keeps the uploaded file's extension so viewers can open the
// stored document, falling back to one derived from the media type.
func extensionFor(originalName, mediaType string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if extensionRx.MatchString(ext) {
		return ext
	}
	if ext, ok := preferredExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
