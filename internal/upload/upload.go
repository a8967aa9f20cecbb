package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidFileType is returned for any upload that is not a PDF.
var ErrInvalidFileType = errors.New("file is not of the correct type")

const acceptedMimeType = "application/pdf"

// Save validates and stores an uploaded resume, returning the stored
// filename. Files are written as "<uuid>-<original name>" so repeated
// uploads of the same file never collide.
func Save(file *multipart.FileHeader, dir string) (string, error) {

	if file.Header.Get("Content-Type") != acceptedMimeType {
		return "", ErrInvalidFileType
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	storedName := fmt.Sprintf("%s-%s", uuid.NewString(), sanitizeName(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}

	return storedName, nil
}

// sanitizeName drops any client-supplied directory components.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" || base == "" {
		return "resume.pdf"
	}
	return base
}
