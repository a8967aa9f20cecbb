package upload_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ErkinN/go-crm/internal/upload"
)

// fileHeaderFor builds a real *multipart.FileHeader the same way Gin would
// hand one to the handler.
func fileHeaderFor(t *testing.T, fileName, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, fileName))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/add", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, fh, err := req.FormFile("resume")
	assert.NoError(t, err)
	return fh
}

func TestSave(t *testing.T) {
	t.Run("Stores a PDF under a unique prefixed name", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte("%PDF-1.4 test")
		fh := fileHeaderFor(t, "resume.pdf", "application/pdf", content)

		stored, err := upload.Save(fh, dir)
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(stored, "-resume.pdf"), "stored name %q should keep the original name", stored)
		assert.NotEqual(t, "resume.pdf", stored)

		written, err := os.ReadFile(filepath.Join(dir, stored))
		assert.NoError(t, err)
		assert.Equal(t, content, written)
	})

	t.Run("Two uploads of the same file do not collide", func(t *testing.T) {
		dir := t.TempDir()
		first, err := upload.Save(fileHeaderFor(t, "resume.pdf", "application/pdf", []byte("a")), dir)
		assert.NoError(t, err)
		second, err := upload.Save(fileHeaderFor(t, "resume.pdf", "application/pdf", []byte("b")), dir)
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("Rejects non-PDF uploads", func(t *testing.T) {
		dir := t.TempDir()
		fh := fileHeaderFor(t, "resume.txt", "text/plain", []byte("plain text"))

		_, err := upload.Save(fh, dir)
		assert.ErrorIs(t, err, upload.ErrInvalidFileType)

		entries, err := os.ReadDir(dir)
		assert.NoError(t, err)
		assert.Empty(t, entries, "nothing should be written for a rejected upload")
	})

	t.Run("Strips directory components from the client filename", func(t *testing.T) {
		dir := t.TempDir()
		fh := fileHeaderFor(t, "../../etc/resume.pdf", "application/pdf", []byte("x"))

		stored, err := upload.Save(fh, dir)
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(stored, "-resume.pdf"))
		assert.NotContains(t, stored, "/")
	})
}
