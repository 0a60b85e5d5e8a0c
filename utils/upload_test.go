package utils

import (
	"bytes"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartFile builds a *multipart.FileHeader the way gin would hand
// it to a handler
func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["files"]
	require.Len(t, files, 1)
	return files[0]
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestValidateUploadFile(t *testing.T) {
	ok := multipartFile(t, "photo.JPG", jpegBytes(t, 10, 10))
	assert.NoError(t, ValidateUploadFile(ok))

	bad := multipartFile(t, "malware.exe", []byte("MZ"))
	err := ValidateUploadFile(bad)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestValidateUploadFile_TooLarge(t *testing.T) {
	file := multipartFile(t, "big.pdf", []byte("%PDF-"))
	file.Size = maxUploadSize + 1

	err := ValidateUploadFile(file)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestSaveUploadedFile_ImageReencoded(t *testing.T) {
	dir := t.TempDir()
	file := multipartFile(t, "photo.png", func() []byte {
		img := image.NewRGBA(image.Rect(0, 0, 20, 20))
		var buf bytes.Buffer
		require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
		return buf.Bytes()
	}())

	path, err := SaveUploadedFile(file, dir, "TOOL")
	require.NoError(t, err)

	// Everything image-like comes out as a .jpg under the lowercased
	// entity subdirectory
	assert.Equal(t, ".jpg", filepath.Ext(path))
	assert.Equal(t, filepath.Join(dir, "tool"), filepath.Dir(path))

	_, err = imaging.Open(path)
	assert.NoError(t, err)
}

func TestSaveUploadedFile_OversizedImageResized(t *testing.T) {
	dir := t.TempDir()
	file := multipartFile(t, "wide.jpg", jpegBytes(t, maxImageWidth+400, 10))

	path, err := SaveUploadedFile(file, dir, "TOOL")
	require.NoError(t, err)

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, img.Bounds().Dx())
}

func TestSaveUploadedFile_PDFCopiedVerbatim(t *testing.T) {
	dir := t.TempDir()
	content := []byte("%PDF-1.4 fake document")
	file := multipartFile(t, "manual.pdf", content)

	path, err := SaveUploadedFile(file, dir, "TOOL")
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(path))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestDeleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.NoError(t, DeleteFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, DeleteFile(path))
}
