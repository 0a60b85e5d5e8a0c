package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// AllowedUploadTypes defines the allowed file extensions
var AllowedUploadTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
}

// imageExtensions are the types run through the optimizer
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

const (
	maxUploadSize = 10 * 1024 * 1024 // 10MB
	maxImageWidth = 1600
	jpegQuality   = 80
)

// ValidateUploadFile checks size and extension of an uploaded file
func ValidateUploadFile(file *multipart.FileHeader) error {
	if file.Size > maxUploadSize {
		return NewValidationError("File size exceeds 10MB limit", "file")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedUploadTypes[ext] {
		return NewValidationError("Invalid file type. Allowed types: jpg, jpeg, png, gif, pdf", "file")
	}

	return nil
}

// SaveUploadedFile stores an uploaded file under baseDir/subDir with a
// generated name and returns the stored path. Images are resized to at
// most maxImageWidth and re-encoded as JPEG at fixed quality, which
// also strips any embedded metadata. Other types are copied verbatim.
func SaveUploadedFile(file *multipart.FileHeader, baseDir, subDir string) (string, error) {
	if err := ValidateUploadFile(file); err != nil {
		return "", err
	}

	dir := filepath.Join(baseDir, strings.ToLower(subDir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", NewStorageError("Failed to create upload directory", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", NewStorageError("Failed to open uploaded file", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if imageExtensions[ext] {
		img, err := imaging.Decode(src, imaging.AutoOrientation(true))
		if err != nil {
			return "", NewStorageError("Failed to decode image", err)
		}
		if img.Bounds().Dx() > maxImageWidth {
			img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
		}

		path := filepath.Join(dir, uuid.New().String()+".jpg")
		if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
			return "", NewStorageError("Failed to save image", err)
		}
		return path, nil
	}

	path := filepath.Join(dir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", NewStorageError("Failed to create destination file", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		os.Remove(path)
		return "", NewStorageError("Failed to save file", err)
	}

	return path, nil
}

// DeleteFile deletes a file from the filesystem
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}
