// Package media stores user-supplied images (payment screenshots, avatars
// and QR codes) on an S3-compatible object store and hands back public URLs.
package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFileType = errors.New("only .jpg, .jpeg and .png images are allowed")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
)

// Folders used by the application.
const (
	FolderScreenshots = "screenshots"
	FolderAvatars     = "avatars"
	FolderQRCodes     = "qrcodes"
)

// File is an upload candidate. Size is the declared length of Body.
type File struct {
	Name string
	Size int64
	Body io.Reader
}

// Uploader stores a file under folder and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, f File) (string, error)
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Validate applies the image filter: allowed extension (case-insensitive)
// and size within maxBytes. A non-positive maxBytes disables the size check.
func Validate(f File, maxBytes int64) (ext, contentType string, err error) {
	ext = strings.ToLower(filepath.Ext(f.Name))
	contentType, ok := contentTypes[ext]
	if !ok {
		return "", "", ErrUnsupportedFileType
	}
	if maxBytes > 0 && f.Size > maxBytes {
		return "", "", ErrFileTooLarge
	}
	return ext, contentType, nil
}
