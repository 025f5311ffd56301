// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// maxUploadSize is the maximum allowed image upload size (10 MB).
	maxUploadSize = 10 << 20
)

// allowedImageTypes defines MIME types accepted for logo and product images.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// errNoFile is returned by readImageUpload when the form field is absent,
// which is not an error for optional uploads.
var errNoFile = errors.New("no file provided")

// keyUnsafe matches filename characters that don't survive as S3 keys.
var keyUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// imageUpload holds a validated multipart image ready for storage.
type imageUpload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// readImageUpload extracts and validates an image file from a parsed
// multipart form. Content type is detected by sniffing the first 512
// bytes, never trusted from the request.
func readImageUpload(r *http.Request, field string) (*imageUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, errNoFile
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return nil, fmt.Errorf("file too large, maximum size is 10 MB")
	}

	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read file: %w", err)
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or text/plain for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("file type %q is not allowed", contentType)
	}

	// Seek back to start after sniffing.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek file: %w", err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return &imageUpload{
		Data:        data,
		ContentType: contentType,
		Filename:    sanitizeFilename(header.Filename),
	}, nil
}

// sanitizeFilename strips any path component and replaces characters that
// would be awkward in an object key.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = keyUnsafe.ReplaceAllString(name, "-")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
