package imaging

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// mimeByExt covers the extensions the upload layer admits.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// DataURL builds a data: URL for the given base64 payload and mime type.
func DataURL(mimeType, b64 string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, b64)
}

// FileDataURL reads a file verbatim and returns it as a data: URL. It is the
// fallback when Normalize cannot decode the file.
func FileDataURL(path string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := mimeByExt[ext]
	if !ok {
		mimeType = "application/octet-stream"
	}
	return DataURL(mimeType, base64.StdEncoding.EncodeToString(raw)), mimeType, nil
}
