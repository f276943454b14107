package api

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// globalDownloadDir is where downloads are saved when no path is given.
// It is set by the root command from the home directory.
var globalDownloadDir = "."

// SetDownloadDir sets the default directory for saved downloads.
func SetDownloadDir(dir string) {
	if dir != "" {
		globalDownloadDir = dir
	}
}

// DownloadName returns the file name the server suggested in
// Content-Disposition, or fallback.
func DownloadName(h http.Header, fallback string) string {
	if _, params, err := mime.ParseMediaType(h.Get("Content-Disposition")); err == nil {
		if name := filepath.Base(params["filename"]); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return fallback
}

// SaveDownload writes data to out, or to the download directory under name
// when out is empty. It returns the path written.
func SaveDownload(data []byte, name, out string) (string, error) {
	path := out
	if path == "" {
		if err := os.MkdirAll(globalDownloadDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create download directory: %w", err)
		}
		path = filepath.Join(globalDownloadDir, filepath.Base(name))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
