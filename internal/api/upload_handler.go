// File path: internal/api/upload_handler.go
package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/legol-ai/legol/internal/common"
)

const maxUploadMemory = 32 << 20

type uploadedFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// handleUpload stores submitted documents under the upload root and returns
// their saved names. Only base filenames are honored; path components are
// stripped so uploads cannot escape the root.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		logger.Warn("api: upload form parse failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload form: %w", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}

	saved := make([]uploadedFile, 0, len(files))
	for _, fileHeader := range files {
		name := filepath.Base(strings.TrimSpace(fileHeader.Filename))
		if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid file name: %q", fileHeader.Filename))
			return
		}
		src, err := fileHeader.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("open upload %s: %w", name, err))
			return
		}
		dstPath := filepath.Join(s.uploadRoot, name)
		dst, err := os.Create(dstPath)
		if err != nil {
			src.Close()
			writeError(w, http.StatusInternalServerError, fmt.Errorf("create upload file: %w", err))
			return
		}
		size, err := io.Copy(dst, src)
		src.Close()
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Errorf("write upload %s: %w", name, err))
			return
		}
		saved = append(saved, uploadedFile{Filename: name, Size: size})
	}
	logger.Info("api: upload complete", "files", len(saved))
	writeJSON(w, http.StatusOK, map[string]interface{}{"files": saved})
}
