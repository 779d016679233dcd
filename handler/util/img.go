package handler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	e "github.com/julianlk522/stylize/error"
)

const STAGED_FILE_PERM os.FileMode = 0600

// Returned when staged bytes can't be forwarded as a binary payload
type IntegrityError struct {
	Path   string
	Reason string
}

func (ie *IntegrityError) Error() string {
	return fmt.Sprintf("staged image %s failed integrity check: %s", ie.Path, ie.Reason)
}

type StagedImg struct {
	Path string
	Size int64
}

// Safe to call more than once
func (s *StagedImg) Release() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func EnsureStagingDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// Copies src into a uniquely named file under dir.
// Caller must Release the returned StagedImg.
func StageUpload(src io.Reader, dir string, file_name string) (*StagedImg, error) {
	path := filepath.Join(dir, uuid.New().String()+SanitizedExt(file_name))

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, STAGED_FILE_PERM)
	if err != nil {
		return nil, err
	}

	staged := &StagedImg{Path: path}
	size, err := io.Copy(dst, src)
	if close_err := dst.Close(); err == nil {
		err = close_err
	}
	if err != nil {
		staged.Release()
		return nil, err
	}

	staged.Size = size
	return staged, nil
}

// Extensions come from the client so keep only short alphanumeric ones
func SanitizedExt(file_name string) string {
	ext := strings.ToLower(filepath.Ext(file_name))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}

// declared_size <= 0 skips the length check
func ReadStagedImg(staged *StagedImg, declared_size int64) ([]byte, error) {
	img_bytes, err := os.ReadFile(staged.Path)
	if err != nil {
		return nil, errors.Join(e.ErrCouldNotReadImg, err)
	}

	if len(img_bytes) == 0 {
		return nil, &IntegrityError{Path: staged.Path, Reason: "empty payload"}
	}
	if declared_size > 0 && int64(len(img_bytes)) != declared_size {
		return nil, &IntegrityError{
			Path:   staged.Path,
			Reason: fmt.Sprintf("read %d bytes, expected %d", len(img_bytes), declared_size),
		}
	}

	return img_bytes, nil
}

// Labels the payload from its header; pixels are never decoded.
// Unknown content falls back to application/octet-stream.
func DetectMIMEType(img_bytes []byte) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(img_bytes)); err == nil {
		return "image/" + format
	}
	return http.DetectContentType(img_bytes)
}
