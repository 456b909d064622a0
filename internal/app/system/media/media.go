// Package media stores uploaded images on local disk and hands back the URL
// path they are served under. Payment proofs and complaint photos go through
// here; nothing else is accepted.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxBytes caps a single uploaded image.
const DefaultMaxBytes = 5 << 20 // 5 MiB

var (
	ErrNotImage = errors.New("media: file is not a supported image")
	ErrTooLarge = errors.New("media: file exceeds size limit")
)

// Sniffed content type -> stored extension. Extensions come from the sniff,
// never from the client-supplied filename.
var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store writes images under Dir and returns URLs under URLPrefix.
type Store struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
}

// New creates the upload directory if needed.
func New(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create dir %s: %w", dir, err)
	}
	return &Store{
		Dir:       dir,
		URLPrefix: strings.TrimRight(urlPrefix, "/"),
		MaxBytes:  DefaultMaxBytes,
	}, nil
}

// SaveImage validates and stores one uploaded file, returning its URL path.
func (s *Store) SaveImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, fh.Size)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("media: open upload: %w", err)
	}
	defer f.Close()

	// Sniff the real content type; the Content-Type header and the file
	// extension are both client-controlled.
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("media: read upload: %w", err)
	}
	ctype := http.DetectContentType(head[:n])
	ext, ok := imageExt[ctype]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotImage, ctype)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("media: rewind upload: %w", err)
	}

	name := uuid.NewString() + ext
	dstPath := filepath.Join(s.Dir, name)
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("media: create %s: %w", dstPath, err)
	}
	defer dst.Close()

	// The size header is advisory; enforce the cap on the actual bytes too.
	written, err := io.Copy(dst, io.LimitReader(f, s.MaxBytes+1))
	if err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("media: write %s: %w", dstPath, err)
	}
	if written > s.MaxBytes {
		os.Remove(dstPath)
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, written)
	}

	return path.Join(s.URLPrefix, name), nil
}

// Handler serves stored images. Mounted under URLPrefix by the router.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.URLPrefix+"/", http.FileServer(http.Dir(s.Dir)))
}
