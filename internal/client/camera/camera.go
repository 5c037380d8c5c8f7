// Package camera captures still images for a post.
package camera

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/dmitrijs2005/world/internal/filex"
)

var (
	// ErrCancelled means the user dismissed the capture without an image.
	ErrCancelled = errors.New("capture cancelled")
	ErrNotImage  = errors.New("file is not a supported image")
)

// Camera produces one image per Capture call.
type Camera interface {
	Capture(ctx context.Context) (image.Image, error)
}

// FileCamera asks for the path of an existing image file and decodes it.
// Empty input cancels the capture.
type FileCamera struct {
	in  *bufio.Reader
	out io.Writer
}

func NewFileCamera(in io.Reader, out io.Writer) *FileCamera {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &FileCamera{in: br, out: out}
}

func (c *FileCamera) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintln(c.out, "Image file (empty to cancel):")
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read path: %w", err)
	}

	path := strings.TrimSpace(line)
	if path == "" {
		return nil, ErrCancelled
	}

	if expanded, err := filex.ExpandHome(path); err == nil {
		path = expanded
	}
	return Decode(path)
}

// Decode reads a jpeg, png or webp image from path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotImage)
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
