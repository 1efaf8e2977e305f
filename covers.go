package blogdesk

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxCoverWidth = 1200
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// Cover is an uploaded cover image stored under <static>/uploads.
type Cover struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// processCover decodes an image from src, downsizes it to maxCoverWidth if
// wider, and encodes it as JPEG.
func processCover(src io.Reader, originalName string) (Cover, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Cover{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxCoverWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Cover{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	base := slugifyFilename(originalName)
	if base == "" {
		base = "cover"
	}
	return Cover{
		Filename: base + ".jpg",
		Width:    w,
		Height:   h,
		Size:     int64(buf.Len()),
	}, buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	return Slugify(strings.TrimSuffix(name, ext))
}

func (a *App) uploadsDir() string {
	return filepath.Join(a.staticDir, uploadsSubdir)
}

func coverURL(filename string) string {
	return "/public/" + uploadsSubdir + "/" + filename
}

// uniqueFilename appends a counter if filename already exists in dir.
func uniqueFilename(dir, filename string) string {
	base := strings.TrimSuffix(filename, ".jpg")
	candidate := filename
	for counter := 2; ; counter++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
}

// validCoverName rejects anything that is not a plain .jpg file name.
func validCoverName(name string) bool {
	return name != "" && filepath.Base(name) == name && !strings.HasPrefix(name, ".") &&
		strings.HasSuffix(name, ".jpg")
}

// listCovers reads the uploads directory, newest first. A missing directory
// means no covers.
func (a *App) listCovers() ([]Cover, error) {
	entries, err := os.ReadDir(a.uploadsDir())
	if os.IsNotExist(err) {
		return []Cover{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blogdesk: list covers: %w", err)
	}
	covers := make([]Cover, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !validCoverName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		cover := Cover{
			Filename:   e.Name(),
			URL:        coverURL(e.Name()),
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC(),
		}
		if f, err := os.Open(filepath.Join(a.uploadsDir(), e.Name())); err == nil {
			if cfg, _, err := image.DecodeConfig(f); err == nil {
				cover.Width, cover.Height = cfg.Width, cfg.Height
			}
			f.Close()
		}
		covers = append(covers, cover)
	}
	sort.SliceStable(covers, func(i, j int) bool {
		return covers[i].UploadedAt.After(covers[j].UploadedAt)
	})
	return covers, nil
}

func (a *App) handleCoverUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return invalid("image", "no image file provided")
	}
	if file.Size > maxUploadSize {
		return invalid("image", "file too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	cover, data, err := processCover(io.LimitReader(src, maxUploadSize), file.Filename)
	if err != nil {
		return invalid("image", err.Error())
	}

	dir := a.uploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("blogdesk: create uploads dir: %w", err)
	}
	cover.Filename = uniqueFilename(dir, cover.Filename)
	cover.URL = coverURL(cover.Filename)
	cover.UploadedAt = a.now().UTC()

	if err := os.WriteFile(filepath.Join(dir, cover.Filename), data, 0o644); err != nil {
		return fmt.Errorf("blogdesk: write cover: %w", err)
	}
	c.Logger().Infof("stored cover %s (%dx%d, %d bytes)", cover.Filename, cover.Width, cover.Height, cover.Size)
	return c.JSON(http.StatusCreated, cover)
}

func (a *App) handleCoverList(c echo.Context) error {
	covers, err := a.listCovers()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, covers)
}

// handleCoverDelete removes a cover. Removing a missing file is not an error.
func (a *App) handleCoverDelete(c echo.Context) error {
	name := c.Param("filename")
	if !validCoverName(name) {
		return invalid("filename", "must be a .jpg file name")
	}
	if err := os.Remove(filepath.Join(a.uploadsDir(), name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blogdesk: delete cover: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}
