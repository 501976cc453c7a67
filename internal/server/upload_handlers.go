package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// allowedUploadExts is the extension allowlist for rich-text image uploads.
var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedUploadMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func uploadFail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"uploaded": 0,
		"error":    fiber.Map{"message": message},
	})
}

// Upload handles POST /upload, the rich-text editor's image uploader. The
// response JSON follows the editor's upload contract.
func (s *Server) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("upload")
	if err != nil {
		return uploadFail(c, "No file uploaded.")
	}

	name := filepath.Base(fileHeader.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedUploadExts[ext] {
		return uploadFail(c, "Only photos!")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return uploadFail(c, "Could not read the uploaded file.")
	}
	defer src.Close()

	// Sniff the content as well; the extension alone is attacker-controlled.
	head := make([]byte, 512)
	n, _ := src.Read(head)
	if !allowedUploadMIMEs[http.DetectContentType(head[:n])] {
		return uploadFail(c, "Only photos!")
	}
	if _, err := src.Seek(0, 0); err != nil {
		return uploadFail(c, "Could not read the uploaded file.")
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return uploadFail(c, "Could not store the uploaded file.")
	}

	dest := filepath.Join(s.config.UploadDir, name)
	if _, err := os.Stat(dest); err == nil {
		// Keep the existing file; disambiguate the new one.
		name = uuid.New().String()[:8] + "-" + name
		dest = filepath.Join(s.config.UploadDir, name)
	}

	if err := c.SaveFile(fileHeader, dest); err != nil {
		return uploadFail(c, "Could not store the uploaded file.")
	}

	return c.JSON(fiber.Map{
		"uploaded": 1,
		"fileName": name,
		"url":      "/file/" + name,
	})
}

// ServeUpload handles GET /file/:filename, serving previously uploaded images.
func (s *Server) ServeUpload(c *fiber.Ctx) error {
	name := filepath.Base(c.Params("filename"))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return s.renderNotFound(c)
	}

	path := filepath.Join(s.config.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		return s.renderNotFound(c)
	}
	return c.SendFile(path)
}
