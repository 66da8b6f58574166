package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/models"
	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

const (
	imageField         = "image"
	msgNoImage         = "No image file provided"
	msgNoFileSelected  = "No file selected"
	msgInvalidFileType = "Invalid file type. Please upload a PNG, JPG, JPEG, or WebP image."
)

// receiveUpload validates the multipart "image" field and stores it under a
// per-request unique name in uploadDir. When it returns false an error
// response has already been written and nothing is left on disk.
func receiveUpload(c *gin.Context, uploadDir string, maxBytes int64) (*models.UploadedImage, bool) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		switch {
		case isBodyTooLarge(err):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": utils.FileTooLargeMessage(maxBytes)})
		case hasEmptyImageField(c):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFileSelected})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoImage})
		}
		return nil, false
	}

	if fh.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFileSelected})
		return nil, false
	}
	if !utils.AllowedFile(fh.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidFileType})
		return nil, false
	}

	path := filepath.Join(uploadDir, utils.TempUploadName(fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		_ = os.Remove(path)
		processingError(c, fmt.Errorf("failed to save upload: %w", err))
		return nil, false
	}

	return &models.UploadedImage{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Path:        path,
	}, true
}

// hasEmptyImageField is true when the form had an "image" part that carried
// no file, which is what browsers send for an empty file input.
func hasEmptyImageField(c *gin.Context) bool {
	form := c.Request.MultipartForm
	return form != nil && len(form.Value[imageField]) > 0
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// removeTemp deletes a request's temp file. Failing to delete must never
// fail the request, so the error is only logged.
func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.Log().Debugw("could not remove temp file", "path", path, "error", err)
	}
}

func processingError(c *gin.Context, err error) {
	utils.Log().Errorw("error processing image", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Error processing image: " + err.Error(),
		"details": err.Error(),
	})
}
