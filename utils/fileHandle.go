package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"lms/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// UploadFile pushes an uploaded file to the external media host and returns
// the stable URL it reports. When no media host is configured the file is
// saved under the local upload directory instead. Upload failures are not
// retried; the caller surfaces them to the user.
func UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	if config.AppConfig.MediaApiURL == "" {
		return saveLocalFile(file, folder)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	client := resty.New()
	resp, err := client.R().
		SetAuthToken(config.AppConfig.MediaApiKey).
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"folder": folder,
		}).
		SetResult(&struct {
			URL string `json:"url"`
		}{}).
		Post(config.AppConfig.MediaApiURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("media upload failed: %s", resp.Status())
	}

	result := resp.Result().(*struct {
		URL string `json:"url"`
	})
	if result.URL == "" {
		return "", fmt.Errorf("media host returned no URL")
	}
	return result.URL, nil
}

// saveLocalFile stores the upload on disk with a unique name and returns the
// path it will be served from.
func saveLocalFile(file *multipart.FileHeader, folder string) (string, error) {
	destDir := filepath.Join(config.AppConfig.UploadDir, folder)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + folder + "/" + newFilename, nil
}
