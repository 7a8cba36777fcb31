package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/dto"
)

type fakeUploader struct {
	uploaded []string
	failWith error
}

func (f *fakeUploader) Upload(_ context.Context, filePath string, _ bool) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.uploaded = append(f.uploaded, filePath)
	return "https://cdn.example.com/" + filepath.Base(filePath), nil
}

func newUploadApp(t *testing.T, uploader *fakeUploader) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				return c.Status(appErr.Code).JSON(dto.BaseResponse{Code: appErr.Code, Message: appErr.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.BaseResponse{Code: fiber.StatusInternalServerError, Message: err.Error()})
		},
	})
	handler := NewUploadHandler(uploader, t.TempDir())
	app.Post("/upload-files", handler.UploadFiles)
	return app
}

func multipartRequest(t *testing.T, filenames ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := writer.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("binary image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-files", &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestUploadFiles(t *testing.T) {
	uploader := &fakeUploader{}
	app := newUploadApp(t, uploader)

	resp, err := app.Test(multipartRequest(t, "a.png", "b.jpg"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Files uploaded", body.Message)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "https://cdn.example.com/a.png", body.Data[0])
	assert.Len(t, uploader.uploaded, 2)
}

func TestUploadRejectsNonImage(t *testing.T) {
	app := newUploadApp(t, &fakeUploader{})

	resp, err := app.Test(multipartRequest(t, "report.pdf"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.BaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Only image files are allowed", body.Message)
}

func TestUploadRejectsEmptyForm(t *testing.T) {
	app := newUploadApp(t, &fakeUploader{})

	resp, err := app.Test(multipartRequest(t))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	app := newUploadApp(t, &fakeUploader{})

	names := make([]string, maxUploadFiles+1)
	for i := range names {
		names[i] = "img" + string(rune('a'+i%26)) + ".png"
	}
	resp, err := app.Test(multipartRequest(t, names...))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.BaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "A maximum of 25 files are allowed", body.Message)
}

func TestUploadPropagatesStoreFailure(t *testing.T) {
	app := newUploadApp(t, &fakeUploader{failWith: os.ErrPermission})

	resp, err := app.Test(multipartRequest(t, "a.png"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
