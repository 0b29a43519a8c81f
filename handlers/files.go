package handlers

import (
	"errors"
	"net/http"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/middleware/jwtcookie"
	"github.com/jotapp/jot/services/files"
	"github.com/jotapp/jot/services/logging"
	"github.com/labstack/echo/v4"
)

type FilesHandler struct {
	config *config.Config
	svc    *files.Service
	logger *logging.Service
}

func NewFilesHandler(cfg *config.Config, svc *files.Service, logger *logging.Service) *FilesHandler {
	return &FilesHandler{config: cfg, svc: svc, logger: logger}
}

// List handles GET /api/files?folder=&type=.
func (h *FilesHandler) List(c echo.Context) error {
	result, err := h.svc.List(jwtcookie.GetUserID(c), files.ListOptions{
		Folder: c.QueryParam("folder"),
		Type:   c.QueryParam("type"),
	})
	if err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to fetch files")
	}

	return c.JSON(http.StatusOK, echo.Map{"files": result})
}

// Upload handles POST /api/files with a multipart "file" field.
func (h *FilesHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "File is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to read upload")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := h.svc.Upload(c.Request().Context(), jwtcookie.GetUserID(c),
		fileHeader.Filename, contentType, fileHeader.Size, src)
	if err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to upload file")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "File uploaded successfully",
		"file":    file,
	})
}

type moveFileRequest struct {
	FileID uint   `json:"fileId"`
	Folder string `json:"folder"`
}

// Move handles PATCH /api/files, reassigning a file to another folder.
func (h *FilesHandler) Move(c echo.Context) error {
	var req moveFileRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "File ID and folder are required")
	}
	if req.FileID == 0 || req.Folder == "" {
		return errorJSON(c, http.StatusBadRequest, "File ID and folder are required")
	}

	file, err := h.svc.Move(jwtcookie.GetUserID(c), req.FileID, req.Folder)
	if err != nil {
		if errors.Is(err, files.ErrFileNotFound) {
			return errorJSON(c, http.StatusNotFound, "File not found")
		}
		return internalError(c, h.config, h.logger, err, "Failed to update file")
	}

	return c.JSON(http.StatusOK, echo.Map{"file": file})
}

// Get handles GET /api/files/:id.
func (h *FilesHandler) Get(c echo.Context) error {
	fileID, err := parseID(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid file ID")
	}

	file, err := h.svc.Get(jwtcookie.GetUserID(c), fileID)
	if err != nil {
		if errors.Is(err, files.ErrFileNotFound) {
			return errorJSON(c, http.StatusNotFound, "File not found")
		}
		return internalError(c, h.config, h.logger, err, "Failed to fetch file")
	}

	return c.JSON(http.StatusOK, echo.Map{"file": file})
}

// Delete handles DELETE /api/files/:id.
func (h *FilesHandler) Delete(c echo.Context) error {
	fileID, err := parseID(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid file ID")
	}

	if err := h.svc.Delete(c.Request().Context(), jwtcookie.GetUserID(c), fileID); err != nil {
		if errors.Is(err, files.ErrFileNotFound) {
			return errorJSON(c, http.StatusNotFound, "File not found")
		}
		return internalError(c, h.config, h.logger, err, "Failed to delete file")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
