package handlers

import (
	"errors"
	"net/http"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/middleware/jwtcookie"
	"github.com/jotapp/jot/services/folders"
	"github.com/jotapp/jot/services/logging"
	"github.com/labstack/echo/v4"
)

type FoldersHandler struct {
	config *config.Config
	svc    *folders.Service
	logger *logging.Service
}

func NewFoldersHandler(cfg *config.Config, svc *folders.Service, logger *logging.Service) *FoldersHandler {
	return &FoldersHandler{config: cfg, svc: svc, logger: logger}
}

// List handles GET /api/folders.
func (h *FoldersHandler) List(c echo.Context) error {
	result, err := h.svc.List(jwtcookie.GetUserID(c))
	if err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to fetch folders")
	}

	return c.JSON(http.StatusOK, echo.Map{"folders": result})
}

type createFolderRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Create handles POST /api/folders.
func (h *FoldersHandler) Create(c echo.Context) error {
	var req createFolderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	folder, err := h.svc.Create(jwtcookie.GetUserID(c), req.Name, req.Color)
	if err != nil {
		if errors.Is(err, folders.ErrNameRequired) {
			return errorJSON(c, http.StatusBadRequest, "Folder name is required")
		}
		return internalError(c, h.config, h.logger, err, "Failed to create folder")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Folder created successfully",
		"folder":  folder,
	})
}

type updateFolderRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// Update handles PUT /api/folders/:id.
func (h *FoldersHandler) Update(c echo.Context) error {
	folderID, err := parseID(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid folder ID")
	}

	var req updateFolderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	folder, err := h.svc.Update(jwtcookie.GetUserID(c), folderID, folders.UpdateInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return h.folderError(c, err, "Failed to update folder")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Folder updated successfully",
		"folder":  folder,
	})
}

// Delete handles DELETE /api/folders/:id.
func (h *FoldersHandler) Delete(c echo.Context) error {
	folderID, err := parseID(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid folder ID")
	}

	if err := h.svc.Delete(jwtcookie.GetUserID(c), folderID); err != nil {
		return h.folderError(c, err, "Failed to delete folder")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Folder deleted successfully, notes moved to General"})
}

func (h *FoldersHandler) folderError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, folders.ErrNameRequired):
		return errorJSON(c, http.StatusBadRequest, "Folder name is required")
	case errors.Is(err, folders.ErrFolderNotFound):
		return errorJSON(c, http.StatusNotFound, "Folder not found")
	case errors.Is(err, folders.ErrNotOwner):
		return errorJSON(c, http.StatusForbidden, "Forbidden: You do not own this folder")
	default:
		return internalError(c, h.config, h.logger, err, fallback)
	}
}
