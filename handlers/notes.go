package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/middleware/jwtcookie"
	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/notes"
	"github.com/labstack/echo/v4"
)

type NotesHandler struct {
	config *config.Config
	svc    *notes.Service
	logger *logging.Service
}

func NewNotesHandler(cfg *config.Config, svc *notes.Service, logger *logging.Service) *NotesHandler {
	return &NotesHandler{config: cfg, svc: svc, logger: logger}
}

// List handles GET /api/notes?folder=&search=.
func (h *NotesHandler) List(c echo.Context) error {
	result, err := h.svc.List(jwtcookie.GetUserID(c), notes.ListOptions{
		Folder: c.QueryParam("folder"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to fetch notes")
	}

	return c.JSON(http.StatusOK, echo.Map{"notes": result})
}

type createNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Folder  string   `json:"folder"`
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	note, err := h.svc.Create(jwtcookie.GetUserID(c), notes.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Folder:  req.Folder,
	})
	if err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to create note")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Note created successfully",
		"note":    note,
	})
}

// Get handles GET /api/notes/:id.
func (h *NotesHandler) Get(c echo.Context) error {
	noteID, err := parseID(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid note ID")
	}

	note, err := h.svc.Get(jwtcookie.GetUserID(c), noteID)
	if err != nil {
		return h.noteError(c, err, "Failed to fetch note")
	}

	return c.JSON(http.StatusOK, echo.Map{"note": note})
}

type updateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Folder   *string   `json:"folder"`
	IsPinned *bool     `json:"isPinned"`
}

// Update handles PUT /api/notes/:id.
func (h *NotesHandler) Update(c echo.Context) error {
	noteID, err := parseID(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid note ID")
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	note, err := h.svc.Update(jwtcookie.GetUserID(c), noteID, notes.UpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Folder:   req.Folder,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		return h.noteError(c, err, "Failed to update note")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Note updated successfully",
		"note":    note,
	})
}

// Delete handles DELETE /api/notes/:id.
func (h *NotesHandler) Delete(c echo.Context) error {
	noteID, err := parseID(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid note ID")
	}

	if err := h.svc.Delete(jwtcookie.GetUserID(c), noteID); err != nil {
		return h.noteError(c, err, "Failed to delete note")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted successfully"})
}

func (h *NotesHandler) noteError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, notes.ErrNoteNotFound):
		return errorJSON(c, http.StatusNotFound, "Note not found")
	case errors.Is(err, notes.ErrNotOwner):
		return errorJSON(c, http.StatusForbidden, "Forbidden: You do not own this note")
	default:
		return internalError(c, h.config, h.logger, err, fallback)
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
