package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"couplesite/internal/service"
)

// createNoteRequest is the POST /api/notes body.
type createNoteRequest struct {
	Content string `json:"content"`
}

// ListNotes returns all notes, newest first.
func ListNotes(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := noteSvc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(notes)
	}
}

// CreateNote stores a new note from a JSON body.
func CreateNote(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		note, err := noteSvc.Create(c.UserContext(), req.Content)
		if err != nil {
			if errors.Is(err, service.ErrContentRequired) {
				return writeError(c, fiber.StatusBadRequest, "CONTENT_REQUIRED", "content is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(note)
	}
}

// DeleteNote removes a note by id.
func DeleteNote(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := noteSvc.Delete(c.UserContext(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "note not found")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(fiber.Map{"message": "Note deleted successfully"})
	}
}
