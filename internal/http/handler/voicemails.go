package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"couplesite/internal/service"
)

// ListVoiceMails returns all voice mails, newest first, with playback URLs.
func ListVoiceMails(vmSvc service.VoiceMailService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := vmSvc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// UploadVoiceMail ingests a multipart upload carrying exactly one file part
// named "audio".
func UploadVoiceMail(vmSvc service.VoiceMailService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "AUDIO_REQUIRED", "audio file is required")
		}
		files := form.File["audio"]
		if len(files) != 1 {
			return writeError(c, fiber.StatusBadRequest, "AUDIO_REQUIRED", "exactly one audio file is required")
		}
		fh := files[0]

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")

		vm, err := vmSvc.Ingest(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotAudio):
				return writeError(c, fiber.StatusBadRequest, "NOT_AUDIO", "only audio files are allowed")
			case errors.Is(err, service.ErrTooLarge):
				return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the upload limit")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(vm)
	}
}

// DeleteVoiceMail removes a voice mail and its stored audio by id.
func DeleteVoiceMail(vmSvc service.VoiceMailService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := vmSvc.Delete(c.UserContext(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "voice mail not found")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(fiber.Map{"message": "Voice mail deleted successfully"})
	}
}
