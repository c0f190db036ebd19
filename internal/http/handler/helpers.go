package handler

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/service"
)

// paramID parses a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// queryPage reads limit/offset query parameters with defaults.
func queryPage(c *fiber.Ctx, defaultLimit int) (limit, offset int) {
	limit = c.QueryInt("limit", defaultLimit)
	offset = c.QueryInt("offset", 0)
	return limit, offset
}

// uploadFromHeader opens a multipart file as a service upload. The
// returned closer must be called after the service consumed the reader.
func uploadFromHeader(field string, fh *multipart.FileHeader) (service.DocumentUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return service.DocumentUpload{}, nil, fiber.NewError(fiber.StatusBadRequest, "unreadable upload "+field)
	}
	return service.DocumentUpload{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Reader:      f,
	}, f, nil
}

// formFile returns the single multipart file under field, or a 400 when
// it is missing.
func formFile(c *fiber.Ctx, field string) (service.DocumentUpload, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return service.DocumentUpload{}, nil, fiber.NewError(fiber.StatusBadRequest, "missing file "+field)
	}
	return uploadFromHeader(field, fh)
}
