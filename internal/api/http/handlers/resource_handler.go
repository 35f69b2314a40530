package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookseller-api/internal/api/dto"
	"github.com/spec-kit/bookseller-api/internal/service"
	"github.com/spec-kit/bookseller-api/internal/validation"
	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

// FieldsRequest is a request body that yields the entity's writable columns.
type FieldsRequest[F any] interface {
	Fields() F
}

// ResourceHandler serves list/create/update/delete for one entity. C and U
// are the create and update payloads, T the stored record and F its fields.
type ResourceHandler[C FieldsRequest[F], U FieldsRequest[F], T any, F any] struct {
	svc       *service.ResourceService[T, F]
	validator *validation.Validator
	present   func(T) any
}

// NewResourceHandler builds a handler. present renders one record for GET.
func NewResourceHandler[C FieldsRequest[F], U FieldsRequest[F], T any, F any](
	svc *service.ResourceService[T, F],
	validator *validation.Validator,
	present func(T) any,
) *ResourceHandler[C, U, T, F] {
	return &ResourceHandler[C, U, T, F]{svc: svc, validator: validator, present: present}
}

// List handles GET /<collection>.
func (h *ResourceHandler[C, U, T, F]) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, h.present(item))
	}
	return c.JSON(out)
}

// Create handles POST /<collection>.
func (h *ResourceHandler[C, U, T, F]) Create(c *fiber.Ctx) error {
	var req C
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(validation.Create, req); err != nil {
		return err
	}

	id, err := h.svc.Create(c.UserContext(), req.Fields())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CreatedResponse{
		Message: h.svc.SuccessMessage("added"),
		ID:      id,
	})
}

// Update handles PUT /<collection>/:id.
func (h *ResourceHandler[C, U, T, F]) Update(c *fiber.Ctx) error {
	id, err := h.pathID(c)
	if err != nil {
		return err
	}
	var req U
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(validation.Update, req); err != nil {
		return err
	}

	if err := h.svc.Update(c.UserContext(), id, req.Fields()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: h.svc.SuccessMessage("updated")})
}

// Delete handles DELETE /<collection>/:id.
func (h *ResourceHandler[C, U, T, F]) Delete(c *fiber.Ctx) error {
	id, err := h.pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: h.svc.SuccessMessage("deleted")})
}

// pathID parses :id. Anything that is not a positive integer cannot name a
// row, so it is reported as not found.
func (h *ResourceHandler[C, U, T, F]) pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(h.svc.NotFoundMessage())
	}
	return id, nil
}

// bindBody decodes a JSON body into out. An empty body leaves every field
// absent.
func bindBody(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}
