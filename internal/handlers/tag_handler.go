package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wallaclone/internal/services"
)

// TagHandler handles HTTP requests for advert tags.
type TagHandler struct {
	tagService *services.TagService
	validate   *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the tag routes with the Fiber app.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleList)
	tagRoutes.Post("/", h.HandleCreate)
}

// HandleList returns every known tag value, sorted.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	tags, err := h.tagService.GetAll()
	if err != nil {
		return fail(c, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"results": tags,
	})
}

// CreateTagRequest represents the request body registering a tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

// HandleCreate registers a new curated tag value.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	tag, err := h.tagService.Add(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  tag,
	})
}
