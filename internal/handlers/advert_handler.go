package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/middleware"
	"wallaclone/internal/models"
	"wallaclone/internal/services"
)

// AdvertHandler handles HTTP requests for classified adverts and favorites.
type AdvertHandler struct {
	advertService *services.AdvertService
	favService    *services.FavService
	validate      *validator.Validate
	uploadDir     string
}

// NewAdvertHandler creates a new AdvertHandler.
func NewAdvertHandler(advertService *services.AdvertService, favService *services.FavService, uploadDir string) *AdvertHandler {
	return &AdvertHandler{
		advertService: advertService,
		favService:    favService,
		validate:      validator.New(),
		uploadDir:     uploadDir,
	}
}

// RegisterRoutes registers the advert routes with the Fiber app.
func (h *AdvertHandler) RegisterRoutes(router fiber.Router, auth, owner fiber.Handler) {
	advertRoutes := router.Group("/adverts")
	advertRoutes.Get("/", h.HandleList)
	advertRoutes.Post("/", auth, h.HandleCreate)
	advertRoutes.Post("/set-favs/:userId", auth, owner, h.HandleSetFavs)
	advertRoutes.Put("/set-reserved-or-sold/:id/:userId", auth, owner, h.HandleSetReservedOrSold)
	advertRoutes.Get("/member/:memberId", h.HandleListByMember)
	advertRoutes.Get("/:id", h.HandleGet)
	advertRoutes.Put("/:id/:userId", auth, owner, h.HandleUpdate)
	advertRoutes.Delete("/:id/:userId", auth, owner, h.HandleDelete)
}

// HandleList is the public advert search. Sold adverts are hidden here.
func (h *AdvertHandler) HandleList(c *fiber.Ctx) error {
	filter := services.ParseAdvertQuery(c.Queries(), true)
	adverts, total, err := h.advertService.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"results":      adverts,
		"totalAdverts": total,
	})
}

// HandleGet returns a single advert.
func (h *AdvertHandler) HandleGet(c *fiber.Ctx) error {
	advert, err := h.advertService.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  advert,
	})
}

// HandleListByMember lists a member's own adverts, or their favorites when
// the favs query flag is set.
func (h *AdvertHandler) HandleListByMember(c *fiber.Ctx) error {
	memberID := c.Params("memberId")
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, _ := strconv.Atoi(c.Query("page"))
	skip := 0
	if page > 1 && limit > 0 {
		skip = limit * (page - 1)
	}

	var (
		adverts []models.Advert
		total   int64
		err     error
	)
	if c.Query("favs") == "true" {
		adverts, total, err = h.advertService.GetFavs(memberID, skip, limit)
	} else {
		adverts, total, err = h.advertService.GetByMember(memberID, skip, limit)
	}
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"results":      adverts,
		"totalAdverts": total,
	})
}

// HandleCreate publishes a new advert. The photo file is mandatory and the
// owner is taken from the token, not from the form.
func (h *AdvertHandler) HandleCreate(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil || file == nil {
		return fail(c, apperrors.ErrPhotoFileMandatory)
	}

	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	advert := models.Advert{
		Name:        c.FormValue("name"),
		ForSale:     c.FormValue("for_sale") == "true",
		Price:       price,
		Tags:        splitTags(c.FormValue("tags")),
		Description: c.FormValue("description"),
		UserID:      callerID(c),
	}
	if err := h.validate.Struct(advert); err != nil {
		return validationFail(c, err)
	}

	advert.Photo, err = h.savePhoto(c, file)
	if err != nil {
		return fail(c, err)
	}

	created, err := h.advertService.Create(&advert)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  created,
	})
}

// HandleUpdate applies changes to an advert owned by the caller. All form
// fields are optional, including a replacement photo.
func (h *AdvertHandler) HandleUpdate(c *fiber.Ctx) error {
	var changes services.AdvertUpdate

	if v := c.FormValue("name"); v != "" {
		changes.Name = &v
	}
	if v := c.FormValue("for_sale"); v != "" {
		b := v == "true"
		changes.ForSale = &b
	}
	if v := c.FormValue("price"); v != "" {
		price, _ := strconv.ParseFloat(v, 64)
		if err := h.validate.Struct(struct {
			Price float64 `validate:"required,gt=0"`
		}{price}); err != nil {
			return validationFail(c, err)
		}
		changes.Price = &price
	}
	if v := c.FormValue("tags"); v != "" {
		tags := splitTags(v)
		changes.Tags = &tags
	}
	if v := c.FormValue("description"); v != "" {
		changes.Description = &v
	}
	if file, err := c.FormFile("photo"); err == nil && file != nil {
		photo, err := h.savePhoto(c, file)
		if err != nil {
			return fail(c, err)
		}
		changes.Photo = &photo
	}

	advert, err := h.advertService.Update(callerID(c), c.Params("id"), changes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  advert,
	})
}

// HandleDelete removes an advert owned by the caller.
func (h *AdvertHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.advertService.Delete(callerID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": apperrors.MsgAdvertDeleted,
	})
}

// SetFavsRequest represents the request body replacing a favorites list.
type SetFavsRequest struct {
	Favs []string `json:"favs"`
}

// HandleSetFavs replaces the caller's favorites list and echoes the token.
func (h *AdvertHandler) HandleSetFavs(c *fiber.Ctx) error {
	var req SetFavsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	user, err := h.favService.SetFavs(c.Params("userId"), req.Favs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  user,
		"token":   extractEchoToken(c),
	})
}

// SetStatusRequest represents the request body toggling advert flags.
type SetStatusRequest struct {
	Reserved *bool `json:"reserved"`
	Sold     *bool `json:"sold"`
}

// HandleSetReservedOrSold toggles the reserved/sold flags of an owned advert.
func (h *AdvertHandler) HandleSetReservedOrSold(c *fiber.Ctx) error {
	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	advert, err := h.advertService.Update(callerID(c), c.Params("id"), services.AdvertUpdate{
		Reserved: req.Reserved,
		Sold:     req.Sold,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  advert,
	})
}

// savePhoto stores the upload under a fresh uuid filename and returns it.
func (h *AdvertHandler) savePhoto(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	filename := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

// splitTags turns the comma-separated form value into a trimmed tag list.
func splitTags(raw string) models.StringList {
	tags := models.StringList{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// callerID reads the authenticated user id set by the auth middleware.
func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalsUserID).(string)
	return id
}

// extractEchoToken returns the bearer token the request carried, so responses
// that echo it back do not have to re-issue one.
func extractEchoToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	if authHeader != "" {
		return authHeader
	}
	return c.Query("token")
}
