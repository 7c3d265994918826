package rest

import (
	"context"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"widescreen/api/model"
	"widescreen/config"
	"widescreen/service"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

const missingParametersMessage = "Image URL and option are required"

type ImageController struct {
	cfg     *config.Config
	service *service.ImageService
	logger  *zap.Logger
}

func NewImageController(app *fiber.App, cfg *config.Config, service *service.ImageService, logger *zap.Logger) *ImageController {
	i := &ImageController{service: service, cfg: cfg, logger: logger}

	app.Get("/resize", i.Resize)

	return i
}

// Resize image
//
//	@Summary		Resize an image to 16:9
//	@Description	Downloads the image behind imageUrl, places it into a 1920x1080 frame according to option, boosts its colors and returns a JPEG.
//	@Tags			image
//	@Produce		image/jpeg
//	@Param			imageUrl	query	string	true	"Absolute URL of the source image"
//	@Param			option		query	string	true	"Placement"	Enums(fill, top, bottom, fit)
//	@Success		200			{file}	file	"Returns the resized image"
//	@Failure		400			{string}	string	"Image URL and option are required"
//	@Failure		500			{string}	string	"An error occurred while processing the image."
//	@Router			/resize [get]
func (i *ImageController) Resize(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), i.cfg.RequestTimeout())
	defer cancel()
	logger := log.LoggerWithTrace(ctx, i.logger)

	params := &model.ResizeRequest{}

	if err := c.QueryParser(params); err != nil {
		logger.Error("Error parsing query", zap.Error(err))
		return fmt.Errorf("%w: %w", errs.ErrMissingParameter, err)
	}

	if params.ImageURL == "" || params.Option == "" {
		logger.Debug(fmt.Sprintf("Rejecting request with params: %+v", params))
		return fmt.Errorf("%w: imageUrl and option", errs.ErrMissingParameter)
	}

	logger.Debug(fmt.Sprintf("Resizing image with params: %+v", params))

	image, err := i.service.Resize(ctx, *params)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, image.Type)

	return c.Status(fiber.StatusOK).SendStream(image.Body, int(image.ContentLength))
}
