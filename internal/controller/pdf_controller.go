package controller

import (
	"errors"
	"fmt"

	"github.com/Adsharma18/AiCareerCoachClean/internal/constant"
	"github.com/Adsharma18/AiCareerCoachClean/internal/dto"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/serverutils"
	"github.com/Adsharma18/AiCareerCoachClean/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPdfController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
}

type pdfController struct {
	service service.IPdfService
}

func NewPdfController(service service.IPdfService) IPdfController {
	return &pdfController{service: service}
}

func (c *pdfController) RegisterRoutes(r fiber.Router) {
	r.Post("/export-pdf", c.Export)
}

func (c *pdfController) Export(ctx *fiber.Ctx) error {
	var req dto.ExportPDFRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Render(&req)
	if errors.Is(err, service.ErrUnicodeFontUnavailable) {
		return fiber.NewError(fiber.StatusInternalServerError, constant.ErrPdfFontMissing)
	}
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	return ctx.Send(res.Content)
}
