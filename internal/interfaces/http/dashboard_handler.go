package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/matrix-dsi/matrix-api/internal/application/analytics"
	"github.com/matrix-dsi/matrix-api/internal/application/dto"
	"github.com/matrix-dsi/matrix-api/internal/domain"
)

// DashboardHandler expose les endpoints de consultation du grand livre.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construit le handler du dashboard.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// parseRange lit et valide les paramètres de plage communs. La réponse
// d'erreur est déjà écrite quand ok vaut false.
func (h *DashboardHandler) parseRange(c *fiber.Ctx) (analytics.Range, bool) {
	var req dto.RangeRequest
	if err := c.QueryParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
		return analytics.Range{}, false
	}
	r, err := analytics.ResolveRange(req)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return analytics.Range{}, false
	}
	return r, true
}

func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Summary GET /api/dashboard/summary : cartes KPI de la plage.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Summary(c.Context(), r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Aggregates GET /api/dashboard/aggregates?granularity=jour|semaine|mois.
func (h *DashboardHandler) Aggregates(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Aggregates(c.Context(), r, c.Query("granularity", "jour"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StoreComparison GET /api/dashboard/comparison : une série par magasin.
func (h *DashboardHandler) StoreComparison(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.StoreComparison(c.Context(), r, c.Query("granularity", "jour"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WeeklyPivot GET /api/dashboard/pivot?metric=tickets|ca_ttc|panier.
func (h *DashboardHandler) WeeklyPivot(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.WeeklyPivot(c.Context(), r, c.Query("metric", "tickets"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WeeklyPivotPDF GET /api/dashboard/pivot.pdf : même tableau, rendu PDF.
func (h *DashboardHandler) WeeklyPivotPDF(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	data, err := h.uc.WeeklyPivotPDF(c.Context(), r, c.Query("metric", "tickets"))
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("pivot_%s_%s.pdf", r.Start.Format("20060102"), r.End.Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// WeeklySeries GET /api/dashboard/series?weeks=3 : comparaison des
// dernières semaines plus la série Moyenne.
func (h *DashboardHandler) WeeklySeries(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.WeeklySeries(c.Context(), r, c.Query("metric", "tickets"), c.QueryInt("weeks", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopArticles GET /api/dashboard/top-articles?limit=10.
func (h *DashboardHandler) TopArticles(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.TopArticles(c.Context(), r, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FamilyShares GET /api/dashboard/families : répartition du CA par famille.
func (h *DashboardHandler) FamilyShares(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.FamilyShares(c.Context(), r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Filters GET /api/dashboard/filters : bornes de dates et magasins.
func (h *DashboardHandler) Filters(c *fiber.Ctx) error {
	out, err := h.uc.Filters(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Detail GET /api/dashboard/detail : lignes brutes de la plage.
func (h *DashboardHandler) Detail(c *fiber.Ctx) error {
	r, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Detail(c.Context(), r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
