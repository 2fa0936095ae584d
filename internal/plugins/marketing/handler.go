package marketing

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/fixtures"
	"github.com/huabuyu/geoai/internal/flash"
	"github.com/huabuyu/geoai/internal/middleware"
)

// Handler serves the public pages.
type Handler struct {
	service  InquiryService
	fixtures fixtures.Provider
}

// NewHandler creates the marketing handler.
func NewHandler(service InquiryService, fx fixtures.Provider) *Handler {
	return &Handler{service: service, fixtures: fx}
}

// Home renders the landing page (GET /).
func (h *Handler) Home(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, HomePage(HomeView{
		Stats:    h.fixtures.HeroStats(),
		Trend:    h.fixtures.YearlyTrend(),
		Features: h.fixtures.Features(),
		Plans:    h.fixtures.PricingPlans(),
	}))
}

// ContactForm renders the contact page (GET /contact?topic=).
func (h *Handler) ContactForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, ContactPage(ContactRequest{Topic: c.QueryParam("topic")}))
}

// Contact accepts the contact form (POST /contact).
func (h *Handler) Contact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if _, err := h.service.Contact(c.Request().Context(), req, c.RealIP()); err != nil {
		if msg, ok := validationMessage(err); ok {
			flash.Now(c, flash.KindError, msg)
			return middleware.Render(c, http.StatusOK, ContactPage(req))
		}
		return err
	}

	flash.Success(c, MsgContactSent)
	return middleware.Redirect(c, "/contact")
}

// DemoForm renders the demo scheduling page (GET /demo).
func (h *Handler) DemoForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, DemoPage(DemoRequest{}))
}

// ScheduleDemo accepts the demo form (POST /demo).
func (h *Handler) ScheduleDemo(c echo.Context) error {
	var req DemoRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if _, err := h.service.ScheduleDemo(c.Request().Context(), req, c.RealIP()); err != nil {
		if msg, ok := validationMessage(err); ok {
			flash.Now(c, flash.KindError, msg)
			return middleware.Render(c, http.StatusOK, DemoPage(req))
		}
		return err
	}

	flash.Success(c, MsgDemoScheduled)
	return middleware.Redirect(c, "/demo")
}

func validationMessage(err error) (string, bool) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusUnprocessableEntity {
		return appErr.Message, true
	}
	return "", false
}
