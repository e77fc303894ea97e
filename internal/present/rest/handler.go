package rest

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/present/rest/presenter"
	"github.com/totegamma/iiifas/internal/usecase"
)

type Handler struct {
	feed *usecase.FeedUsecase
}

func NewHandler(feed *usecase.FeedUsecase) *Handler {
	return &Handler{feed: feed}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/as", h.handleTop)
	e.GET("/as/", h.handleTop)
	e.GET("/as/:page", h.handlePage)
	e.GET("/activity/:key", h.handleActivity)
}

func (h *Handler) serviceBase(c echo.Context) string {
	return h.feed.ServiceBase(c.Scheme() + "://" + c.Request().Host + "/")
}

func (h *Handler) handleTop(c echo.Context) error {
	ctx := c.Request().Context()

	top, err := h.feed.Top(ctx, h.serviceBase(c))
	if err != nil {
		return h.fail(c, err, "That results page does not exist")
	}
	return presenter.OK(c, top)
}

func (h *Handler) handlePage(c echo.Context) error {
	ctx := c.Request().Context()

	position, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid page number")
	}
	if position == usecase.EmptyPage {
		return h.handleTop(c)
	}

	page, err := h.feed.Page(ctx, h.serviceBase(c), position)
	if err != nil {
		return h.fail(c, err, "That results page does not exist")
	}
	return presenter.OK(c, page)
}

func (h *Handler) handleActivity(c echo.Context) error {
	ctx := c.Request().Context()

	event, err := h.feed.Activity(ctx, c.Param("key"))
	if err != nil {
		return h.fail(c, err, "Activity not found")
	}
	return presenter.OK(c, event)
}

func (h *Handler) fail(c echo.Context, err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return presenter.BadRequestMessage(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, notFound)
	case errors.Is(err, domain.ErrRemoteFetch):
		return presenter.BadGateway(c, err)
	case errors.Is(err, domain.ErrStoreUnavailable):
		return presenter.ServiceUnavailable(c, err)
	default:
		return presenter.InternalError(c, err)
	}
}
