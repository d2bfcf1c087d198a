package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Totarae/shortlinks/internal/auth"
	"github.com/Totarae/shortlinks/internal/model"
	"github.com/Totarae/shortlinks/internal/util"
	"go.uber.org/zap"
)

const (
	msgNotFound         = "Link not found."
	msgDeleted          = "Link deleted"
	msgInternal         = "Internal server error."
	msgNoResource       = "Resource not found."
	msgMethodNotAllowed = "Method not allowed."
)

// LinkService — операции над ссылками, которые нужны обработчику.
type LinkService interface {
	FetchAll(ctx context.Context, apiKey string) ([]*model.Link, error)
	Fetch(ctx context.Context, apiKey, shortLinkID string) (*model.Link, error)
	Create(ctx context.Context, apiKey string, body []byte) (*model.Link, error)
	Delete(ctx context.Context, apiKey, shortLinkID string) error
}

type Handler struct {
	Service LinkService
	Logger  *zap.Logger
}

func NewHandler(service LinkService, logger *zap.Logger) *Handler {
	return &Handler{
		Service: service,
		Logger:  logger,
	}
}

// Dispatch routes an event by (resource, method) to a link operation.
// The api key is checked before any routing happens.
func (h *Handler) Dispatch(ctx context.Context, ev Event) Response {
	h.Logger.Debug("event received",
		zap.String("resource", ev.Resource),
		zap.String("path", ev.Path),
		zap.String("method", ev.HTTPMethod),
	)

	apiKey, ok := auth.FromHeaders(ev.Headers)
	if !ok {
		return message(http.StatusForbidden, auth.MsgMissingKey)
	}

	// Идентификатор — последний сегмент пути, а не параметр маршрута.
	id := util.LastPathSegment(ev.Path)

	switch ev.Resource {
	case ResourceURL:
		if ev.HTTPMethod == http.MethodPost {
			return h.postURL(ctx, apiKey, ev.Body)
		}
	case ResourceURLByID:
		switch ev.HTTPMethod {
		case http.MethodGet:
			return h.getURL(ctx, apiKey, id)
		case http.MethodDelete:
			return h.deleteURL(ctx, apiKey, id)
		}
	case ResourceRedirect:
		return h.redirect(ctx, apiKey, id)
	case ResourceURLs:
		if ev.HTTPMethod == http.MethodGet {
			return h.getURLs(ctx, apiKey)
		}
	default:
		return message(http.StatusNotFound, msgNoResource)
	}
	return message(http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

func (h *Handler) postURL(ctx context.Context, apiKey, body string) Response {
	link, err := h.Service.Create(ctx, apiKey, []byte(body))
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return message(http.StatusBadRequest, vErr.Message)
		}
		return h.internalError("Cannot do POST on /url", err)
	}
	return buildResponse(http.StatusOK, link)
}

func (h *Handler) getURL(ctx context.Context, apiKey, id string) Response {
	link, err := h.Service.Fetch(ctx, apiKey, id)
	if err != nil {
		return h.internalError("Cannot do GET on /url/"+id, err)
	}
	if link == nil {
		return message(http.StatusNotFound, msgNotFound)
	}
	return buildResponse(http.StatusOK, link)
}

func (h *Handler) deleteURL(ctx context.Context, apiKey, id string) Response {
	if err := h.Service.Delete(ctx, apiKey, id); err != nil {
		return h.internalError("Cannot do DELETE on /url/"+id, err)
	}
	return message(http.StatusOK, msgDeleted)
}

func (h *Handler) redirect(ctx context.Context, apiKey, id string) Response {
	link, err := h.Service.Fetch(ctx, apiKey, id)
	if err != nil {
		return h.internalError("Cannot redirect to "+id, err)
	}
	if link == nil {
		return message(http.StatusNotFound, msgNotFound)
	}
	return redirectTo(link.URL)
}

func (h *Handler) getURLs(ctx context.Context, apiKey string) Response {
	links, err := h.Service.FetchAll(ctx, apiKey)
	if err != nil {
		return h.internalError("Cannot do GET on /urls", err)
	}
	return buildResponse(http.StatusOK, links)
}

func (h *Handler) internalError(msg string, err error) Response {
	h.Logger.Error(msg, zap.Error(err))
	return message(http.StatusInternalServerError, msgInternal)
}
