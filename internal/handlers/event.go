package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Totarae/shortlinks/internal/model"
)

// Шаблоны ресурсов. Для HTTP они же — шаблоны маршрутов chi.
const (
	ResourceURL      = "/url"
	ResourceURLByID  = "/url/{LinkId}"
	ResourceRedirect = "/u/{LinkId}"
	ResourceURLs     = "/urls"
)

// Event is a transport-neutral inbound request, shaped like an
// API gateway proxy event.
type Event struct {
	Resource   string            `json:"resource"`
	Path       string            `json:"path"`
	HTTPMethod string            `json:"httpMethod"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body,omitempty"`
}

// Response is the outcome of dispatching an Event.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body,omitempty"`
}

// buildResponse сериализует body в JSON. Ошибка кодирования — 500.
func buildResponse(status int, body any) Response {
	data, err := json.Marshal(body)
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"message":"` + msgInternal + `"}`,
		}
	}
	return Response{StatusCode: status, Body: string(data)}
}

func message(status int, msg string) Response {
	return buildResponse(status, model.MessageResponse{Message: msg})
}

func redirectTo(location string) Response {
	return Response{
		StatusCode: http.StatusFound,
		Headers:    map[string]string{"Location": location},
	}
}
