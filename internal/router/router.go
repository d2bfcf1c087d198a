package router

import (
	"github.com/Totarae/shortlinks/internal/handlers"
	"github.com/Totarae/shortlinks/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает маршрутизатор. Все маршруты, включая
// неизвестные, обрабатывает handler.ServeEvent: метод и ключ проверяет Dispatch.
func NewRouter(handler *handlers.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(chimw.Recoverer)
	r.Use(middleware.DecompressRequest)          // gzip во входящих запросах
	r.Use(chimw.Compress(5, "application/json")) // gzip в ответах

	r.HandleFunc(handlers.ResourceURL, handler.ServeEvent)
	r.HandleFunc(handlers.ResourceURLByID, handler.ServeEvent)
	r.HandleFunc(handlers.ResourceRedirect, handler.ServeEvent)
	r.HandleFunc(handlers.ResourceURLs, handler.ServeEvent)

	r.NotFound(handler.ServeEvent)
	r.MethodNotAllowed(handler.ServeEvent)
	return r
}
