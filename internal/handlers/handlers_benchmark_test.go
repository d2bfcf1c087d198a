package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Totarae/shortlinks/internal/handlers"
	"github.com/Totarae/shortlinks/internal/model"
	"github.com/Totarae/shortlinks/internal/service"
	"github.com/Totarae/shortlinks/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const benchKey = "bench-tenant"

func setupBenchHandler(b *testing.B, links int) *handlers.Handler {
	b.Helper()

	store, err := storage.NewMemoryStore("", zap.NewNop())
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < links; i++ {
		link := &model.Link{APIKey: benchKey, ShortLinkID: fmt.Sprintf("id%d", i), URL: fmt.Sprintf("https://yandex.ru/%d", i)}
		if err := store.Put(context.Background(), link); err != nil {
			b.Fatal(err)
		}
	}
	return handlers.NewHandler(service.NewLinkService(store, zap.NewNop()), zap.NewNop())
}

func BenchmarkDispatchCreate(b *testing.B) {
	handler := setupBenchHandler(b, 0)
	ev := handlers.Event{
		Resource:   handlers.ResourceURL,
		Path:       "/url",
		HTTPMethod: http.MethodPost,
		Headers:    map[string]string{"x-api-key": benchKey},
		Body:       `{"url": "https://yandex.ru/benchmark"}`,
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		handler.Dispatch(context.Background(), ev)
	}
}

func BenchmarkDispatchRedirect(b *testing.B) {
	handler := setupBenchHandler(b, 1)
	ev := handlers.Event{
		Resource:   handlers.ResourceRedirect,
		Path:       "/u/id0",
		HTTPMethod: http.MethodGet,
		Headers:    map[string]string{"x-api-key": benchKey},
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		handler.Dispatch(context.Background(), ev)
	}
}

func BenchmarkDispatchListURLs(b *testing.B) {
	handler := setupBenchHandler(b, 100)
	ev := handlers.Event{
		Resource:   handlers.ResourceURLs,
		Path:       "/urls",
		HTTPMethod: http.MethodGet,
		Headers:    map[string]string{"x-api-key": benchKey},
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		handler.Dispatch(context.Background(), ev)
	}
}

func BenchmarkServeEvent(b *testing.B) {
	handler := setupBenchHandler(b, 0)
	body := `{"url": "https://yandex.ru/benchmark"}`

	// Шаблон маршрута добавляем вручную, как это сделал бы chi
	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{handlers.ResourceURL}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/url", strings.NewReader(body))
		req.Header.Set("x-api-key", benchKey)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		handler.ServeEvent(httptest.NewRecorder(), req)
	}
}
