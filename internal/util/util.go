package util

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewShortLinkID возвращает короткий идентификатор ссылки: первый сегмент
// UUID версии 1 (младшие 32 бита метки времени), 8 hex-символов.
// Уникальность против хранилища не проверяется.
func NewShortLinkID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("generate time-based uuid: %w", err)
	}
	short, _, _ := strings.Cut(id.String(), "-")
	return short, nil
}

// LastPathSegment returns the part of path after the final "/".
func LastPathSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
