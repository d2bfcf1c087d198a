// Package storage содержит реализации service.LinkStore поверх
// встраиваемых и внешних key-value хранилищ.
package storage

import (
	"strconv"
	"strings"
)

// partitionPrefix строит префикс ключей одной партиции.
// Длина apiKey входит в префикс, поэтому ключ "a:b" не попадёт в партицию "a".
func partitionPrefix(table, apiKey string) string {
	var b strings.Builder
	b.WriteString(table)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(apiKey)))
	b.WriteByte(':')
	b.WriteString(apiKey)
	b.WriteByte(':')
	return b.String()
}

// linkKey returns the full key of a link inside its partition.
func linkKey(table, apiKey, shortLinkID string) string {
	return partitionPrefix(table, apiKey) + shortLinkID
}
