package model

import "regexp"

// urlPattern принимает http/https/ftp/ftps адреса с доменом, localhost или IPv4,
// необязательным портом и путём. Диапазон октетов IPv4 не проверяется.
var urlPattern = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
	`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}\.?` +
	`|localhost` +
	`|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// Link is a tenant-scoped short link. (APIKey, ShortLinkID) is its primary key.
type Link struct {
	APIKey      string `json:"apiKey" dynamodbav:"apiKey"`
	ShortLinkID string `json:"shortLinkId" dynamodbav:"shortLinkId"`
	URL         string `json:"url" dynamodbav:"url"`
}

// ValidateURL reports whether candidate has the shape of an absolute URL.
// It is a syntactic check only.
func ValidateURL(candidate string) bool {
	return urlPattern.MatchString(candidate)
}

// NewLink builds a Link, rejecting destinations that fail ValidateURL.
func NewLink(apiKey, shortLinkID, url string) (*Link, error) {
	if !ValidateURL(url) {
		return nil, NewValidationError(MsgBadURL)
	}
	return &Link{APIKey: apiKey, ShortLinkID: shortLinkID, URL: url}, nil
}
