package v2

import (
	"github.com/Totarae/shortlinks/internal/model"
	"google.golang.org/protobuf/types/known/structpb"
)

// Поля совпадают с JSON-представлением model.Link.
const (
	fieldAPIKey      = "apiKey"
	fieldShortLinkID = "shortLinkId"
	fieldURL         = "url"
)

func linkToMap(link *model.Link) map[string]any {
	return map[string]any{
		fieldAPIKey:      link.APIKey,
		fieldShortLinkID: link.ShortLinkID,
		fieldURL:         link.URL,
	}
}

func linkToStruct(link *model.Link) (*structpb.Struct, error) {
	return structpb.NewStruct(linkToMap(link))
}

func linkFromStruct(s *structpb.Struct) *model.Link {
	fields := s.GetFields()
	return &model.Link{
		APIKey:      fields[fieldAPIKey].GetStringValue(),
		ShortLinkID: fields[fieldShortLinkID].GetStringValue(),
		URL:         fields[fieldURL].GetStringValue(),
	}
}
