package v2

import (
	"context"

	"github.com/Totarae/shortlinks/internal/auth"
	"github.com/Totarae/shortlinks/internal/model"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client вызывает сервис ссылок от имени одного арендатора.
type Client struct {
	cc     grpc.ClientConnInterface
	apiKey string
}

func NewClient(cc grpc.ClientConnInterface, apiKey string) *Client {
	return &Client{cc: cc, apiKey: apiKey}
}

func (c *Client) Create(ctx context.Context, url string, opts ...grpc.CallOption) (*model.Link, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "Create", wrapperspb.String(url), out, opts...); err != nil {
		return nil, err
	}
	return linkFromStruct(out), nil
}

func (c *Client) Fetch(ctx context.Context, shortLinkID string, opts ...grpc.CallOption) (*model.Link, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "Fetch", wrapperspb.String(shortLinkID), out, opts...); err != nil {
		return nil, err
	}
	return linkFromStruct(out), nil
}

func (c *Client) List(ctx context.Context, opts ...grpc.CallOption) ([]*model.Link, error) {
	out := new(structpb.ListValue)
	if err := c.invoke(ctx, "List", &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}

	links := make([]*model.Link, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		links = append(links, linkFromStruct(v.GetStructValue()))
	}
	return links, nil
}

func (c *Client) Delete(ctx context.Context, shortLinkID string, opts ...grpc.CallOption) error {
	return c.invoke(ctx, "Delete", wrapperspb.String(shortLinkID), new(emptypb.Empty), opts...)
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	if c.apiKey != "" {
		ctx = auth.NewOutgoingContext(ctx, c.apiKey)
	}
	return c.cc.Invoke(ctx, fullMethod(method), in, out, opts...)
}
