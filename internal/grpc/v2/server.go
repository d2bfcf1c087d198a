// Package v2 — gRPC-транспорт для операций над ссылками.
// Сервис описан вручную через well-known типы protobuf, без сгенерированного кода.
package v2

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Totarae/shortlinks/internal/auth"
	"github.com/Totarae/shortlinks/internal/handlers"
	"github.com/Totarae/shortlinks/internal/model"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "shortlinks.v2.Links"

	msgNotFound = "Link not found."
	msgInternal = "Internal server error."
)

// LinksServer — серверная сторона сервиса shortlinks.v2.Links.
type LinksServer interface {
	Create(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	Fetch(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	List(ctx context.Context, in *emptypb.Empty) (*structpb.ListValue, error)
	Delete(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error)
}

type GRPCServer struct {
	Service handlers.LinkService
	Logger  *zap.Logger
}

func NewGRPCServer(service handlers.LinkService, logger *zap.Logger) *GRPCServer {
	return &GRPCServer{Service: service, Logger: logger}
}

// NewServer создаёт grpc.Server с зарегистрированным сервисом ссылок.
func NewServer(service handlers.LinkService, logger *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor(logger)))
	srv := grpc.NewServer(opts...)
	RegisterLinksServer(srv, NewGRPCServer(service, logger))
	return srv
}

// Create сокращает URL из значения запроса.
func (s *GRPCServer) Create(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	apiKey, err := tenant(ctx)
	if err != nil {
		return nil, err
	}

	body := []byte("{}")
	if in.GetValue() != "" {
		body, err = json.Marshal(model.ShortenRequest{URL: in.GetValue()})
		if err != nil {
			return nil, s.internal("cannot encode create request", err)
		}
	}

	link, err := s.Service.Create(ctx, apiKey, body)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return nil, status.Error(codes.InvalidArgument, vErr.Message)
		}
		return nil, s.internal("cannot create link", err)
	}
	return linkToStruct(link)
}

func (s *GRPCServer) Fetch(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	apiKey, err := tenant(ctx)
	if err != nil {
		return nil, err
	}

	link, err := s.Service.Fetch(ctx, apiKey, in.GetValue())
	if err != nil {
		return nil, s.internal("cannot fetch link", err)
	}
	if link == nil {
		return nil, status.Error(codes.NotFound, msgNotFound)
	}
	return linkToStruct(link)
}

func (s *GRPCServer) List(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	apiKey, err := tenant(ctx)
	if err != nil {
		return nil, err
	}

	links, err := s.Service.FetchAll(ctx, apiKey)
	if err != nil {
		return nil, s.internal("cannot list links", err)
	}

	items := make([]any, 0, len(links))
	for _, link := range links {
		items = append(items, linkToMap(link))
	}
	list, err := structpb.NewList(items)
	if err != nil {
		return nil, s.internal("cannot encode links", err)
	}
	return list, nil
}

func (s *GRPCServer) Delete(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	apiKey, err := tenant(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Service.Delete(ctx, apiKey, in.GetValue()); err != nil {
		return nil, s.internal("cannot delete link", err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) internal(msg string, err error) error {
	s.Logger.Error(msg, zap.Error(err))
	return status.Error(codes.Internal, msgInternal)
}

func tenant(ctx context.Context) (string, error) {
	apiKey, ok := auth.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.PermissionDenied, auth.MsgMissingKey)
	}
	return apiKey, nil
}

// LoggingInterceptor пишет метод, код ответа и длительность каждого вызова.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		logger.Info("grpc call",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
