package v2

import (
	"context"

	"google.golang.org/grpc"
)

// LinksServiceDesc описывает сервис так же, как это сделал бы protoc-gen-go-grpc.
var LinksServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LinksServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Create", LinksServer.Create),
		unary("Fetch", LinksServer.Fetch),
		unary("List", LinksServer.List),
		unary("Delete", LinksServer.Delete),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shortlinks/v2/links.proto",
}

func RegisterLinksServer(s grpc.ServiceRegistrar, srv LinksServer) {
	s.RegisterService(&LinksServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary собирает MethodDesc для метода с запросом типа Req.
func unary[Req any, Resp any](name string, call func(LinksServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LinksServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LinksServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
