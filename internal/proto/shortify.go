package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type CreateLinkRequest struct {
	Url  string
	Slug string
}

type CreateLinkResponse struct {
	ShortUrl string
}

type ResolveLinkRequest struct {
	Slug string
}

type ResolveLinkResponse struct {
	TargetUrl string
}

type UserLinksResponse struct {
	Links []*LinkData
}

type LinkData struct {
	Id        string
	ShortUrl  string
	TargetUrl string
	Clicks    int64
}

// LinkServiceServer is the server API for LinkService service.
type LinkServiceServer interface {
	CreateLink(context.Context, *CreateLinkRequest) (*CreateLinkResponse, error)
	ResolveLink(context.Context, *ResolveLinkRequest) (*ResolveLinkResponse, error)
	ListUserLinks(context.Context, *emptypb.Empty) (*UserLinksResponse, error)
}

// UnimplementedLinkServiceServer can be embedded to have forward compatible implementations.
type UnimplementedLinkServiceServer struct{}

func (*UnimplementedLinkServiceServer) CreateLink(context.Context, *CreateLinkRequest) (*CreateLinkResponse, error) {
	return nil, nil
}
func (*UnimplementedLinkServiceServer) ResolveLink(context.Context, *ResolveLinkRequest) (*ResolveLinkResponse, error) {
	return nil, nil
}
func (*UnimplementedLinkServiceServer) ListUserLinks(context.Context, *emptypb.Empty) (*UserLinksResponse, error) {
	return nil, nil
}

func RegisterLinkServiceServer(s *grpc.Server, srv LinkServiceServer) {
	s.RegisterService(&_LinkService_serviceDesc, srv)
}

func _LinkService_CreateLink_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateLinkRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkServiceServer).CreateLink(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/shortify.LinkService/CreateLink",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkServiceServer).CreateLink(ctx, req.(*CreateLinkRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LinkService_ResolveLink_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResolveLinkRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkServiceServer).ResolveLink(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/shortify.LinkService/ResolveLink",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkServiceServer).ResolveLink(ctx, req.(*ResolveLinkRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LinkService_ListUserLinks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkServiceServer).ListUserLinks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/shortify.LinkService/ListUserLinks",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkServiceServer).ListUserLinks(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var _LinkService_serviceDesc = grpc.ServiceDesc{
	ServiceName: "shortify.LinkService",
	HandlerType: (*LinkServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateLink",
			Handler:    _LinkService_CreateLink_Handler,
		},
		{
			MethodName: "ResolveLink",
			Handler:    _LinkService_ResolveLink_Handler,
		},
		{
			MethodName: "ListUserLinks",
			Handler:    _LinkService_ListUserLinks_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shortify.proto",
}
