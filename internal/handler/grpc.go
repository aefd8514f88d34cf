package handler

import (
	"context"
	"errors"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/middleware"
	"github.com/Naman-Bagoria17/shortify/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// LinkGRPCServer exposes the link operations over gRPC for internal
// clients. Identity comes from the auth interceptor.
type LinkGRPCServer struct {
	proto.UnimplementedLinkServiceServer
	links LinkService
}

func NewLinkGRPCServer(links LinkService) *LinkGRPCServer {
	return &LinkGRPCServer{
		links: links,
	}
}

func grpcStatus(err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return status.Errorf(codes.Internal, "internal error")
	}

	switch appErr.Kind {
	case apperr.KindBadRequest:
		return status.Error(codes.InvalidArgument, appErr.Message)
	case apperr.KindUnauthorized:
		return status.Error(codes.Unauthenticated, appErr.Message)
	case apperr.KindForbidden:
		return status.Error(codes.PermissionDenied, appErr.Message)
	case apperr.KindNotFound:
		return status.Error(codes.NotFound, appErr.Message)
	case apperr.KindConflict:
		return status.Error(codes.AlreadyExists, appErr.Message)
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *LinkGRPCServer) CreateLink(ctx context.Context, req *proto.CreateLinkRequest) (*proto.CreateLinkResponse, error) {
	if req.Url == "" {
		return nil, status.Error(codes.InvalidArgument, "url is required")
	}

	var ownerID string
	if user, ok := middleware.UserFromContext(ctx); ok {
		ownerID = user.ID
	}

	link, err := s.links.Allocate(ctx, req.Url, ownerID, req.Slug)
	if err != nil {
		return nil, grpcStatus(err)
	}

	return &proto.CreateLinkResponse{ShortUrl: s.links.ShortURL(link.Slug)}, nil
}

func (s *LinkGRPCServer) ResolveLink(ctx context.Context, req *proto.ResolveLinkRequest) (*proto.ResolveLinkResponse, error) {
	if req.Slug == "" {
		return nil, status.Error(codes.InvalidArgument, "slug is required")
	}

	targetURL, found, err := s.links.Resolve(ctx, req.Slug)
	if err != nil {
		return nil, grpcStatus(err)
	}
	if !found {
		return nil, status.Error(codes.NotFound, "slug not found")
	}

	return &proto.ResolveLinkResponse{TargetUrl: targetURL}, nil
}

func (s *LinkGRPCServer) ListUserLinks(ctx context.Context, _ *emptypb.Empty) (*proto.UserLinksResponse, error) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}

	urls, err := s.links.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, grpcStatus(err)
	}

	resp := &proto.UserLinksResponse{
		Links: make([]*proto.LinkData, 0, len(urls)),
	}
	for _, u := range urls {
		resp.Links = append(resp.Links, &proto.LinkData{
			Id:        u.ID,
			ShortUrl:  u.ShortURL,
			TargetUrl: u.TargetURL,
			Clicks:    u.Clicks,
		})
	}

	return resp, nil
}
