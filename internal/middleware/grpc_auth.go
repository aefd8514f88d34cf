package middleware

import (
	"context"

	"github.com/Naman-Bagoria17/shortify/internal/auth"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCAuthMiddleware authenticates gRPC calls from the "authorization"
// metadata entry, which carries the same JWT as the HTTP session cookie.
type GRPCAuthMiddleware struct {
	jwtService *auth.JWTService
	users      storage.UserStore
}

func NewGRPCAuthMiddleware(jwtService *auth.JWTService, users storage.UserStore) *GRPCAuthMiddleware {
	return &GRPCAuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// UnaryInterceptor attaches the authenticated user to the context when a
// valid token is present. Calls without a token proceed anonymously;
// handlers that need an identity reject those themselves.
func (m *GRPCAuthMiddleware) UnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return handler(ctx, req)
	}

	authHeader := md.Get("authorization")
	if len(authHeader) == 0 {
		return handler(ctx, req)
	}

	claims, err := m.jwtService.ValidateToken(authHeader[0])
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	user, err := m.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "unknown user")
	}

	return handler(WithUser(ctx, user), req)
}
