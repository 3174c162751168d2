package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/bistro/internal/auth"
	"github.com/mmynk/bistro/pkg/api"
)

// AuthService issues short-lived supervisor tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Handler returns the mount path and handler for the service.
func (s *AuthService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(api.AuthSupervisorLoginProcedure, connect.NewUnaryHandler(api.AuthSupervisorLoginProcedure, s.SupervisorLogin, opts...))
	return "/" + api.AuthServiceName + "/", mux
}

// SupervisorLogin checks a supervisor PIN and returns a token carrying the supervisor role.
func (s *AuthService) SupervisorLogin(ctx context.Context, req *connect.Request[api.SupervisorLoginRequest]) (*connect.Response[api.SupervisorLoginResponse], error) {
	s.logger.Info("Supervisor login request", "actor", req.Msg.Actor)

	if err := s.authenticator.Authenticate(ctx, req.Msg.Actor, req.Msg.PIN); err != nil {
		s.logger.Warn("Supervisor login failed", "actor", req.Msg.Actor, "error", err)
		if errors.Is(err, auth.ErrNotConfigured) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expiresAt, err := s.jwtManager.Generate(req.Msg.Actor, auth.RoleSupervisor)
	if err != nil {
		s.logger.Error("Failed to generate token", "actor", req.Msg.Actor, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Supervisor logged in", "actor", req.Msg.Actor, "expires_at", expiresAt)
	return connect.NewResponse(&api.SupervisorLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UnixMilli(),
	}), nil
}
