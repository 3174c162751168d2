package service

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/bistro/internal/suggest"
	"github.com/mmynk/bistro/pkg/api"
)

// SuggestService exposes AI text suggestions for menu authoring.
type SuggestService struct {
	suggester *suggest.Suggester
}

// NewSuggestService creates a SuggestService.
func NewSuggestService(s *suggest.Suggester) *SuggestService {
	return &SuggestService{suggester: s}
}

// Handler returns the mount path and handler for the service.
func (s *SuggestService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(api.SuggestDishNameProcedure, connect.NewUnaryHandler(api.SuggestDishNameProcedure, s.SuggestDishName, opts...))
	mux.Handle(api.SuggestDescriptionProcedure, connect.NewUnaryHandler(api.SuggestDescriptionProcedure, s.GenerateDescription, opts...))
	return "/" + api.SuggestServiceName + "/", mux
}

// SuggestDishName proposes a dish name.
func (s *SuggestService) SuggestDishName(ctx context.Context, req *connect.Request[api.SuggestDishNameRequest]) (*connect.Response[api.SuggestionResponse], error) {
	text, err := s.suggester.SuggestDishName(ctx, req.Msg.Prompt, req.Msg.Cuisine)
	if err != nil {
		return nil, suggestError(err)
	}
	return connect.NewResponse(&api.SuggestionResponse{Text: text}), nil
}

// GenerateDescription writes a menu description.
func (s *SuggestService) GenerateDescription(ctx context.Context, req *connect.Request[api.GenerateDescriptionRequest]) (*connect.Response[api.SuggestionResponse], error) {
	text, err := s.suggester.GenerateDescription(ctx, req.Msg.DishName, req.Msg.DishType, req.Msg.KeyIngredients)
	if err != nil {
		return nil, suggestError(err)
	}
	return connect.NewResponse(&api.SuggestionResponse{Text: text}), nil
}

func suggestError(err error) *connect.Error {
	switch {
	case errors.Is(err, suggest.ErrEmptyPrompt):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, suggest.ErrNotConfigured):
		return connect.NewError(connect.CodeUnimplemented, err)
	case errors.Is(err, suggest.ErrRateLimited):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeUnavailable, err)
	}
}
