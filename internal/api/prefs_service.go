package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/prefs"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// PreferencesService implements minda.v1.Preferences.
type PreferencesService struct {
	store *prefs.Store
}

// NewPreferencesService creates a new preferences service.
func NewPreferencesService(store *prefs.Store) *PreferencesService {
	return &PreferencesService{store: store}
}

func (s *PreferencesService) GetPreferences(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	p, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return PreferencesToStruct(p), nil
}

func (s *PreferencesService) SetUserName(_ context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	name := strings.TrimSpace(req.GetValue())
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", diary.ErrValidation)
	}
	return empty(s.store.SetUserName(name))
}

func (s *PreferencesService) SetOnboardingCompleted(_ context.Context, req *wrapperspb.BoolValue) (*emptypb.Empty, error) {
	return empty(s.store.SetOnboardingCompleted(req.GetValue()))
}

func (s *PreferencesService) SetDarkMode(_ context.Context, req *wrapperspb.BoolValue) (*emptypb.Empty, error) {
	return empty(s.store.SetDarkMode(req.GetValue()))
}

func (s *PreferencesService) ClearDarkMode(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return empty(s.store.ClearDarkMode())
}

func (s *PreferencesService) WatchPreferences(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ch, err := s.store.Watch(stream.Context())
	if err != nil {
		return err
	}
	for p := range ch {
		if err := stream.Send(PreferencesToStruct(p)); err != nil {
			return err
		}
	}
	return nil
}

func empty(err error) (*emptypb.Empty, error) {
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}
