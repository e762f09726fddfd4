package api

import (
	"context"

	"github.com/matheus3301/minda/internal/status"
	"github.com/matheus3301/minda/internal/store"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// DaemonService implements minda.v1.Daemon.
type DaemonService struct {
	profile string
	machine *status.Machine
	entries *store.EntryStore
}

// NewDaemonService creates a new daemon service.
func NewDaemonService(profile string, machine *status.Machine, entries *store.EntryStore) *DaemonService {
	return &DaemonService{
		profile: profile,
		machine: machine,
		entries: entries,
	}
}

func (s *DaemonService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	resp := DaemonStatus{
		Profile:  s.profile,
		Status:   string(s.machine.Current()),
		UptimeMs: s.machine.Uptime().Milliseconds(),
	}

	// A failing store is reported through the status, not as an RPC error.
	if s.entries != nil {
		count, err := s.entries.Count(ctx)
		switch {
		case isStorageFailure(err):
			s.machine.Degrade()
			count = -1
		case err != nil:
			return nil, err
		}
		resp.EntryCount = count
		resp.Status = string(s.machine.Current())
	}

	return resp.ToStruct(), nil
}
