package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DiaryService implements minda.v1.Diary over the diary service.
type DiaryService struct {
	svc *diary.Service
}

// NewDiaryService creates a new diary service.
func NewDiaryService(svc *diary.Service) *DiaryService {
	return &DiaryService{svc: svc}
}

func (s *DiaryService) AddEntry(ctx context.Context, req *structpb.Struct) (*wrapperspb.Int64Value, error) {
	e, err := decodeEntry(req)
	if err != nil {
		return nil, err
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
	id, err := s.svc.AddEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Int64(id), nil
}

func (s *DiaryService) EditEntry(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	e, err := decodeEntry(req)
	if err != nil {
		return nil, err
	}
	if err := s.svc.EditEntry(ctx, e); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *DiaryService) RemoveEntry(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if err := s.svc.RemoveEntry(ctx, req.GetValue()); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *DiaryService) ListEntries(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	entries, err := s.svc.ListAllEntries(ctx)
	if err != nil {
		return nil, err
	}
	return EntriesToList(entries), nil
}

func (s *DiaryService) GetEntry(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	e, err := s.svc.FindByID(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return EntryToStruct(e), nil
}

func (s *DiaryService) WatchEntries(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ch, err := s.svc.WatchAllEntries(stream.Context())
	if err != nil {
		return err
	}
	for entries := range ch {
		env := WatchEnvelope{
			EventID:    uuid.New().String(),
			OccurredAt: time.Now(),
			Entries:    entries,
		}
		if err := stream.Send(env.ToStruct()); err != nil {
			return err
		}
	}
	return nil
}

// decodeEntry parses and validates an entry from the wire.
func decodeEntry(req *structpb.Struct) (store.Entry, error) {
	e, err := EntryFromStruct(req)
	if err != nil {
		return store.Entry{}, fmt.Errorf("%w: %w", diary.ErrValidation, err)
	}
	return e, diary.Validate(e)
}
