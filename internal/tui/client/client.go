package client

import (
	"context"
	"fmt"

	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client talks to a profile daemon. Errors are mapped back to the domain
// sentinels (store.ErrNotFound, diary.ErrValidation, store.ErrUnavailable,
// prefs.ErrUnavailable).
type Client struct {
	conn *grpc.ClientConn
}

// New dials the daemon's Unix domain socket.
func New(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient(
		"unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	return &Client{conn: conn}, nil
}

// NewFromConn wraps an existing connection. The client takes ownership of conn.
func NewFromConn(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// AddEntry stores a new entry and returns its id. A zero timestamp is
// replaced by the daemon's current time.
func (c *Client) AddEntry(ctx context.Context, e store.Entry) (int64, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.diary(ctx, "AddEntry", api.EntryToStruct(e), out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

// EditEntry replaces title, content and mood of entry e.ID.
func (c *Client) EditEntry(ctx context.Context, e store.Entry) error {
	return c.diary(ctx, "EditEntry", api.EntryToStruct(e), new(emptypb.Empty))
}

// RemoveEntry deletes an entry.
func (c *Client) RemoveEntry(ctx context.Context, id int64) error {
	return c.diary(ctx, "RemoveEntry", wrapperspb.Int64(id), new(emptypb.Empty))
}

// ListEntries returns every entry, most recent first.
func (c *Client) ListEntries(ctx context.Context) ([]store.Entry, error) {
	out := new(structpb.ListValue)
	if err := c.diary(ctx, "ListEntries", &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return api.EntriesFromList(out)
}

// GetEntry returns one entry.
func (c *Client) GetEntry(ctx context.Context, id int64) (store.Entry, error) {
	out := new(structpb.Struct)
	if err := c.diary(ctx, "GetEntry", wrapperspb.Int64(id), out); err != nil {
		return store.Entry{}, err
	}
	return api.EntryFromStruct(out)
}

// WatchEntries opens a stream that yields the current snapshot and one
// snapshot per later change. Cancel ctx to stop it.
func (c *Client) WatchEntries(ctx context.Context) (*EntryStream, error) {
	s, err := openStream(ctx, c.conn, &api.DiaryServiceDesc, api.DiaryServiceName, "WatchEntries", store.ErrUnavailable)
	if err != nil {
		return nil, err
	}
	return &EntryStream{s: s}, nil
}

// Preferences returns the current preferences.
func (c *Client) Preferences(ctx context.Context) (prefs.Preferences, error) {
	out := new(structpb.Struct)
	if err := c.prefs(ctx, "GetPreferences", &emptypb.Empty{}, out); err != nil {
		return prefs.Preferences{}, err
	}
	return api.PreferencesFromStruct(out)
}

// SetUserName stores the user's name.
func (c *Client) SetUserName(ctx context.Context, name string) error {
	return c.prefs(ctx, "SetUserName", wrapperspb.String(name), new(emptypb.Empty))
}

// SetOnboardingCompleted stores the onboarding flag.
func (c *Client) SetOnboardingCompleted(ctx context.Context, done bool) error {
	return c.prefs(ctx, "SetOnboardingCompleted", wrapperspb.Bool(done), new(emptypb.Empty))
}

// SetDarkMode stores an explicit theme.
func (c *Client) SetDarkMode(ctx context.Context, dark bool) error {
	return c.prefs(ctx, "SetDarkMode", wrapperspb.Bool(dark), new(emptypb.Empty))
}

// ClearDarkMode returns the theme to the system default.
func (c *Client) ClearDarkMode(ctx context.Context) error {
	return c.prefs(ctx, "ClearDarkMode", &emptypb.Empty{}, new(emptypb.Empty))
}

// WatchPreferences streams preference snapshots.
func (c *Client) WatchPreferences(ctx context.Context) (*PreferencesStream, error) {
	s, err := openStream(ctx, c.conn, &api.PreferencesServiceDesc, api.PreferencesServiceName, "WatchPreferences", prefs.ErrUnavailable)
	if err != nil {
		return nil, err
	}
	return &PreferencesStream{s: s}, nil
}

// Status returns the daemon status.
func (c *Client) Status(ctx context.Context) (api.DaemonStatus, error) {
	out := new(structpb.Struct)
	err := c.conn.Invoke(ctx, api.FullMethod(api.DaemonServiceName, "GetStatus"), &emptypb.Empty{}, out)
	if err != nil {
		return api.DaemonStatus{}, api.FromStatus(err, store.ErrUnavailable)
	}
	return api.DaemonStatusFromStruct(out)
}

func (c *Client) diary(ctx context.Context, method string, in, out any) error {
	err := c.conn.Invoke(ctx, api.FullMethod(api.DiaryServiceName, method), in, out)
	return api.FromStatus(err, store.ErrUnavailable)
}

func (c *Client) prefs(ctx context.Context, method string, in, out any) error {
	err := c.conn.Invoke(ctx, api.FullMethod(api.PreferencesServiceName, method), in, out)
	return api.FromStatus(err, prefs.ErrUnavailable)
}

// EntryStream yields diary snapshots.
type EntryStream struct {
	s *stream
}

// Recv blocks for the next snapshot.
func (e *EntryStream) Recv() (api.WatchEnvelope, error) {
	msg, err := e.s.recv()
	if err != nil {
		return api.WatchEnvelope{}, err
	}
	return api.WatchEnvelopeFromStruct(msg)
}

// PreferencesStream yields preference snapshots.
type PreferencesStream struct {
	s *stream
}

// Recv blocks for the next snapshot.
func (p *PreferencesStream) Recv() (prefs.Preferences, error) {
	msg, err := p.s.recv()
	if err != nil {
		return prefs.Preferences{}, err
	}
	return api.PreferencesFromStruct(msg)
}

type stream struct {
	cs          grpc.ServerStreamingClient[structpb.Struct]
	unavailable error
}

func openStream(ctx context.Context, conn *grpc.ClientConn, desc *grpc.ServiceDesc, service, method string, unavailable error) (*stream, error) {
	var sd *grpc.StreamDesc
	for i := range desc.Streams {
		if desc.Streams[i].StreamName == method {
			sd = &desc.Streams[i]
		}
	}
	if sd == nil {
		return nil, fmt.Errorf("unknown stream %s", method)
	}

	cs, err := conn.NewStream(ctx, sd, api.FullMethod(service, method))
	if err != nil {
		return nil, api.FromStatus(err, unavailable)
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: cs}
	if err := x.ClientStream.SendMsg(&emptypb.Empty{}); err != nil {
		return nil, api.FromStatus(err, unavailable)
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, api.FromStatus(err, unavailable)
	}
	return &stream{cs: x, unavailable: unavailable}, nil
}

// recv returns io.EOF when the server ends the stream.
func (s *stream) recv() (*structpb.Struct, error) {
	msg, err := s.cs.Recv()
	if err != nil {
		return nil, api.FromStatus(err, s.unavailable)
	}
	return msg, nil
}
