package api

import (
	"context"
	"strings"
	"time"

	"github.com/matheus3301/minda/internal/status"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// NewGRPCServer creates a gRPC server with the minda services registered.
// Handlers return domain errors; the interceptors translate them to status
// codes and report storage health to machine.
func NewGRPCServer(machine *status.Machine, logger *zap.Logger, diarySvc DiaryServer, prefsSvc PreferencesServer, daemonSvc DaemonServer) *grpc.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &health{machine: machine, logger: logger}
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(h.unary),
		grpc.ChainStreamInterceptor(h.stream),
	)
	srv.RegisterService(&DiaryServiceDesc, diarySvc)
	srv.RegisterService(&PreferencesServiceDesc, prefsSvc)
	srv.RegisterService(&DaemonServiceDesc, daemonSvc)
	return srv
}

type health struct {
	machine *status.Machine
	logger  *zap.Logger
}

func (h *health) unary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	h.observe(info.FullMethod, start, err)
	return resp, ToStatus(err)
}

func (h *health) stream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	h.observe(info.FullMethod, start, err)
	return ToStatus(err)
}

func (h *health) observe(method string, start time.Time, err error) {
	// GetStatus reports health itself.
	tracked := h.machine != nil && !strings.HasPrefix(method, "/"+DaemonServiceName+"/")
	fields := []zap.Field{
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	}
	switch {
	case err == nil:
		if tracked {
			h.machine.Recover()
		}
		h.logger.Debug("rpc ok", fields...)
	case isStorageFailure(err):
		if tracked {
			h.machine.Degrade()
		}
		h.logger.Error("rpc storage failure", append(fields, zap.Error(err))...)
	default:
		h.logger.Info("rpc failed", append(fields, zap.String("code", Code(err).String()), zap.Error(err))...)
	}
}
