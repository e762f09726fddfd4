package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/matheus3301/minda/internal/config"
	"github.com/matheus3301/minda/internal/logging"
	"github.com/matheus3301/minda/internal/profile"
	"github.com/matheus3301/minda/internal/tui"
	"github.com/matheus3301/minda/internal/tui/client"
	"github.com/matheus3301/minda/internal/tui/model"
	"go.uber.org/zap"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	flag.Parse()

	if err := config.LoadEnvFiles(profile.EnvPath(), ".env"); err != nil {
		fatalf("error: %v\n", err)
	}

	name := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(name); err != nil {
		fatalf("error: %v\n", err)
	}

	cfg, err := config.LoadOrDefault(profile.ConfigPath())
	if err != nil {
		fatalf("error: %v\n", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		fatalf("error: %v\n", err)
	}

	logger, err := openLog(name)
	if err != nil {
		fatalf("open log: %v\n", err)
	}
	defer func() { _ = logger.Sync() }()

	socketPath := profile.SocketPath(name)

	// Probe daemon health; auto-start if needed.
	if !probeDaemon(socketPath) {
		fmt.Fprintf(os.Stderr, "daemon not running for profile %q, starting...\n", name)
		if err := startDaemon(name); err != nil {
			fatalf("failed to start daemon: %v\n", err)
		}
		if !waitForDaemon(socketPath, 10*time.Second) {
			fatalf("daemon did not become ready\n")
		}
	}

	c, err := client.New(socketPath)
	if err != nil {
		fatalf("connect to daemon: %v\n", err)
	}
	defer func() { _ = c.Close() }()

	app := tui.NewApp(model.ClientBackend(c), name, loc, logger)
	if err := app.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		fatalf("error: %v\n", err)
	}
}

func openLog(name string) (*zap.Logger, error) {
	if err := profile.EnsureDir(name); err != nil {
		return nil, err
	}
	return logging.NewFileOnly(filepath.Join(profile.LogDir(name), "mindatui.log"), "tui")
}

// probeDaemon checks if a daemon is running and responsive on the socket.
func probeDaemon(socketPath string) bool {
	c, err := client.New(socketPath)
	if err != nil {
		return false
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = c.Status(ctx)
	return err == nil
}

func startDaemon(name string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	mindad := filepath.Join(filepath.Dir(executable), "mindad")

	if _, err := os.Stat(mindad); err != nil {
		mindad = "mindad"
	}

	cmd := exec.Command(mindad, "--profile", name)
	// Inherit stderr so daemon startup errors are visible.
	cmd.Stderr = os.Stderr
	return cmd.Start()
}

// waitForDaemon polls the daemon with a real status call (not just socket connect).
func waitForDaemon(socketPath string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if probeDaemon(socketPath) {
			return true
		}
		time.Sleep(300 * time.Millisecond)
	}
	return false
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
