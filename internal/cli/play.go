package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/wortschatz/internal/config"
	"github.com/mrlokans/wortschatz/internal/playback"
	"github.com/mrlokans/wortschatz/internal/provider"
	"github.com/mrlokans/wortschatz/internal/sequencer"
	"github.com/mrlokans/wortschatz/internal/tui"
)

const loadTimeout = 30 * time.Second

// PlayCommand runs the terminal vocabulary player against a running server.
type PlayCommand struct {
	ServerURL  string
	Backend    string
	SlowRate   float64
	StartIndex int
	LogPath    string
}

func NewPlayCommand() *PlayCommand {
	return &PlayCommand{}
}

func (cmd *PlayCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("play", flag.ExitOnError)

	fs.StringVar(&cmd.ServerURL, "server", cfg.Player.ServerURL, "Base URL of the vocabulary server")
	fs.StringVar(&cmd.Backend, "backend", cfg.Player.Backend, "Audio backend: mpv or portaudio")
	fs.Float64Var(&cmd.SlowRate, "slow-rate", cfg.Player.SlowRate, "Playback rate of the German sentence")
	fs.IntVar(&cmd.StartIndex, "start", 0, "Position in the word list to start at")
	fs.StringVar(&cmd.LogPath, "log", cfg.Player.LogPath, "Log file (the player owns the terminal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s play [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Play the vocabulary list in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Each word is played as: German word, English word,\n")
		fmt.Fprintf(os.Stderr, "German sentence (slowed down), English sentence.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Play against a local server:\n")
		fmt.Fprintf(os.Stderr, "  %s play\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Use PortAudio instead of mpv and start at the 50th word:\n")
		fmt.Fprintf(os.Stderr, "  %s play -backend portaudio -start 49\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ServerURL == "" {
		return fmt.Errorf("required flag -server not provided")
	}
	if cmd.SlowRate <= 0 || cmd.SlowRate > 2 {
		return fmt.Errorf("-slow-rate must be in (0, 2], got %v", cmd.SlowRate)
	}
	if cmd.StartIndex < 0 {
		return fmt.Errorf("-start must not be negative")
	}

	return nil
}

func (cmd *PlayCommand) Run() error {
	if cmd.LogPath != "" {
		logFile, err := os.OpenFile(cmd.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	backend, err := playback.New(cmd.Backend)
	if err != nil {
		return fmt.Errorf("failed to initialize audio backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Printf("[PLAYER] Error closing audio backend: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := provider.NewClient(cmd.ServerURL)
	log.Printf("[PLAYER] Loading vocabulary from %s", client.BaseURL())

	opts := tui.Options{Translator: client}

	ctrl, err := cmd.loadController(ctx, client, backend)
	if err != nil {
		log.Printf("[PLAYER] %v", err)
		opts.LoadError = err
	} else {
		defer ctrl.Close()
		opts.Controller = ctrl
	}

	return tui.NewApp(nil, opts).Run(ctx)
}

// loadController fetches the word list and learned marks once at startup.
func (cmd *PlayCommand) loadController(ctx context.Context, client *provider.Client, output sequencer.Output) (*sequencer.Controller, error) {
	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	records, err := client.ListVocabulary(loadCtx)
	if err != nil {
		return nil, err
	}

	excluded, err := client.ListExcluded(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load learned words: %w", err)
	}

	log.Printf("[PLAYER] Loaded %d words, %d learned", len(records), len(excluded))

	return sequencer.New(records, excluded, client, output, sequencer.Options{
		SlowRate:   cmd.SlowRate,
		StartIndex: cmd.StartIndex,
	}), nil
}
