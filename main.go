package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/wortschatz/internal/cli"
	"github.com/mrlokans/wortschatz/internal/config"
	"github.com/mrlokans/wortschatz/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// subcommand is implemented by every subcommand in internal/cli.
type subcommand interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "play":
		run(cli.NewPlayCommand(), args)

	case "audio-report":
		run(cli.NewAudioReportCommand(), args)

	case "audio-generate":
		run(cli.NewAudioGenerateCommand(), args)

	case "version":
		fmt.Printf("wortschatz %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(cmd subcommand, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve            Start the vocabulary HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  play             Play the vocabulary list in the terminal\n")
	fmt.Fprintf(os.Stderr, "  audio-report     List cues whose audio file is missing or empty\n")
	fmt.Fprintf(os.Stderr, "  audio-generate   Generate missing cue audio with Yandex SpeechKit\n")
	fmt.Fprintf(os.Stderr, "  version          Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
