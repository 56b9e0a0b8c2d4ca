package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/wortschatz/internal/audio"
	"github.com/mrlokans/wortschatz/internal/config"
	"github.com/mrlokans/wortschatz/internal/tts"
	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

// AudioGenerateCommand synthesizes the missing cue audio files with SpeechKit.
type AudioGenerateCommand struct {
	CSVPath    string
	AudioDir   string
	StartIndex int
	DryRun     bool

	tts config.TTS
	out io.Writer
	// newSynth is replaced in tests
	newSynth func(config.TTS) (tts.Synthesizer, error)
}

func NewAudioGenerateCommand() *AudioGenerateCommand {
	return &AudioGenerateCommand{
		out:      os.Stdout,
		newSynth: newYandexSynth,
	}
}

func (cmd *AudioGenerateCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	cmd.tts = cfg.TTS

	fs := flag.NewFlagSet("audio-generate", flag.ExitOnError)

	fs.StringVar(&cmd.CSVPath, "csv", cfg.Vocabulary.CSVPath, "Path to the vocabulary CSV sheet")
	fs.StringVar(&cmd.AudioDir, "audio", cfg.Vocabulary.AudioDir, "Directory to write the cue MP3 files to")
	fs.IntVar(&cmd.StartIndex, "start", cfg.AudioSync.StartIndex, "First CSV row to generate audio for")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be generated without calling the TTS service")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audio-generate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate the missing cue audio files with Yandex SpeechKit.\n\n")
		fmt.Fprintf(os.Stderr, "Existing non-empty files are never overwritten. Requires SPEECHKIT_API_KEY.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Generate audio for rows added after the 388th:\n")
		fmt.Fprintf(os.Stderr, "  %s audio-generate -start 388\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what would be generated:\n")
		fmt.Fprintf(os.Stderr, "  %s audio-generate -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.StartIndex < 0 {
		return fmt.Errorf("-start must not be negative")
	}

	return nil
}

func (cmd *AudioGenerateCommand) Run() error {
	fmt.Fprintln(cmd.out, "Audio Generation")
	fmt.Fprintln(cmd.out, "================")

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No files will be written")
		fmt.Fprintln(cmd.out)
	}

	records, err := vocabulary.NewSource(cmd.CSVPath).List()
	if err != nil {
		return err
	}

	library := audio.NewLibrary(cmd.AudioDir)
	fmt.Fprintf(cmd.out, "Sheet: %s (%d records)\n", cmd.CSVPath, len(records))
	fmt.Fprintf(cmd.out, "Audio: %s\n", library.Dir())
	fmt.Fprintf(cmd.out, "Starting from index %d\n\n", cmd.StartIndex)

	missing := library.Report(records, cmd.StartIndex)
	if len(missing) == 0 {
		fmt.Fprintln(cmd.out, "Nothing to generate")
		return nil
	}

	if cmd.DryRun {
		for _, m := range missing {
			fmt.Fprintf(cmd.out, "  would create %s (%q)\n", m.Filename, m.Text)
		}
		fmt.Fprintf(cmd.out, "\n%d files would be created\n", len(missing))
		return nil
	}

	synth, err := cmd.newSynth(cmd.tts)
	if err != nil {
		return err
	}
	defer synth.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := library.Generate(ctx, records, cmd.StartIndex, synth)

	fmt.Fprintf(cmd.out, "\nChecked %d records, %d already complete\n", result.Checked, result.Complete)
	fmt.Fprintf(cmd.out, "Created %d files\n", result.Created)
	if result.Failed > 0 {
		fmt.Fprintf(cmd.out, "\n%d errors during generation:\n", result.Failed)
		for _, msg := range result.Errors {
			fmt.Fprintf(cmd.out, "  %s\n", msg)
		}
	}

	if err != nil {
		return fmt.Errorf("generation interrupted: %w", err)
	}
	return nil
}

func newYandexSynth(cfg config.TTS) (tts.Synthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("SPEECHKIT_API_KEY is not set")
	}
	return tts.NewYandexClient(tts.YandexConfig{
		APIKey:   cfg.APIKey,
		FolderID: cfg.FolderID,
		Voices: tts.Voices{
			German:  cfg.VoiceGerman,
			English: cfg.VoiceEnglish,
		},
	})
}
