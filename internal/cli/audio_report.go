package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/wortschatz/internal/audio"
	"github.com/mrlokans/wortschatz/internal/config"
	"github.com/mrlokans/wortschatz/internal/entities"
	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

// AudioReportCommand lists the cue audio files that are missing or empty.
type AudioReportCommand struct {
	CSVPath    string
	AudioDir   string
	StartIndex int
	JSON       bool

	out io.Writer
}

func NewAudioReportCommand() *AudioReportCommand {
	return &AudioReportCommand{out: os.Stdout}
}

func (cmd *AudioReportCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("audio-report", flag.ExitOnError)

	fs.StringVar(&cmd.CSVPath, "csv", cfg.Vocabulary.CSVPath, "Path to the vocabulary CSV sheet")
	fs.StringVar(&cmd.AudioDir, "audio", cfg.Vocabulary.AudioDir, "Directory with the cue MP3 files")
	fs.IntVar(&cmd.StartIndex, "start", 0, "First CSV row to check")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the report as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audio-report [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List vocabulary cues whose audio file is missing or empty.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.StartIndex < 0 {
		return fmt.Errorf("-start must not be negative")
	}

	return nil
}

func (cmd *AudioReportCommand) Run() error {
	records, err := vocabulary.NewSource(cmd.CSVPath).List()
	if err != nil {
		return err
	}

	library := audio.NewLibrary(cmd.AudioDir)
	missing := library.Report(records, cmd.StartIndex)

	if cmd.JSON {
		enc := json.NewEncoder(cmd.out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"checked": checkedRecords(records, cmd.StartIndex),
			"missing": missing,
		})
	}

	fmt.Fprintln(cmd.out, "Audio Report")
	fmt.Fprintln(cmd.out, "============")
	fmt.Fprintf(cmd.out, "Sheet: %s\n", cmd.CSVPath)
	fmt.Fprintf(cmd.out, "Audio: %s\n\n", library.Dir())

	if len(missing) == 0 {
		fmt.Fprintln(cmd.out, "All cue audio files are present")
		return nil
	}

	w := tabwriter.NewWriter(cmd.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tCUE\tFILE\tTEXT")
	for _, m := range missing {
		fmt.Fprintf(w, "%03d\t%s\t%s\t%s\n", m.Index, m.Cue, m.Filename, m.Text)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "\n%d missing cue files\n", len(missing))
	return nil
}

func checkedRecords(records []entities.VocabularyRecord, start int) int {
	n := 0
	for _, record := range records {
		if record.Index >= start {
			n++
		}
	}
	return n
}
