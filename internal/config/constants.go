package config

const (
	// DefaultDatabasePath holds the learned-word marks.
	DefaultDatabasePath = "./wortschatz.db"

	// DefaultCSVPath is the headerless four-column vocabulary sheet.
	DefaultCSVPath = "./SingeSheet.csv"

	DefaultAudioDir = "./german_audio"
)

// DefaultAllowedOrigins are the local frontend dev servers.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}
