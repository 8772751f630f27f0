package domain

import "context"

// ArtifactFileName is the fixed name of the exported file.
const ArtifactFileName = "selected_db_configs.json"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

type Fetcher interface {
	FetchProfiles(ctx context.Context) (ProfileList, error)
}

type Notifier interface {
	Notify(title, message string, severity Severity)
}

// Row is one selectable entry of the selection surface. Index is the position
// in the snapshot the row was built from.
type Row struct {
	Index int
	Label string
}

type Surface interface {
	Open(rows []Row)
	Close()
	IsOpen() bool
}

type ArtifactSink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type Artifact struct {
	FileName string
	Data     []byte
	Count    int
	Path     string
}
