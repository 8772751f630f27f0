package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
)

const (
	MsgSelectAtLeastOne = "Select at least one profile to export."
	MsgSnapshotMissing  = "Could not load any selected profile. Reload and try again."
	MsgSaveFailed       = "Could not write the export file: %v"
	MsgExported         = "Exported %d profile(s) to %s."
)

// Exporter writes the checked profiles of a Session to an ArtifactSink.
type Exporter struct {
	session  *Session
	sink     domain.ArtifactSink
	surface  domain.Surface
	notifier domain.Notifier
}

func NewExporter(session *Session, sink domain.ArtifactSink, surface domain.Surface, notifier domain.Notifier) *Exporter {
	return &Exporter{
		session:  session,
		sink:     sink,
		surface:  surface,
		notifier: notifier,
	}
}

// ExportSelected exports the indices currently checked in the session.
func (e *Exporter) ExportSelected(ctx context.Context) (*domain.Artifact, error) {
	return e.Export(ctx, e.session.Checked())
}

// Export resolves indices against the session snapshot and saves the result.
// Unresolvable indices are skipped; the surface stays open on any failure.
func (e *Exporter) Export(ctx context.Context, indices []int) (*domain.Artifact, error) {
	if len(indices) == 0 {
		e.notifier.Notify("Info", MsgSelectAtLeastOne, domain.SeverityInfo)
		return nil, domain.ErrSelectionEmpty
	}

	batch := e.resolve(indices)
	if len(batch) == 0 {
		logger.LogError("EXPORT", "selection", domain.ErrSnapshotMissing)
		e.notifier.Notify("Error", MsgSnapshotMissing, domain.SeverityDanger)
		return nil, domain.ErrSnapshotMissing
	}

	data, err := Encode(batch)
	if err != nil {
		logger.LogError("EXPORT_ENCODE", domain.ArtifactFileName, err)
		e.notifier.Notify("Error", fmt.Sprintf(MsgSaveFailed, err), domain.SeverityDanger)
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	path, err := e.sink.Save(ctx, domain.ArtifactFileName, data)
	if err != nil {
		logger.LogError("EXPORT_SAVE", domain.ArtifactFileName, err)
		e.notifier.Notify("Error", fmt.Sprintf(MsgSaveFailed, err), domain.SeverityDanger)
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	artifact := &domain.Artifact{
		FileName: domain.ArtifactFileName,
		Data:     data,
		Count:    len(batch),
		Path:     path,
	}

	logger.Log("Exporter: exported %d profiles from snapshot %s", artifact.Count, e.session.Generation())
	e.surface.Close()
	e.notifier.Notify("Success", fmt.Sprintf(MsgExported, artifact.Count, path), domain.SeveritySuccess)

	return artifact, nil
}

func (e *Exporter) resolve(indices []int) domain.ProfileList {
	if !e.session.HasSnapshot() {
		logger.LogWarn("Exporter: no snapshot held, %d index(es) cannot resolve", len(indices))
		return nil
	}

	ordered := append([]int(nil), indices...)
	sort.Ints(ordered)

	batch := make(domain.ProfileList, 0, len(ordered))
	for i, index := range ordered {
		if i > 0 && ordered[i-1] == index {
			continue
		}
		profile, ok := e.session.Lookup(index)
		if !ok {
			logger.LogWarn("Exporter: index %d not in snapshot %q (%d profiles), skipping", index, e.session.Generation(), e.session.Len())
			continue
		}
		batch = append(batch, profile)
	}
	return batch
}

// Encode renders batch as a 2-space indented JSON array with a trailing newline.
func Encode(batch domain.ProfileList) ([]byte, error) {
	if batch == nil {
		batch = domain.ProfileList{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
