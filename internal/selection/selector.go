package selection

import (
	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
)

const (
	MsgFetchFailed = "Could not retrieve saved profiles. Save a profile before exporting."
	MsgNoProfiles  = "No saved profiles found."
)

// Selector turns a fetched profile list into an open selection surface.
type Selector struct {
	session  *Session
	surface  domain.Surface
	notifier domain.Notifier
}

func NewSelector(session *Session, surface domain.Surface, notifier domain.Notifier) *Selector {
	return &Selector{
		session:  session,
		surface:  surface,
		notifier: notifier,
	}
}

func (s *Selector) Session() *Session {
	return s.session
}

// Present replaces the snapshot with list and opens the surface. An empty or
// nil list leaves both the snapshot and the surface untouched.
func (s *Selector) Present(list domain.ProfileList) error {
	if len(list) == 0 {
		logger.Log("Selector: fetched list is empty, not opening selection")
		s.notifier.Notify("Info", MsgNoProfiles, domain.SeverityInfo)
		return domain.ErrEmptyList
	}

	previous := s.session.Generation()
	generation := s.session.Replace(list)
	if previous != "" {
		logger.Log("Selector: snapshot %s replaced by %s (%d profiles)", previous, generation, len(list))
	} else {
		logger.Log("Selector: snapshot %s installed (%d profiles)", generation, len(list))
	}

	s.surface.Open(s.session.Rows())
	return nil
}

// FetchFailed reports a failed fetch. The surface is not opened.
func (s *Selector) FetchFailed(err error) {
	logger.LogError("FETCH_PROFILES", "selector", err)
	s.notifier.Notify("Info", MsgFetchFailed, domain.SeverityInfo)
}

// Dismiss closes the surface. The snapshot is kept until the next fetch.
func (s *Selector) Dismiss() {
	if !s.surface.IsOpen() {
		return
	}
	logger.Log("Selector: selection dismissed")
	s.surface.Close()
}
