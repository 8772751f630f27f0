package selection

import (
	"sort"

	"github.com/google/uuid"

	"github.com/johanforsgren/profilexport/internal/domain"
)

// Session owns the most recently fetched profiles and the indices the user
// has checked. It is confined to the UI update loop and is not safe for
// concurrent use.
type Session struct {
	generation string
	profiles   domain.ProfileList
	checked    map[int]struct{}
}

func NewSession() *Session {
	return &Session{checked: make(map[int]struct{})}
}

// Replace installs list as the current snapshot and discards the selection,
// whose indices may now point at different profiles.
func (s *Session) Replace(list domain.ProfileList) string {
	s.generation = uuid.New().String()
	s.profiles = list
	s.checked = make(map[int]struct{})
	return s.generation
}

func (s *Session) Generation() string {
	return s.generation
}

func (s *Session) HasSnapshot() bool {
	return s.profiles != nil
}

func (s *Session) Len() int {
	return len(s.profiles)
}

// Lookup returns a deep copy of the profile at index.
func (s *Session) Lookup(index int) (domain.Profile, bool) {
	if s.profiles == nil || index < 0 || index >= len(s.profiles) {
		return domain.Profile{}, false
	}
	return s.profiles[index].Clone(), true
}

func (s *Session) Rows() []domain.Row {
	rows := make([]domain.Row, len(s.profiles))
	for i, p := range s.profiles {
		rows[i] = domain.Row{Index: i, Label: p.Label(i)}
	}
	return rows
}

func (s *Session) Toggle(index int) bool {
	if index < 0 || index >= len(s.profiles) {
		return false
	}
	if _, ok := s.checked[index]; ok {
		delete(s.checked, index)
		return false
	}
	s.checked[index] = struct{}{}
	return true
}

func (s *Session) IsChecked(index int) bool {
	_, ok := s.checked[index]
	return ok
}

func (s *Session) SetAll(checked bool) {
	s.checked = make(map[int]struct{})
	if !checked {
		return
	}
	for i := range s.profiles {
		s.checked[i] = struct{}{}
	}
}

// Checked returns the checked indices in ascending order.
func (s *Session) Checked() []int {
	indices := make([]int, 0, len(s.checked))
	for i := range s.checked {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}
