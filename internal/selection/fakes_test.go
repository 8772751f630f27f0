package selection

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/johanforsgren/profilexport/internal/domain"
)

type notification struct {
	title    string
	message  string
	severity domain.Severity
}

type mockNotifier struct {
	notifications []notification
}

func (m *mockNotifier) Notify(title, message string, severity domain.Severity) {
	m.notifications = append(m.notifications, notification{title: title, message: message, severity: severity})
}

func (m *mockNotifier) last() notification {
	if len(m.notifications) == 0 {
		return notification{}
	}
	return m.notifications[len(m.notifications)-1]
}

type mockSurface struct {
	open       bool
	rows       []domain.Row
	openCalls  int
	closeCalls int
}

func (m *mockSurface) Open(rows []domain.Row) {
	m.open = true
	m.rows = rows
	m.openCalls++
}

func (m *mockSurface) Close() {
	m.open = false
	m.rows = nil
	m.closeCalls++
}

func (m *mockSurface) IsOpen() bool {
	return m.open
}

type mockSink struct {
	saved map[string][]byte
	err   error
}

func (m *mockSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[name] = data
	return filepath.Join("/downloads", name), nil
}

type harness struct {
	session  *Session
	selector *Selector
	exporter *Exporter
	notifier *mockNotifier
	surface  *mockSurface
	sink     *mockSink
}

func newHarness() *harness {
	h := &harness{
		session:  NewSession(),
		notifier: &mockNotifier{},
		surface:  &mockSurface{},
		sink:     &mockSink{},
	}
	h.selector = NewSelector(h.session, h.surface, h.notifier)
	h.exporter = NewExporter(h.session, h.sink, h.surface, h.notifier)
	return h
}

func mustProfiles(t *testing.T, raw string) domain.ProfileList {
	t.Helper()
	var list domain.ProfileList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	return list
}

const threeProfiles = `[
	{"alias":"Prod","type":"postgres","host":"db1","port":5432,"database":"app","password":"p1"},
	{"name":"reporting","type":"mysql","host":"db2","port":"3306","user":"ro","password":"p2"},
	{"host":"db3","port":1433,"password":"p3","id":"c3"}
]`
