package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
	"github.com/johanforsgren/profilexport/internal/selection"
)

// Surface is the selection surface used without a terminal UI: it only
// remembers the rows it was opened with.
type Surface struct {
	rows []domain.Row
	open bool
}

func (s *Surface) Open(rows []domain.Row) {
	s.rows = rows
	s.open = true
}

func (s *Surface) Close() {
	s.rows = nil
	s.open = false
}

func (s *Surface) IsOpen() bool {
	return s.open
}

func (s *Surface) Rows() []domain.Row {
	return s.rows
}

type Runner struct {
	fetcher  domain.Fetcher
	selector *selection.Selector
	exporter *selection.Exporter
	surface  *Surface
	out      io.Writer
}

func NewRunner(fetcher domain.Fetcher, sink domain.ArtifactSink, notifier domain.Notifier, out io.Writer) *Runner {
	session := selection.NewSession()
	surface := &Surface{}
	return &Runner{
		fetcher:  fetcher,
		selector: selection.NewSelector(session, surface, notifier),
		exporter: selection.NewExporter(session, sink, surface, notifier),
		surface:  surface,
		out:      out,
	}
}

func (r *Runner) open(ctx context.Context) error {
	profiles, err := r.fetcher.FetchProfiles(ctx)
	if err != nil {
		r.selector.FetchFailed(err)
		return err
	}
	return r.selector.Present(profiles)
}

// List prints one numbered line per saved profile.
func (r *Runner) List(ctx context.Context) error {
	if err := r.open(ctx); err != nil {
		return err
	}
	for _, row := range r.surface.Rows() {
		fmt.Fprintf(r.out, "%3d. %s\n", row.Index+1, row.Label)
	}
	r.selector.Dismiss()
	return nil
}

// Export fetches the profiles and exports the given 0-based indices, or every
// profile when all is set.
func (r *Runner) Export(ctx context.Context, indices []int, all bool) (*domain.Artifact, error) {
	if err := r.open(ctx); err != nil {
		return nil, err
	}

	if all {
		r.selector.Session().SetAll(true)
		indices = r.selector.Session().Checked()
	}

	artifact, err := r.exporter.Export(ctx, indices)
	if err != nil {
		r.selector.Dismiss()
		return nil, err
	}
	return artifact, nil
}

// MaxPositions bounds how many positions one selection may expand to.
const MaxPositions = 10000

// ParseSelection turns "1,3,5-7" (1-based, as printed by List) into 0-based indices.
func ParseSelection(positions string) ([]int, error) {
	var indices []int
	for _, part := range strings.Split(positions, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := parsePosition(lo)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parsePosition(hi); err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("invalid range %q", part)
			}
		}
		if end-start+1 > MaxPositions-len(indices) {
			return nil, fmt.Errorf("selection %q expands to more than %d positions", part, MaxPositions)
		}

		for p := start; p <= end; p++ {
			indices = append(indices, p-1)
		}
	}

	if len(indices) == 0 {
		return nil, errors.New("empty selection")
	}
	logger.Log("Headless: parsed selection %q into %d indices", positions, len(indices))
	return indices, nil
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: expected a number starting at 1", s)
	}
	return n, nil
}
