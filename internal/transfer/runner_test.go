package transfer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"mixport/internal/catalog"
	"mixport/internal/config"
	"mixport/internal/matching"
	"mixport/internal/naming"
	"mixport/internal/report"
	"mixport/internal/services"
	"mixport/internal/source"
	"mixport/internal/testsupport"
	"mixport/internal/transfer"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fakeLister struct {
	items []source.Item
	err   error
	refs  []string
}

func (f *fakeLister) ListItems(_ context.Context, ref string) ([]source.Item, error) {
	f.refs = append(f.refs, ref)
	return f.items, f.err
}

type fakeSearcher struct {
	library map[string]matching.Candidate
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]matching.Candidate, error) {
	lower := strings.ToLower(query)
	for key, candidate := range f.library {
		if strings.Contains(lower, key) {
			return []matching.Candidate{candidate}, nil
		}
	}
	return nil, nil
}

type createCall struct {
	name, description string
	public            bool
}

type fakeMutator struct {
	existing  []catalog.Collection
	created   []createCall
	added     [][]string
	createErr error
}

func (f *fakeMutator) CreateCollection(_ context.Context, name, description string, public bool) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, createCall{name: name, description: description, public: public})
	return "pl1", nil
}

func (f *fakeMutator) AddItems(_ context.Context, _ string, refs []string) error {
	f.added = append(f.added, slices.Clone(refs))
	return nil
}

func (f *fakeMutator) ListCollections(context.Context) ([]catalog.Collection, error) {
	return f.existing, nil
}

func (f *fakeMutator) CollectionURL(id string) string {
	return "https://open.spotify.com/playlist/" + id
}

type recordingNotifier struct {
	completed []*report.Report
	failed    []error
}

func (n *recordingNotifier) NotifyTransferCompleted(_ context.Context, r *report.Report) error {
	n.completed = append(n.completed, r)
	return nil
}

func (n *recordingNotifier) NotifyTransferFailed(_ context.Context, _ string, err error) error {
	n.failed = append(n.failed, err)
	return nil
}

func (n *recordingNotifier) TestNotification(context.Context) error { return nil }

type harness struct {
	cfg      *config.Config
	lister   *fakeLister
	mutator  *fakeMutator
	notifier *recordingNotifier
	progress []transfer.Progress
}

func defaultItems() []source.Item {
	return []source.Item{
		{ID: "v1", Title: "Rema - Calm Down (Official Video)"},
		{ID: "v2", Title: "Burna Boy - Last Last [Official Music Video]"},
		{ID: "v3", Title: "Random Vlog Footage"},
	}
}

func newHarness(t *testing.T, items []source.Item) *harness {
	t.Helper()
	return &harness{
		cfg:      testsupport.NewConfig(t),
		lister:   &fakeLister{items: items},
		mutator:  &fakeMutator{},
		notifier: &recordingNotifier{},
	}
}

func (h *harness) runner(t *testing.T, opts ...transfer.Option) *transfer.Runner {
	t.Helper()
	searcher := &fakeSearcher{library: map[string]matching.Candidate{
		"calm down": {ID: "t1", Name: "Calm Down", Artists: []string{"Rema"}, URI: "spotify:track:t1", Popularity: 100},
		"last last": {ID: "t2", Name: "Last Last", Artists: []string{"Burna Boy"}, URI: "spotify:track:t2", Popularity: 100},
	}}
	base := []transfer.Option{
		transfer.WithClock(func() time.Time { return fixedNow }),
		transfer.WithRunIDs(func() string { return "run-1" }),
		transfer.WithPicker(naming.FixedPicker(0)),
		transfer.WithProgress(func(p transfer.Progress) { h.progress = append(h.progress, p) }),
	}
	runner, err := transfer.New(h.cfg, transfer.Deps{
		Lister:   h.lister,
		Searcher: searcher,
		Mutator:  h.mutator,
		Notifier: h.notifier,
	}, append(base, opts...)...)
	if err != nil {
		t.Fatalf("transfer.New: %v", err)
	}
	return runner
}

func TestRunCreatesPlaylist(t *testing.T) {
	h := newHarness(t, defaultItems())
	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: " https://youtube.com/playlist?list=PL1 ", Name: "Road Trip"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(h.lister.refs) != 1 || h.lister.refs[0] != "https://youtube.com/playlist?list=PL1" {
		t.Fatalf("expected trimmed ref, got %v", h.lister.refs)
	}
	if rep.RunID != "run-1" || rep.TotalItems != 3 || len(rep.Found) != 2 || len(rep.NotFound) != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.NotFound[0] != "Random Vlog Footage" {
		t.Fatalf("unexpected not found list %v", rep.NotFound)
	}
	want := createCall{name: "Road Trip", description: "Imported from YouTube on 15/10/2026", public: true}
	if len(h.mutator.created) != 1 || h.mutator.created[0] != want {
		t.Fatalf("unexpected create calls %+v", h.mutator.created)
	}
	if len(h.mutator.added) != 1 || !slices.Equal(h.mutator.added[0], []string{"spotify:track:t1", "spotify:track:t2"}) {
		t.Fatalf("unexpected added items %v", h.mutator.added)
	}
	if rep.PlaylistURL != "https://open.spotify.com/playlist/pl1" {
		t.Fatalf("unexpected playlist url %q", rep.PlaylistURL)
	}
	if rep.ExitCode() != services.ExitOK {
		t.Fatalf("expected success exit code, got %d", rep.ExitCode())
	}

	if len(h.progress) != 3 || h.progress[0].Match == nil || h.progress[2].Match != nil || h.progress[2].Total != 3 {
		t.Fatalf("unexpected progress %+v", h.progress)
	}
	if len(h.notifier.completed) != 1 || len(h.notifier.failed) != 0 {
		t.Fatalf("expected one completion notification, got %+v", h.notifier)
	}

	stem := rep.FileStem()
	for _, ext := range []string{".txt", ".json"} {
		if _, err := os.Stat(filepath.Join(h.cfg.Paths.ReportDir, stem+ext)); err != nil {
			t.Fatalf("expected report %s: %v", ext, err)
		}
	}
}

func TestRunGeneratesIdentityFromMatches(t *testing.T) {
	h := newHarness(t, defaultItems())
	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := naming.NewGenerator(naming.FixedPicker(0)).CreateIdentity([]string{"Calm Down - Rema", "Last Last - Burna Boy"})
	if rep.PlaylistName != want.Name || rep.PlaylistDescription != want.Description {
		t.Fatalf("identity mismatch: got %q/%q want %q/%q", rep.PlaylistName, rep.PlaylistDescription, want.Name, want.Description)
	}
	if h.mutator.created[0].description != want.Description {
		t.Fatalf("expected generated description, got %q", h.mutator.created[0].description)
	}
}

func TestRunKeepsExplicitDescription(t *testing.T) {
	h := newHarness(t, defaultItems())
	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref", Description: "for the drive"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.PlaylistDescription != "for the drive" || h.mutator.created[0].description != "for the drive" {
		t.Fatalf("explicit description not kept: %+v", h.mutator.created)
	}
	if rep.PlaylistName == "" {
		t.Fatal("expected generated name")
	}
}

func TestRunReportOnlySkipsCatalogWrites(t *testing.T) {
	h := newHarness(t, defaultItems())
	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref", Name: "Dry", ReportOnly: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.mutator.created) != 0 || rep.PlaylistURL != "" || !rep.ReportOnly {
		t.Fatalf("expected no catalog writes, got %+v", h.mutator.created)
	}
}

func TestRunExistingPlaylistRequiresForce(t *testing.T) {
	h := newHarness(t, defaultItems())
	h.mutator.existing = []catalog.Collection{{ID: "old", Name: " road TRIP "}}

	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref", Name: "Road Trip"})
	if !errors.Is(err, services.ErrValidation) || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists validation error, got %v", err)
	}
	if rep == nil || len(rep.Found) != 2 {
		t.Fatalf("expected report with matches, got %+v", rep)
	}
	if len(h.mutator.created) != 0 {
		t.Fatal("playlist must not be created without force")
	}
	if len(h.notifier.failed) != 1 {
		t.Fatalf("expected failure notification, got %d", len(h.notifier.failed))
	}

	h.notifier = &recordingNotifier{}
	if _, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref", Name: "Road Trip", Force: true}); err != nil {
		t.Fatalf("forced Run: %v", err)
	}
	if len(h.mutator.created) != 1 {
		t.Fatalf("expected forced creation, got %d", len(h.mutator.created))
	}
}

func TestRunPrivatePlaylist(t *testing.T) {
	h := newHarness(t, defaultItems())
	if _, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref", Name: "Mine", Private: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.mutator.created[0].public {
		t.Fatal("expected private playlist")
	}
}

func TestRunBatchesItemAdds(t *testing.T) {
	items := []source.Item{
		{Title: "Rema - Calm Down"},
		{Title: "Burna Boy - Last Last"},
		{Title: "Rema - Calm Down (Live)"},
	}
	h := newHarness(t, items)
	h.cfg.Playlist.BatchSize = 2
	if _, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref", Name: "Batches"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.mutator.added) != 2 || len(h.mutator.added[0]) != 2 || len(h.mutator.added[1]) != 1 {
		t.Fatalf("unexpected batches %v", h.mutator.added)
	}
}

func TestRunNoMatchesSkipsCreation(t *testing.T) {
	h := newHarness(t, []source.Item{{Title: "Random Vlog Footage"}, {Title: "Cooking Stream"}})
	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.PlaylistName != "YouTube Playlist 15-10-2026" {
		t.Fatalf("unexpected fallback name %q", rep.PlaylistName)
	}
	if len(h.mutator.created) != 0 {
		t.Fatal("expected no playlist without matches")
	}
	if rep.ExitCode() != services.ExitFailure {
		t.Fatalf("expected failure exit code, got %d", rep.ExitCode())
	}
}

func TestRunMaxTracks(t *testing.T) {
	h := newHarness(t, defaultItems())
	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref", Name: "Two", MaxTracks: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.TotalItems != 2 || len(h.progress) != 2 {
		t.Fatalf("expected 2 processed items, got total=%d progress=%d", rep.TotalItems, len(h.progress))
	}
}

func TestRunEmptyPlaylist(t *testing.T) {
	h := newHarness(t, nil)
	rep, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "ref"})
	if !errors.Is(err, services.ErrNotFound) || rep != nil {
		t.Fatalf("expected not found without report, got %v %+v", err, rep)
	}
}

func TestRunListerErrorPassesThrough(t *testing.T) {
	h := newHarness(t, nil)
	h.lister.err = services.Wrap(services.ErrValidation, "youtube", "list items", "invalid playlist url", nil)
	_, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "not a url"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(h.notifier.failed) != 1 {
		t.Fatal("expected failure notification")
	}
}

func TestRunRequiresSourceRef(t *testing.T) {
	h := newHarness(t, defaultItems())
	if _, err := h.runner(t).Run(context.Background(), transfer.Options{SourceRef: "  "}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(h.lister.refs) != 0 {
		t.Fatal("lister must not be called")
	}
}

func TestRunCancellationReturnsPartialReport(t *testing.T) {
	h := newHarness(t, defaultItems())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := h.runner(t, transfer.WithProgress(func(transfer.Progress) { cancel() }))

	rep, err := runner.Run(ctx, transfer.Options{SourceRef: "ref", Name: "Stop"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if rep == nil || len(rep.Found)+len(rep.NotFound) != 1 {
		t.Fatalf("expected one processed item, got %+v", rep)
	}
	if len(h.mutator.created) != 0 || len(h.notifier.failed) != 0 {
		t.Fatal("cancelled runs must not create playlists or notify")
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := transfer.New(cfg, transfer.Deps{}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
