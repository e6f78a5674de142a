package transfer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mixport/internal/catalog"
	"mixport/internal/config"
	"mixport/internal/logging"
	"mixport/internal/matching"
	"mixport/internal/naming"
	"mixport/internal/notifications"
	"mixport/internal/report"
	"mixport/internal/services"
	"mixport/internal/source"
	"mixport/internal/titles"
)

const component = "transfer"

// Options selects what a single run does.
type Options struct {
	SourceRef   string
	Name        string
	Description string
	Private     bool
	Force       bool
	ReportOnly  bool
	MaxTracks   int
}

// Progress describes one processed source item.
type Progress struct {
	Index int
	Total int
	Title string
	Match *matching.Scored
}

// ProgressFunc receives per-item progress in source order.
type ProgressFunc func(Progress)

// Deps are the collaborators a Runner drives.
type Deps struct {
	Lister   source.Lister
	Searcher catalog.Searcher
	Mutator  catalog.Mutator
	Notifier notifications.Service
}

// Runner executes transfers.
type Runner struct {
	lister     source.Lister
	mutator    catalog.Mutator
	notifier   notifications.Service
	boundary   *catalog.Boundary
	selector   *matching.Selector
	generator  *naming.Generator
	logger     *slog.Logger
	reportDir  string
	lockPath   string
	maxQueries int
	batchSize  int
	public     bool
	now        func() time.Time
	newRunID   func() string
	progress   ProgressFunc
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProgress registers a callback invoked after each source item.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// WithPicker makes generated names deterministic.
func WithPicker(picker naming.Picker) Option {
	return func(r *Runner) {
		r.generator = naming.NewGenerator(picker)
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRunIDs overrides uuid generation for run identifiers.
func WithRunIDs(next func() string) Option {
	return func(r *Runner) {
		if next != nil {
			r.newRunID = next
		}
	}
}

// New builds a Runner from cfg and deps.
func New(cfg *config.Config, deps Deps, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "config is required", nil)
	}
	if deps.Lister == nil || deps.Searcher == nil || deps.Mutator == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "lister, searcher and mutator are required", nil)
	}

	r := &Runner{
		lister:     deps.Lister,
		mutator:    deps.Mutator,
		notifier:   deps.Notifier,
		generator:  naming.NewGenerator(nil),
		logger:     logging.NewNop(),
		reportDir:  cfg.Paths.ReportDir,
		lockPath:   cfg.LockPath(),
		maxQueries: cfg.Matching.MaxSearchQueries,
		batchSize:  cfg.Playlist.BatchSize,
		public:     cfg.Playlist.Public,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.notifier == nil {
		r.notifier = notifications.NewService(nil)
	}
	r.logger = logging.NewComponentLogger(r.logger, component)

	r.boundary = catalog.NewBoundary(deps.Searcher,
		catalog.WithDelay(cfg.RequestDelay()),
		catalog.WithLogger(r.logger))
	r.selector = matching.NewSelector(r.boundary.Search,
		matching.WithThreshold(cfg.Matching.RelevanceThreshold),
		matching.WithFanOut(cfg.Matching.SearchLimit),
		matching.WithLogger(r.logger))
	return r, nil
}

// Run executes one transfer. A report is returned whenever matching
// started, including when a later step fails or the context is cancelled.
func (r *Runner) Run(ctx context.Context, opts Options) (*report.Report, error) {
	runID := r.newRunID()
	ctx = services.WithRunID(ctx, runID)

	rep, err := r.run(ctx, runID, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		if notifyErr := r.notifier.NotifyTransferFailed(context.WithoutCancel(ctx), opts.SourceRef, err); notifyErr != nil {
			logging.WithContext(ctx, r.logger).Debug("failure notification failed", logging.Error(notifyErr))
		}
	}
	return rep, err
}

func (r *Runner) run(ctx context.Context, runID string, opts Options) (*report.Report, error) {
	logger := logging.WithContext(ctx, r.logger)
	started := r.now()

	ref := strings.TrimSpace(opts.SourceRef)
	if ref == "" {
		return nil, services.Wrap(services.ErrValidation, component, "validate", "source playlist reference is required", nil)
	}

	items, err := r.lister.ListItems(services.WithStep(ctx, "list"), ref)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, services.Wrap(services.ErrNotFound, component, "list", "playlist has no usable videos", nil)
	}
	if opts.MaxTracks > 0 && len(items) > opts.MaxTracks {
		logger.Info("limiting transfer to first tracks",
			logging.Int("available", len(items)),
			logging.Int("max_tracks", opts.MaxTracks))
		items = items[:opts.MaxTracks]
	}

	rep := report.New(runID, ref, started)
	rep.TotalItems = len(items)
	rep.ReportOnly = opts.ReportOnly
	logger.Info("transfer started",
		logging.String("source", ref),
		logging.Int("items", len(items)),
		logging.Bool("report_only", opts.ReportOnly))

	if err := r.match(ctx, rep, items); err != nil {
		rep.Finish(r.now())
		return rep, err
	}

	r.applyIdentity(rep, opts)

	if !opts.ReportOnly {
		if len(rep.Found) == 0 {
			logging.WarnWithContext(logger, "no tracks matched; playlist not created", "no_matches",
				logging.Int("items", rep.TotalItems),
				logging.String(logging.FieldErrorHint, "check the titles with mixport match"),
				logging.String(logging.FieldImpact, "no playlist will be created"))
		} else if err := r.publish(services.WithStep(ctx, "publish"), rep, opts); err != nil {
			rep.Finish(r.now())
			r.persist(ctx, rep)
			return rep, err
		}
	}

	rep.Finish(r.now())
	r.persist(ctx, rep)
	logger.Info("transfer finished",
		logging.String("playlist", rep.PlaylistName),
		logging.Int("found", len(rep.Found)),
		logging.Int("not_found", len(rep.NotFound)),
		logging.Float64("success_rate", rep.SuccessRate()),
		logging.Duration("elapsed", rep.ProcessingTime))

	if err := r.notifier.NotifyTransferCompleted(ctx, rep); err != nil {
		logging.WarnWithContext(logger, "completion notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
			logging.String(logging.FieldImpact, "transfer result was not pushed"))
	}
	return rep, nil
}

// match resolves every item in source order. A miss never stops the batch.
func (r *Runner) match(ctx context.Context, rep *report.Report, items []source.Item) error {
	ctx = services.WithStep(ctx, "match")
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		trackCtx := services.WithTrackIndex(ctx, i+1)

		queries := titles.SearchQueries(item.Title)
		if r.maxQueries > 0 && len(queries) > r.maxQueries {
			queries = queries[:r.maxQueries]
		}

		progress := Progress{Index: i + 1, Total: len(items), Title: item.Title}
		if best, ok := r.selector.FindBestMatch(trackCtx, queries, item.Title); ok {
			rep.AddFound(item.Title, best)
			progress.Match = &best
		} else {
			rep.AddNotFound(item.Title)
		}
		if r.progress != nil {
			r.progress(progress)
		}
	}
	return ctx.Err()
}

// applyIdentity fills the playlist name and description, generating them
// from the matched tracks when the caller gave none.
func (r *Runner) applyIdentity(rep *report.Report, opts Options) {
	name := strings.TrimSpace(opts.Name)
	description := strings.TrimSpace(opts.Description)

	if name == "" && len(rep.Found) > 0 {
		labels := make([]string, 0, len(rep.Found))
		for _, f := range rep.Found {
			labels = append(labels, trackLabel(f))
		}
		identity := r.generator.CreateIdentity(labels)
		name = identity.Name
		if description == "" {
			description = identity.Description
		}
	}
	if name == "" {
		name = "YouTube Playlist " + r.now().Format("02-01-2006")
	}
	rep.PlaylistName = name
	rep.PlaylistDescription = description
}

func trackLabel(f report.FoundTrack) string {
	if f.Artists == "" {
		return f.Name
	}
	return f.Name + " - " + f.Artists
}

func (r *Runner) persist(ctx context.Context, rep *report.Report) {
	logger := logging.WithContext(ctx, r.logger)
	textPath, err := rep.WriteText(r.reportDir)
	if err == nil {
		_, err = rep.WriteJSON(r.reportDir)
	}
	if err != nil {
		logging.WarnWithContext(logger, "report write failed", "report_write_failed",
			logging.String("dir", r.reportDir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.report_dir permissions"),
			logging.String(logging.FieldImpact, "transfer report not saved"))
		return
	}
	logger.Info("report saved", logging.String("path", textPath))
}
