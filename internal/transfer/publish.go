package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"mixport/internal/catalog"
	"mixport/internal/logging"
	"mixport/internal/report"
	"mixport/internal/services"
)

const lockRetryDelay = 250 * time.Millisecond

// publish creates the playlist and adds the matched tracks while holding
// the transfer lock.
func (r *Runner) publish(ctx context.Context, rep *report.Report, opts Options) error {
	logger := logging.WithContext(ctx, r.logger)

	lock := flock.New(r.lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return services.Wrap(services.ErrTransient, component, "lock", "acquire transfer lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, component, "lock", "transfer lock unavailable", nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("release transfer lock failed", logging.Error(err))
		}
	}()

	existing, exists, err := catalog.FindCollection(ctx, r.mutator, rep.PlaylistName)
	if err != nil {
		return err
	}
	if exists && !opts.Force {
		return services.Wrap(services.ErrValidation, component, "create playlist",
			fmt.Sprintf("playlist %q already exists (use --force to create another)", existing.Name), nil)
	}
	if exists {
		logger.Info("creating playlist despite existing name",
			logging.String("playlist", existing.Name),
			logging.String("existing_id", existing.ID))
	}

	description := rep.PlaylistDescription
	if description == "" {
		description = "Imported from YouTube on " + r.now().Format("02/01/2006")
		rep.PlaylistDescription = description
	}
	public := r.public && !opts.Private

	id, err := r.mutator.CreateCollection(ctx, rep.PlaylistName, description, public)
	if err != nil {
		return err
	}
	rep.PlaylistURL = r.mutator.CollectionURL(id)
	logger.Info("playlist created",
		logging.String("playlist", rep.PlaylistName),
		logging.String("playlist_id", id),
		logging.Bool("public", public))

	uris := rep.URIs()
	if err := catalog.AddItems(ctx, r.mutator, id, uris, r.batchSize); err != nil {
		return err
	}
	logger.Info("tracks added", logging.Int("count", len(uris)))
	return nil
}
