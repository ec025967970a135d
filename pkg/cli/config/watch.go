package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// WatchPublisherFile monitors the publisher config file and calls onChange
// with the newly loaded configuration each time the file is written. It
// blocks until ctx is cancelled. When a reload fails the previous
// configuration stays active and onChange is not called.
func WatchPublisherFile(ctx context.Context, path string, onChange func(*model.PublisherConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return goerr.Wrap(err, "failed to create config watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return goerr.Wrap(err, "failed to watch publisher config file", goerr.V("path", path))
	}

	logger := ctxlog.From(ctx)
	logger.Info("Watching publisher config file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, which surfaces as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadPublisherFile(path)
			if err != nil {
				logger.Error("Failed to reload publisher config, keeping previous",
					"path", path,
					"error", err,
				)
				continue
			}

			logger.Info("Publisher config reloaded", "path", path)
			onChange(cfg)

			// An atomic save may have replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Config watcher error", "error", err)
		}
	}
}
