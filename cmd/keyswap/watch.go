package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/keyswap"
)

// watch tokenizes Input into Output once, then again after every write to
// Input, until ctx is cancelled. Conversion failures are logged and skipped.
func (c *commander) watch(ctx context.Context) error {
	if c.cfg.Input == "" || c.cfg.Output == "" {
		return errors.New("watch requires -in and -out")
	}
	same, err := samePath(c.cfg.Input, c.cfg.Output)
	if err != nil {
		return err
	}
	if same {
		// Writing the output would trigger another refresh.
		return fmt.Errorf("watch -in and -out must differ, both are %s", c.cfg.Input)
	}
	proc, err := c.processor()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(c.cfg.Input)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", c.cfg.Input, err)
	}

	c.refresh(ctx, proc)
	c.logger.Info("watching", slog.String("input", c.cfg.Input), slog.String("output", c.cfg.Output))

	baseName := filepath.Base(c.cfg.Input)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			c.refresh(ctx, proc)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// refresh rewrites Output from the current contents of Input.
func (c *commander) refresh(ctx context.Context, proc *keyswap.Processor) {
	data, err := os.ReadFile(c.cfg.Input)
	if err != nil {
		c.logger.Warn("read failed", slog.String("input", c.cfg.Input), slog.Any("error", err))
		return
	}
	out, err := proc.Tokenize(ctx, data)
	if err != nil {
		c.logger.Warn("tokenize failed", slog.String("input", c.cfg.Input), slog.Any("error", err))
		return
	}
	if err := os.WriteFile(c.cfg.Output, out, 0o644); err != nil {
		c.logger.Warn("write failed", slog.String("output", c.cfg.Output), slog.Any("error", err))
		return
	}
	c.logger.Debug("refreshed", slog.Int("bytes", len(out)))
}

// samePath reports whether a and b name the same file once made absolute.
func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
