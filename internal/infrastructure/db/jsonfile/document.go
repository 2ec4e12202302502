package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/metrics"
)

const corruptSuffix = ".corrupt"

// document is one JSON file on disk.
type document struct {
	path   string
	store  string
	logger zerolog.Logger
}

func newDocument(path, store string, logger zerolog.Logger) document {
	return document{
		path:   path,
		store:  store,
		logger: logger.With().Str("store", store).Str("path", path).Logger(),
	}
}

// load decodes the document into a fresh T. An absent file gives the zero T.
// An unreadable or malformed file is logged and also gives the zero T; a
// malformed file is renamed to <path>.corrupt first so a later save cannot
// overwrite it.
func load[T any](d document) T {
	var out T
	raw, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		d.logger.Debug().Msg("document absent, starting empty")
		return out
	}
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(d.store, "load").Inc()
		d.logger.Warn().Err(err).Msg("document unreadable, starting empty")
		return out
	}
	if len(raw) == 0 {
		return out
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(d.store, "load").Inc()
		aside := d.path + corruptSuffix
		if rerr := os.Rename(d.path, aside); rerr != nil {
			d.logger.Warn().Err(err).AnErr("rename_error", rerr).Msg("document malformed, starting empty")
		} else {
			d.logger.Warn().Err(err).Str("moved_to", aside).Msg("document malformed, moved aside")
		}
		var zero T
		return zero
	}
	return out
}

// save overwrites the document with v. The write goes to a temporary file in
// the same directory which is then renamed over the original.
func (d document) save(v any) (err error) {
	start := time.Now()
	defer func() {
		metrics.StoreSaveDuration.WithLabelValues(d.store).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.StoreErrorsTotal.WithLabelValues(d.store, "save").Inc()
			d.logger.Error().Err(err).Msg("save failed")
			err = fmt.Errorf("%w: save %s: %w", domain.ErrStorage, d.store, err)
		}
	}()

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), d.path)
}
