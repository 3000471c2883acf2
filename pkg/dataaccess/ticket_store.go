package dataaccess

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Jacobbrewer1/lynx/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/lynx/pkg/entities"
	"github.com/Jacobbrewer1/lynx/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const ticketStoreName = "ticket_store"

// storeIndent is the indentation used when writing the storage file.
const storeIndent = "    "

// TicketStore is the storage layer for tickets.
type TicketStore interface {
	// Load reads every ticket from storage. A missing storage file is created
	// containing an empty list; unreadable or malformed content yields an empty
	// list rather than an error.
	Load() ([]*entities.Ticket, error)

	// SaveAll replaces the entire contents of storage with the given tickets.
	SaveAll(tickets []*entities.Ticket) error

	// Ping reports whether the storage location is usable.
	Ping() error
}

type fileStore struct {
	// l is the logger.
	l *slog.Logger

	// path is the path to the storage file.
	path string
}

// NewFileStore creates a ticket store backed by a single JSON file.
func NewFileStore(path string, l *slog.Logger) TicketStore {
	if l == nil {
		l = slog.Default()
	}

	return &fileStore{
		l:    l.With(slog.String(logging.KeyStore, ticketStoreName)),
		path: path,
	}
}

func (s *fileStore) Load() ([]*entities.Ticket, error) {
	// Start the prometheus metrics.
	monitoring.StoreTotalRequests.WithLabelValues(ticketStoreName, "load").Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(ticketStoreName, "load"))
	defer t.ObserveDuration()

	got, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		// First run; create the file so that later saves have a home.
		if err := s.writeFile([]*entities.Ticket{}); err != nil {
			return nil, fmt.Errorf("error creating storage file: %w", err)
		}
		return []*entities.Ticket{}, nil
	} else if err != nil {
		// An unreadable file is treated the same as a malformed one.
		s.l.Warn("Storage file could not be read, treating as empty",
			slog.String(logging.KeyError, err.Error()))
		return []*entities.Ticket{}, nil
	}

	tickets := make([]*entities.Ticket, 0)
	if err := json.Unmarshal(got, &tickets); err != nil {
		// Malformed content is treated as an empty ticket list. The next save
		// will overwrite whatever is in the file.
		s.l.Warn("Storage file is not a valid ticket list, treating as empty",
			slog.String(logging.KeyError, err.Error()))
		return []*entities.Ticket{}, nil
	}

	return tickets, nil
}

func (s *fileStore) SaveAll(tickets []*entities.Ticket) error {
	// Start the prometheus metrics.
	monitoring.StoreTotalRequests.WithLabelValues(ticketStoreName, "save_all").Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(ticketStoreName, "save_all"))
	defer t.ObserveDuration()

	if tickets == nil {
		tickets = []*entities.Ticket{}
	}

	if err := s.writeFile(tickets); err != nil {
		return fmt.Errorf("error writing storage file: %w", err)
	}
	return nil
}

// writeFile writes the tickets to a temporary file and renames it over the
// storage file so that a crash mid-write cannot leave a half-written list.
func (s *fileStore) writeFile(tickets []*entities.Ticket) error {
	buf, err := json.MarshalIndent(tickets, "", storeIndent)
	if err != nil {
		return fmt.Errorf("error marshalling tickets: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error renaming temp file: %w", err)
	}
	return nil
}

func (s *fileStore) Ping() error {
	// Start the prometheus metrics.
	monitoring.StoreTotalRequests.WithLabelValues(ticketStoreName, "ping").Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(ticketStoreName, "ping"))
	defer t.ObserveDuration()

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		// The file not existing yet is fine; the directory has to be there.
		if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
			return fmt.Errorf("error checking storage directory: %w", err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("error checking storage file: %w", err)
	}
	return nil
}
