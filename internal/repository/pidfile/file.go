package pidfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mitchellh/go-ps"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-clock/internal/config"
)

// Record describes a running daemon.
type Record struct {
	// PID is the daemon's process ID.
	PID int
	// ListenAddress is where the daemon serves gRPC.
	ListenAddress string
	// StartedAt is when the daemon started.
	StartedAt time.Time
}

var (
	// ErrNotFound is returned when the PID file does not exist.
	ErrNotFound = errors.New("pid file not found")
	// ErrAlreadyRunning is returned by Acquire when another live daemon owns the file.
	ErrAlreadyRunning = errors.New("daemon is already running")
	// errMalformed is returned for PID files that cannot be decoded.
	errMalformed = errors.New("malformed pid file")
)

// File reads and writes the PID file.
type File struct {
	// path is the filesystem location of the PID file.
	path string
	// mu protects concurrent access to the file.
	mu sync.Mutex
	// findProcess looks a PID up in the process table.
	findProcess func(pid int) (ps.Process, error)
}

// New creates a PID file handle for path.
func New(path string) *File {
	return &File{
		path:        filepath.Clean(path),
		findProcess: ps.FindProcess,
	}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the record from disk.
func (f *File) Load(_ context.Context) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.load()
}

// Save writes rec to disk.
func (f *File) Save(_ context.Context, rec *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.save(rec)
}

// Remove deletes the file. A missing file is not an error.
func (f *File) Remove(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pid file: %w", err)
	}

	return nil
}

// Running returns the record if it names a live process.
// A missing file or a dead process yields ErrNotFound.
func (f *File) Running(_ context.Context) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, err := f.load()
	if err != nil {
		return nil, err
	}

	alive, err := f.alive(rec.PID)
	if err != nil {
		return nil, err
	}

	if !alive {
		return nil, ErrNotFound
	}

	return rec, nil
}

// Acquire writes rec unless the file names another live process.
// Stale files left by a crashed daemon are overwritten.
func (f *File) Acquire(_ context.Context, rec *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.load()

	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return err
	case existing.PID != rec.PID:
		alive, aliveErr := f.alive(existing.PID)
		if aliveErr != nil {
			return aliveErr
		}

		if alive {
			return fmt.Errorf("%w: pid %d, %s", ErrAlreadyRunning, existing.PID, f.path)
		}
	}

	return f.save(rec)
}

// load decodes the file. f.mu must be held.
func (f *File) load() (*Record, error) {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read pid file: %w", err)
	}

	var message structpb.Struct
	if err = protojson.Unmarshal(contents, &message); err != nil {
		return nil, fmt.Errorf("decode pid file: %w", err)
	}

	return fromProto(&message)
}

// save encodes rec. f.mu must be held.
func (f *File) save(rec *Record) error {
	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
	}

	data, err := marshalOptions.Marshal(toProto(rec))
	if err != nil {
		return fmt.Errorf("encode pid file: %w", err)
	}

	if err = os.WriteFile(f.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}

	return nil
}

// alive reports whether pid is in the process table.
func (f *File) alive(pid int) (bool, error) {
	process, err := f.findProcess(pid)
	if err != nil {
		return false, fmt.Errorf("find process %d: %w", pid, err)
	}

	return process != nil, nil
}

// fromProto converts the stored message into a Record.
func fromProto(message *structpb.Struct) (*Record, error) {
	fields := message.GetFields()

	pid := int(fields["pid"].GetNumberValue())
	if pid <= 0 {
		return nil, fmt.Errorf("%w: pid is missing", errMalformed)
	}

	rec := &Record{
		PID:           pid,
		ListenAddress: fields["listen_addr"].GetStringValue(),
	}

	if raw := fields["started_at"].GetStringValue(); raw != "" {
		startedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: started_at: %w", errMalformed, err)
		}

		rec.StartedAt = startedAt
	}

	return rec, nil
}

// toProto converts a Record into the stored message.
func toProto(rec *Record) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"pid":         structpb.NewNumberValue(float64(rec.PID)),
		"listen_addr": structpb.NewStringValue(rec.ListenAddress),
	}

	if !rec.StartedAt.IsZero() {
		fields["started_at"] = structpb.NewStringValue(rec.StartedAt.Format(time.RFC3339))
	}

	return &structpb.Struct{Fields: fields}
}
