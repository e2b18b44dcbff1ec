package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"syscall"
	"time"
)

// valueFileExtension is the extension used for stored values.
const valueFileExtension = ".json"

// validKeyPattern restricts keys to characters that are safe as file names.
var validKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore stores each key as a file in a directory.
// Thread-safe for concurrent access; a lockfile coordinates writers across processes.
type FileStore struct {
	// directory is the data directory path.
	directory string

	// mu protects concurrent access to file operations.
	mu sync.RWMutex
}

// NewFileStore creates a file-backed store rooted at directory.
// If directory is empty it defaults to ~/.carbontrack/data.
// The directory is created if it doesn't exist.
func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		directory = filepath.Join(homeDir, ".carbontrack", "data")
	}

	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileStore{directory: directory}, nil
}

// Directory returns the data directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	path, err := s.keyToFilePath(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read value file: %w", err)
	}
	return string(data), nil
}

// Set implements Store. The value is written to a temporary file and renamed
// into place so readers never observe a partial write.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	path, err := s.keyToFilePath(key)
	if err != nil {
		return err
	}

	unlock, err := s.acquireFileLock(path)
	if err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpPath := path + ".tmp"
	if writeErr := os.WriteFile(tmpPath, []byte(value), 0o600); writeErr != nil {
		return fmt.Errorf("failed to write value file: %w", writeErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename value file: %w", renameErr)
	}

	return nil
}

// Remove implements Store.
func (s *FileStore) Remove(_ context.Context, key string) error {
	path, err := s.keyToFilePath(key)
	if err != nil {
		return err
	}

	unlock, err := s.acquireFileLock(path)
	if err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("failed to delete value file: %w", removeErr)
	}
	return nil
}

// keyToFilePath maps a key to its value file.
func (s *FileStore) keyToFilePath(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	if !validKeyPattern.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q contains unsupported characters", ErrInvalidKey, key)
	}
	return filepath.Join(s.directory, key+valueFileExtension), nil
}

// acquireFileLock acquires a cross-process advisory lockfile next to path.
// Returns a cleanup function that releases the lock.
func (s *FileStore) acquireFileLock(path string) (func(), error) {
	lockPath := path + ".lock"

	const maxRetries = 10
	const retryDelay = 100 * time.Millisecond
	const staleLockAge = 30 * time.Second

	for range maxRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}

		if removeStaleLock(lockPath, staleLockAge) {
			continue
		}
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owner is gone.
// Returns true if the lock was removed.
func removeStaleLock(lockPath string, staleLockAge time.Duration) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}

	if isLockHeldByLiveProcess(lockPath) {
		return false
	}

	_ = os.Remove(lockPath)
	return true
}

// isLockHeldByLiveProcess reads the PID from a lock file and checks if that
// process is still alive.
func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 tests process existence without sending a signal.
	return proc.Signal(syscall.Signal(0)) == nil
}
