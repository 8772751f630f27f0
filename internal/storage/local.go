package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/johanforsgren/profilexport/internal/logger"
)

// FileSink writes export artifacts into a local directory. Artifacts carry
// credentials, so files are created 0600.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	return &FileSink{dir: abs}, nil
}

func (s *FileSink) Dir() string {
	return s.dir
}

// Save writes data under name, replacing any previous file atomically.
func (s *FileSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.LogError("MKDIR", s.dir, err)
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		logger.LogError("CREATE_TEMP", s.dir, err)
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		logger.LogError("CHMOD", tmpPath, err)
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		logger.LogError("WRITE", tmpPath, err)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := tmp.Close(); err != nil {
		logger.LogError("CLOSE", tmpPath, err)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		logger.LogError("RENAME", path, err)
		return "", fmt.Errorf("failed to move artifact into place: %w", err)
	}

	logger.LogFileWrite(path)
	return path, nil
}
