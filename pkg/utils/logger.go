package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// RotatingWriter writes to a file and rotates it once it passes MaxSize
// bytes, keeping up to MaxBackups numbered copies.
type RotatingWriter struct {
	Filename   string
	MaxSize    int64
	MaxBackups int
	file       *os.File
	mu         sync.Mutex
}

func NewRotatingWriter(filename string, maxSize int64, maxBackups int) *RotatingWriter {
	return &RotatingWriter{
		Filename:   filename,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	}
}

func (w *RotatingWriter) open() error {
	file, err := os.OpenFile(w.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	w.file = file
	return nil
}

func (w *RotatingWriter) close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}

func (w *RotatingWriter) rotate() error {
	if err := w.close(); err != nil {
		return err
	}

	for i := w.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", w.Filename, i), fmt.Sprintf("%s.%d", w.Filename, i+1))
	}
	if w.MaxBackups > 0 {
		os.Rename(w.Filename, fmt.Sprintf("%s.1", w.Filename))
	}

	return w.open()
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		if err := w.open(); err != nil {
			// Fall back to stderr if the log file cannot be opened
			return os.Stderr.Write(p)
		}
	}

	info, err := w.file.Stat()
	if err == nil && info.Size() > w.MaxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	return w.file.Write(p)
}

// SetupLogger routes the global logger to both stderr and a rotating
// file under logDir.
func SetupLogger(logDir string) {
	os.MkdirAll(logDir, 0755)
	logFile := filepath.Join(logDir, "bricks.log")

	// 10MB limit, 5 backups
	writer := NewRotatingWriter(logFile, 10*1024*1024, 5)

	log.SetOutput(io.MultiWriter(os.Stderr, writer))
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}
