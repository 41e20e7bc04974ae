package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jlaffaye/ftp"
)

// Storage persists an uploaded file and returns the relative path the
// frontend uses to reach it.
type Storage interface {
	Save(name string, r io.Reader) (string, error)
}

type DiskStorage struct {
	Dir string
}

func (s *DiskStorage) Save(name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: create dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("upload: write file: %w", err)
	}

	return name, nil
}

// FTPStorage stores uploads on a remote FTP server, one connection per
// file. No retry on transient failure.
type FTPStorage struct {
	Host     string
	User     string
	Password string
}

func (s *FTPStorage) Save(name string, r io.Reader) (string, error) {
	conn, err := ftp.Dial(s.Host, ftp.DialWithTimeout(5*time.Second))
	if err != nil {
		return "", fmt.Errorf("upload: ftp dial: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login(s.User, s.Password); err != nil {
		return "", fmt.Errorf("upload: ftp login: %w", err)
	}

	if err := conn.Stor("/"+name, r); err != nil {
		return "", fmt.Errorf("upload: ftp store: %w", err)
	}

	return name, nil
}
