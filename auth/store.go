package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	KeyClientID     = "STRAVA_CLIENT_ID"
	KeyClientSecret = "STRAVA_CLIENT_SECRET"
	KeyAccessToken  = "STRAVA_ACCESS_TOKEN"
	KeyRefreshToken = "STRAVA_REFRESH_TOKEN"
)

// Store persists the credential set.
type Store interface {
	Load() (Credentials, error)
	Save(Credentials) error
}

// FileStore keeps credentials in a dotenv file. Keys it does not own are
// preserved on save.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (Credentials, error) {
	values, err := s.read()
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		ClientID:     values[KeyClientID],
		ClientSecret: values[KeyClientSecret],
		AccessToken:  values[KeyAccessToken],
		RefreshToken: values[KeyRefreshToken],
	}, nil
}

func (s *FileStore) Save(c Credentials) error {
	values, err := s.read()
	if err != nil {
		return err
	}

	set := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}
	set(KeyClientID, c.ClientID)
	set(KeyClientSecret, c.ClientSecret)
	set(KeyAccessToken, c.AccessToken)
	set(KeyRefreshToken, c.RefreshToken)

	if err := godotenv.Write(values, s.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return os.Chmod(s.Path, 0600)
}

func (s *FileStore) read() (map[string]string, error) {
	values, err := godotenv.Read(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return values, nil
}

// MemoryStore is a Store for tests.
type MemoryStore struct {
	Credentials Credentials
	Saves       int
	SaveErr     error
}

func (m *MemoryStore) Load() (Credentials, error) {
	return m.Credentials, nil
}

func (m *MemoryStore) Save(c Credentials) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Credentials = c
	m.Saves++
	return nil
}
