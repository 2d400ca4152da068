package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"taskman/pkg/logger"
)

// Baris admin yang di-seed ketika file kredensial belum ada.
const (
	SeedAdminUser     = "admin"
	SeedAdminPassword = "adm1n"
)

// CredentialStore menyimpan pasangan username/password di satu file
// teks, satu record per baris: "username, password". Password
// disimpan dan dibandingkan apa adanya, tanpa hashing.
type CredentialStore struct {
	path string
}

// OpenCredentialStore membuka file kredensial. Jika file belum ada,
// file dibuat berisi satu record admin default.
func OpenCredentialStore(path string) (*CredentialStore, error) {
	s := &CredentialStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		seed := SeedAdminUser + fieldSep + SeedAdminPassword + "\n"
		if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
			return nil, fmt.Errorf("creating credential file: %w", err)
		}
		logger.AuditLogger.Info("Credential file created with default admin",
			zap.String("path", path))
	}
	return s, nil
}

// Load membaca seluruh file kredensial ke dalam map username→password.
// Baris yang tidak terdiri dari tepat 2 field di-skip.
func (s *CredentialStore) Load() (map[string]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening credential file: %w", err)
	}
	defer file.Close()

	users := map[string]string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), fieldSep)
		if len(parts) != 2 {
			continue
		}
		users[parts[0]] = parts[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading credential file: %w", err)
	}
	return users, nil
}

// Exists melaporkan apakah username terdaftar.
func (s *CredentialStore) Exists(username string) (bool, error) {
	users, err := s.Load()
	if err != nil {
		return false, err
	}
	_, ok := users[username]
	return ok, nil
}

// Register menambahkan user baru dengan meng-append satu baris.
// Username yang sudah ada ditolak dengan ErrDuplicateUser; tidak ada
// pemeriksaan keunikan untuk password.
func (s *CredentialStore) Register(username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrBlankCredential
	}
	users, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		logger.SecurityLogger.Warn("Duplicate username", zap.String("username", username))
		return ErrDuplicateUser
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening credential file: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString(username + fieldSep + password + "\n"); err != nil {
		return fmt.Errorf("writing credential file: %w", err)
	}

	logger.AuditLogger.Info("User registered", zap.String("username", username))
	return nil
}

// Authenticate membandingkan password yang diberikan dengan yang
// tersimpan. Tidak ada rate limiting maupun lockout.
func (s *CredentialStore) Authenticate(username, password string) (bool, error) {
	users, err := s.Load()
	if err != nil {
		return false, err
	}
	stored, ok := users[username]
	return ok && stored == password, nil
}

// Usernames mengembalikan daftar username dalam urutan file.
func (s *CredentialStore) Usernames() ([]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening credential file: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), fieldSep)
		if len(parts) != 2 {
			continue
		}
		names = append(names, parts[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading credential file: %w", err)
	}
	return names, nil
}
