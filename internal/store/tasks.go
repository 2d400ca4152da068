package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskman/internal/models"
	"taskman/pkg/logger"
)

// TaskStore menyimpan task di satu file teks, satu record per baris
// dengan 6 field. Task tidak punya identifier stabil: setiap operasi
// mutasi memakai posisi 1-based sesuai urutan baris di file, dan
// setiap mutasi adalah full read + full rewrite.
type TaskStore struct {
	path  string
	users *CredentialStore
}

// NewTaskStore membuat TaskStore di atas file path. Validasi
// assigned_user pada Add dilakukan terhadap users.
func NewTaskStore(path string, users *CredentialStore) *TaskStore {
	return &TaskStore{path: path, users: users}
}

// readAll membaca seluruh file dan mendekode setiap baris. Baris yang
// rusak (bukan 6 field) di-skip dan dicatat, tidak pernah menggagalkan
// pembacaan. File yang belum ada diperlakukan sebagai store kosong.
func (s *TaskStore) readAll() ([]models.Task, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening task file: %w", err)
	}
	defer file.Close()

	var tasks []models.Task
	skipped := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		task, ok := decodeTask(line)
		if !ok {
			skipped++
			continue
		}
		task.Position = len(tasks) + 1
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	if skipped > 0 {
		logger.AuditLogger.Warn("Skipped malformed task lines",
			zap.String("path", s.path), zap.Int("skipped", skipped))
	}
	return tasks, nil
}

// writeAll menulis ulang seluruh file lewat file sementara yang
// di-rename di atas file asli, supaya crash di tengah penulisan tidak
// meninggalkan file terpotong.
func (s *TaskStore) writeAll(tasks []models.Task) error {
	tmp := s.path + ".tmp"
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(encodeTask(t))
		b.WriteString("\n")
	}
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing task file: %w", err)
	}
	return nil
}

// Add menambahkan task baru di akhir file. assigned_user harus
// terdaftar, due_date harus valid, dan assigned_date diisi tanggal
// hari ini. Nilai completed selain Yes/No dinormalkan menjadi No.
func (s *TaskStore) Add(assignedUser, title, description, dueDate, completed string) (models.Task, error) {
	exists, err := s.users.Exists(assignedUser)
	if err != nil {
		return models.Task{}, err
	}
	if !exists {
		return models.Task{}, ErrUnknownUser
	}
	if _, err := ParseDate(dueDate); err != nil {
		return models.Task{}, err
	}
	if strings.EqualFold(completed, "Yes") {
		completed = "Yes"
	} else {
		completed = "No"
	}

	task := models.Task{
		AssignedUser: assignedUser,
		Title:        title,
		Description:  description,
		AssignedDate: time.Now().Format(DateLayout),
		DueDate:      dueDate,
		Completed:    completed,
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return models.Task{}, fmt.Errorf("opening task file: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString(encodeTask(task) + "\n"); err != nil {
		return models.Task{}, fmt.Errorf("writing task file: %w", err)
	}

	logger.AuditLogger.Info("Task added",
		zap.String("assigned_user", task.AssignedUser), zap.String("title", task.Title))
	return task, nil
}

// ListAll mengembalikan seluruh task dalam urutan file.
func (s *TaskStore) ListAll() ([]models.Task, error) {
	return s.readAll()
}

// ListForUser mengembalikan task milik satu user, tetap dalam urutan
// file. Position pada hasil adalah posisi global di file, bukan posisi
// di dalam hasil filter.
func (s *TaskStore) ListForUser(username string) ([]models.Task, error) {
	tasks, err := s.readAll()
	if err != nil {
		return nil, err
	}
	var mine []models.Task
	for _, t := range tasks {
		if t.AssignedUser == username {
			mine = append(mine, t)
		}
	}
	return mine, nil
}

// ListCompleted mengembalikan task dengan completed == Yes
// (perbandingan case-insensitive).
func (s *TaskStore) ListCompleted() ([]models.Task, error) {
	tasks, err := s.readAll()
	if err != nil {
		return nil, err
	}
	var done []models.Task
	for _, t := range tasks {
		if IsCompleted(t) {
			done = append(done, t)
		}
	}
	return done, nil
}

// Get mengembalikan task pada posisi 1-based.
func (s *TaskStore) Get(position int) (models.Task, error) {
	tasks, err := s.readAll()
	if err != nil {
		return models.Task{}, err
	}
	if position < 1 || position > len(tasks) {
		return models.Task{}, ErrTaskOutOfRange
	}
	return tasks[position-1], nil
}

// Update mengganti isi record pada posisi 1-based lalu menulis ulang
// seluruh file. Position di dalam task argumen diabaikan.
func (s *TaskStore) Update(position int, task models.Task) error {
	tasks, err := s.readAll()
	if err != nil {
		return err
	}
	if position < 1 || position > len(tasks) {
		return ErrTaskOutOfRange
	}
	task.Position = position
	tasks[position-1] = task
	if err := s.writeAll(tasks); err != nil {
		return err
	}
	logger.AuditLogger.Info("Task updated", zap.Int("position", position))
	return nil
}

// MarkComplete menandai task pada posisi 1-based sebagai selesai.
// Task yang sudah selesai mengembalikan ErrTaskCompleted.
func (s *TaskStore) MarkComplete(position int) error {
	task, err := s.Get(position)
	if err != nil {
		return err
	}
	if IsCompleted(task) {
		return ErrTaskCompleted
	}
	task.Completed = "Yes"
	return s.Update(position, task)
}

// Delete menghapus record pada posisi 1-based lalu menulis ulang
// seluruh file. Urutan relatif record lain tidak berubah.
func (s *TaskStore) Delete(position int) error {
	tasks, err := s.readAll()
	if err != nil {
		return err
	}
	if position < 1 || position > len(tasks) {
		return ErrTaskOutOfRange
	}
	tasks = append(tasks[:position-1], tasks[position:]...)
	if err := s.writeAll(tasks); err != nil {
		return err
	}
	logger.AuditLogger.Info("Task deleted", zap.Int("position", position))
	return nil
}
