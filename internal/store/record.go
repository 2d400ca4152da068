package store

import (
	"strings"
	"time"

	"taskman/internal/models"
)

// DateLayout adalah format tanggal pada kedua field tanggal task,
// misalnya "25 Oct 2024".
const DateLayout = "02 Jan 2006"

// fieldSep adalah pemisah field pada kedua backing file.
const fieldSep = ", "

// taskFieldCount adalah jumlah field pada satu baris task yang valid.
const taskFieldCount = 6

// encodeTask menyusun satu baris task sesuai urutan field pada file:
// user, title, description, assigned_date, due_date, completed.
func encodeTask(t models.Task) string {
	return strings.Join([]string{
		t.AssignedUser,
		t.Title,
		t.Description,
		t.AssignedDate,
		t.DueDate,
		t.Completed,
	}, fieldSep)
}

// decodeTask membaca satu baris task. Baris yang tidak terdiri dari
// tepat 6 field dianggap rusak dan dikembalikan ok=false; baris
// seperti itu di-skip oleh pemanggil, tidak pernah jadi error fatal.
func decodeTask(line string) (models.Task, bool) {
	parts := strings.Split(strings.TrimRight(line, "\n"), fieldSep)
	if len(parts) != taskFieldCount {
		return models.Task{}, false
	}
	return models.Task{
		AssignedUser: parts[0],
		Title:        parts[1],
		Description:  parts[2],
		AssignedDate: parts[3],
		DueDate:      parts[4],
		Completed:    parts[5],
	}, true
}

// ParseDate memvalidasi string tanggal terhadap DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// IsCompleted membandingkan field completed secara case-insensitive.
func IsCompleted(t models.Task) bool {
	return strings.EqualFold(t.Completed, "Yes")
}
