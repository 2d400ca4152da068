package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/models"
)

func newTaskStore(t *testing.T) (*TaskStore, string) {
	t.Helper()
	dir := t.TempDir()
	users, err := OpenCredentialStore(filepath.Join(dir, "user.txt"))
	require.NoError(t, err)
	require.NoError(t, users.Register("bob", "pw1"))
	require.NoError(t, users.Register("alice", "pw2"))
	path := filepath.Join(dir, "tasks.txt")
	return NewTaskStore(path, users), path
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	task := models.Task{
		AssignedUser: "bob",
		Title:        "Write report",
		Description:  "quarterly numbers",
		AssignedDate: "25 Oct 2024",
		DueDate:      "01 Jan 2026",
		Completed:    "No",
	}
	decoded, ok := decodeTask(encodeTask(task))
	require.True(t, ok)
	assert.Equal(t, task, decoded)
}

func TestDecodeRejectsWrongFieldCount(t *testing.T) {
	_, ok := decodeTask("bob, only, five, fields, here")
	assert.False(t, ok)
	_, ok = decodeTask("bob, one, two, three, four, five, six")
	assert.False(t, ok)
	_, ok = decodeTask("")
	assert.False(t, ok)
}

func TestAddAppendsAndSetsAssignedDate(t *testing.T) {
	s, _ := newTaskStore(t)

	before, err := s.ListAll()
	require.NoError(t, err)

	task, err := s.Add("bob", "Write report", "desc", "01 Jan 2026", "No")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(DateLayout), task.AssignedDate)

	after, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	got := after[len(after)-1]
	assert.Equal(t, "bob", got.AssignedUser)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, "01 Jan 2026", got.DueDate)
	assert.Equal(t, "No", got.Completed)
	assert.Equal(t, len(after), got.Position)
}

func TestAddValidation(t *testing.T) {
	s, _ := newTaskStore(t)

	_, err := s.Add("nobody", "t", "d", "01 Jan 2026", "No")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = s.Add("bob", "t", "d", "2026-01-01", "No")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	// Nilai completed di luar Yes/No dinormalkan menjadi No
	task, err := s.Add("bob", "t", "d", "01 Jan 2026", "maybe")
	require.NoError(t, err)
	assert.Equal(t, "No", task.Completed)

	task, err = s.Add("bob", "t", "d", "01 Jan 2026", "yes")
	require.NoError(t, err)
	assert.Equal(t, "Yes", task.Completed)
}

func TestListAllSkipsMalformedLines(t *testing.T) {
	s, path := newTaskStore(t)
	_, err := s.Add("bob", "first", "d", "01 Jan 2026", "No")
	require.NoError(t, err)

	// Selipkan baris rusak di antara dua record valid
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("this line is broken\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = s.Add("alice", "second", "d", "02 Jan 2026", "No")
	require.NoError(t, err)

	tasks, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	// Posisi dihitung dari record valid saja
	assert.Equal(t, 1, tasks[0].Position)
	assert.Equal(t, 2, tasks[1].Position)
}

func TestListForUser(t *testing.T) {
	s, _ := newTaskStore(t)
	_, err := s.Add("bob", "Write report", "desc", "01 Jan 2026", "No")
	require.NoError(t, err)
	_, err = s.Add("alice", "other", "d", "02 Jan 2026", "No")
	require.NoError(t, err)

	mine, err := s.ListForUser("bob")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "01 Jan 2026", mine[0].DueDate)
	assert.Equal(t, "No", mine[0].Completed)
}

func TestListCompletedIsCaseInsensitive(t *testing.T) {
	s, path := newTaskStore(t)
	_, err := s.Add("bob", "open", "d", "01 Jan 2026", "No")
	require.NoError(t, err)
	_, err = s.Add("bob", "done", "d", "01 Jan 2026", "Yes")
	require.NoError(t, err)

	// Tulis variasi kapital langsung ke file
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("alice, shouty, d, 01 Jan 2025, 02 Jan 2026, YES\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	done, err := s.ListCompleted()
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, "done", done[0].Title)
	assert.Equal(t, "shouty", done[1].Title)
}

func TestDeleteRemovesExactlyOnePosition(t *testing.T) {
	s, _ := newTaskStore(t)
	for _, title := range []string{"one", "two", "three", "four"} {
		_, err := s.Add("bob", title, "d", "01 Jan 2026", "No")
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(2))

	tasks, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	// Urutan relatif record lain tidak berubah
	assert.Equal(t, "one", tasks[0].Title)
	assert.Equal(t, "three", tasks[1].Title)
	assert.Equal(t, "four", tasks[2].Title)

	assert.ErrorIs(t, s.Delete(0), ErrTaskOutOfRange)
	assert.ErrorIs(t, s.Delete(4), ErrTaskOutOfRange)
}

func TestUpdateReplacesRecordInPlace(t *testing.T) {
	s, _ := newTaskStore(t)
	_, err := s.Add("bob", "one", "d", "01 Jan 2026", "No")
	require.NoError(t, err)
	_, err = s.Add("bob", "two", "d", "02 Jan 2026", "No")
	require.NoError(t, err)

	task, err := s.Get(1)
	require.NoError(t, err)
	task.AssignedUser = "alice"
	task.DueDate = "05 Mar 2026"
	require.NoError(t, s.Update(1, task))

	tasks, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "alice", tasks[0].AssignedUser)
	assert.Equal(t, "05 Mar 2026", tasks[0].DueDate)
	assert.Equal(t, "two", tasks[1].Title)

	assert.ErrorIs(t, s.Update(3, task), ErrTaskOutOfRange)
}

func TestMarkComplete(t *testing.T) {
	s, _ := newTaskStore(t)
	_, err := s.Add("bob", "one", "d", "01 Jan 2026", "No")
	require.NoError(t, err)

	require.NoError(t, s.MarkComplete(1))

	task, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Yes", task.Completed)

	assert.ErrorIs(t, s.MarkComplete(2), ErrTaskOutOfRange)
}

func TestMarkCompleteOnCompletedTask(t *testing.T) {
	s, _ := newTaskStore(t)
	_, err := s.Add("bob", "one", "d", "01 Jan 2026", "Yes")
	require.NoError(t, err)

	assert.ErrorIs(t, s.MarkComplete(1), ErrTaskCompleted)

	task, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Yes", task.Completed)
}

func TestListAllOnMissingFile(t *testing.T) {
	s, _ := newTaskStore(t)
	tasks, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
