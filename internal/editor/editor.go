package editor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"taskman/internal/models"
	"taskman/internal/store"
	"taskman/pkg/logger"
)

// Editor adalah state machine interaktif di atas TaskStore: user
// melihat daftar task miliknya, memilih satu berdasarkan nomor pada
// daftar terfilter, lalu menandainya selesai atau mengeditnya.
// Daftar terfilter dihitung ulang dari file setelah setiap mutasi,
// sehingga nomor pilihan tidak stabil antar mutasi.
type Editor struct {
	tasks *store.TaskStore
	users *store.CredentialStore
	in    *bufio.Scanner
	out   io.Writer
}

func New(tasks *store.TaskStore, users *store.CredentialStore, in io.Reader, out io.Writer) *Editor {
	return NewWithScanner(tasks, users, bufio.NewScanner(in), out)
}

// NewWithScanner dipakai ketika pemanggil sudah punya scanner di atas
// input yang sama, supaya tidak ada dua buffer yang saling mencuri
// baris dari reader yang sama.
func NewWithScanner(tasks *store.TaskStore, users *store.CredentialStore, in *bufio.Scanner, out io.Writer) *Editor {
	return &Editor{
		tasks: tasks,
		users: users,
		in:    in,
		out:   out,
	}
}

// readLine membaca satu baris input yang sudah di-trim. ok=false
// berarti input habis, yang diperlakukan seperti memilih keluar.
func (e *Editor) readLine() (string, bool) {
	if !e.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(e.in.Text()), true
}

// Run menjalankan loop editor untuk satu user sampai user memilih -1
// atau input habis.
func (e *Editor) Run(username string) error {
	for {
		mine, err := e.tasks.ListForUser(username)
		if err != nil {
			return err
		}
		if len(mine) == 0 {
			fmt.Fprintln(e.out, "No tasks found for your user.")
			return nil
		}

		fmt.Fprintln(e.out, "\nYour Tasks:")
		for i, t := range mine {
			fmt.Fprintf(e.out, "%d: Task: %s, Due: %s, Completed: %s\n", i+1, t.Title, t.DueDate, t.Completed)
		}

		choice, ok := e.selectTask(len(mine))
		if !ok || choice == -1 {
			return nil
		}
		selected := mine[choice-1]

		fmt.Fprintf(e.out, "\nSelected Task: %s (Completed: %s)\n", selected.Title, selected.Completed)
		if store.IsCompleted(selected) {
			// Task yang sudah selesai tidak boleh diedit;
			// kembali ke daftar tanpa efek samping.
			fmt.Fprintln(e.out, "This task is already completed and cannot be edited.")
			continue
		}

		fmt.Fprint(e.out, "Choose action - 'c' to mark complete, 'e' to edit, or 'b' to go back: ")
		action, ok := e.readLine()
		if !ok {
			return nil
		}
		switch strings.ToLower(action) {
		case "c":
			if err := e.tasks.MarkComplete(selected.Position); err != nil {
				return err
			}
			fmt.Fprintln(e.out, "Task marked as complete.")
		case "e":
			if err := e.edit(selected); err != nil {
				return err
			}
		case "b":
			continue
		default:
			fmt.Fprintln(e.out, "Invalid action. Returning to tasks list.")
		}
	}
}

// selectTask meminta nomor task 1-based pada daftar terfilter.
// -1 adalah satu-satunya jalan keluar; input bukan angka atau di luar
// range di-prompt ulang.
func (e *Editor) selectTask(max int) (int, bool) {
	for {
		fmt.Fprint(e.out, "Select a task number to edit/mark complete (or -1 to return to main menu): ")
		line, ok := e.readLine()
		if !ok {
			return 0, false
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(e.out, "Please enter a valid integer.")
			continue
		}
		if choice == -1 {
			return -1, true
		}
		if choice < 1 || choice > max {
			fmt.Fprintln(e.out, "Invalid task number.")
			continue
		}
		return choice, true
	}
}

// edit menawarkan reassignment opsional dan perubahan due date
// opsional, lalu mem-persist lewat Update pada posisi global task.
func (e *Editor) edit(task models.Task) error {
	fmt.Fprintf(e.out, "Enter new username to assign task (current: %s), or press Enter to skip: ", task.AssignedUser)
	newUser, ok := e.readLine()
	if !ok {
		return nil
	}
	if newUser != "" {
		exists, err := e.users.Exists(newUser)
		if err != nil {
			return err
		}
		if exists {
			task.AssignedUser = newUser
		} else {
			// Username tidak valid: tolak dan biarkan field lama.
			fmt.Fprintln(e.out, "Username not found, skipping username change.")
		}
	}

	for {
		fmt.Fprintf(e.out, "Enter new due date (DD Mon YYYY) (current: %s), or press Enter to skip: ", task.DueDate)
		newDue, ok := e.readLine()
		if !ok {
			// Input habis di tengah edit: jangan simpan apa pun,
			// sama seperti input habis di prompt username.
			return nil
		}
		if newDue == "" {
			break
		}
		if _, err := store.ParseDate(newDue); err != nil {
			fmt.Fprintln(e.out, "Invalid date format. Try again.")
			continue
		}
		task.DueDate = newDue
		break
	}

	if err := e.tasks.Update(task.Position, task); err != nil {
		return err
	}
	logger.AuditLogger.Info("Task edited",
		zap.Int("position", task.Position), zap.String("assigned_user", task.AssignedUser))
	return nil
}
