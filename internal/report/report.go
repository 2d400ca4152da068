package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskman/internal/models"
	"taskman/internal/store"
	"taskman/pkg/logger"
)

// TaskStats adalah statistik global seluruh task.
type TaskStats struct {
	TotalTasks       int     `json:"total_tasks"`
	CompletedTasks   int     `json:"completed_tasks"`
	UncompletedTasks int     `json:"uncompleted_tasks"`
	OverdueTasks     int     `json:"overdue_tasks"`
	PctIncomplete    float64 `json:"pct_incomplete"`
	PctOverdue       float64 `json:"pct_overdue"`
}

// UserStats adalah statistik per user. Denominator setiap persentase
// adalah jumlah task user itu sendiri, kecuali PctTasksAssigned yang
// memakai total task global.
type UserStats struct {
	Username         string  `json:"username"`
	TotalTasks       int     `json:"total_tasks"`
	PctTasksAssigned float64 `json:"pct_tasks_assigned"`
	PctCompleted     float64 `json:"pct_completed"`
	PctUncompleted   float64 `json:"pct_uncompleted"`
	PctOverdue       float64 `json:"pct_overdue"`
}

// Generator membaca snapshot kedua store dan menulis dua file report
// turunan. Kedua file ditulis ulang utuh pada setiap invokasi.
type Generator struct {
	tasks          *store.TaskStore
	users          *store.CredentialStore
	taskReportPath string
	userReportPath string
}

func NewGenerator(tasks *store.TaskStore, users *store.CredentialStore, taskReportPath, userReportPath string) *Generator {
	return &Generator{
		tasks:          tasks,
		users:          users,
		taskReportPath: taskReportPath,
		userReportPath: userReportPath,
	}
}

// pct menghitung numerator/denominator*100 dengan guard pembagian nol.
func pct(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

// overdue: belum selesai dan due date lewat (strictly sebelum now,
// perbandingan tanggal kalender). Due date yang tidak bisa diparse
// tidak dihitung overdue.
func overdue(t models.Task, now time.Time) bool {
	if store.IsCompleted(t) {
		return false
	}
	due, err := store.ParseDate(t.DueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// Compute menghitung statistik global dan per-user dari snapshot yang
// diberikan. Urutan hasil per-user mengikuti urutan usernames.
func Compute(tasks []models.Task, usernames []string, now time.Time) (TaskStats, []UserStats) {
	var stats TaskStats
	stats.TotalTasks = len(tasks)
	for _, t := range tasks {
		if store.IsCompleted(t) {
			stats.CompletedTasks++
		}
		if overdue(t, now) {
			stats.OverdueTasks++
		}
	}
	stats.UncompletedTasks = stats.TotalTasks - stats.CompletedTasks
	stats.PctIncomplete = pct(stats.UncompletedTasks, stats.TotalTasks)
	stats.PctOverdue = pct(stats.OverdueTasks, stats.TotalTasks)

	userStats := make([]UserStats, 0, len(usernames))
	for _, name := range usernames {
		var us UserStats
		us.Username = name
		var completed, over int
		for _, t := range tasks {
			if t.AssignedUser != name {
				continue
			}
			us.TotalTasks++
			if store.IsCompleted(t) {
				completed++
			}
			if overdue(t, now) {
				over++
			}
		}
		us.PctTasksAssigned = pct(us.TotalTasks, stats.TotalTasks)
		us.PctCompleted = pct(completed, us.TotalTasks)
		us.PctUncompleted = pct(us.TotalTasks-completed, us.TotalTasks)
		us.PctOverdue = pct(over, us.TotalTasks)
		userStats = append(userStats, us)
	}
	return stats, userStats
}

// FormatTaskOverview menyusun isi file task_overview.txt.
func FormatTaskOverview(stats TaskStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total tasks: %d\n", stats.TotalTasks)
	fmt.Fprintf(&b, "Completed tasks: %d\n", stats.CompletedTasks)
	fmt.Fprintf(&b, "Uncompleted tasks: %d\n", stats.UncompletedTasks)
	fmt.Fprintf(&b, "Overdue tasks: %d\n", stats.OverdueTasks)
	fmt.Fprintf(&b, "Percentage incomplete: %.2f%%\n", stats.PctIncomplete)
	fmt.Fprintf(&b, "Percentage overdue: %.2f%%\n", stats.PctOverdue)
	return b.String()
}

// FormatUserOverview menyusun isi file user_overview.txt.
func FormatUserOverview(stats TaskStats, userStats []UserStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total users: %d\n", len(userStats))
	fmt.Fprintf(&b, "Total tasks: %d\n\n", stats.TotalTasks)
	for _, us := range userStats {
		fmt.Fprintf(&b, "User: %s\n", us.Username)
		fmt.Fprintf(&b, "  Total tasks assigned: %d\n", us.TotalTasks)
		fmt.Fprintf(&b, "  Percentage of total tasks assigned: %.2f%%\n", us.PctTasksAssigned)
		fmt.Fprintf(&b, "  Percentage completed: %.2f%%\n", us.PctCompleted)
		fmt.Fprintf(&b, "  Percentage uncompleted: %.2f%%\n", us.PctUncompleted)
		fmt.Fprintf(&b, "  Percentage overdue: %.2f%%\n\n", us.PctOverdue)
	}
	return b.String()
}

// Generate membaca snapshot kedua store, menghitung statistik, dan
// menulis ulang kedua file report.
func (g *Generator) Generate() (TaskStats, []UserStats, error) {
	tasks, err := g.tasks.ListAll()
	if err != nil {
		return TaskStats{}, nil, err
	}
	usernames, err := g.users.Usernames()
	if err != nil {
		return TaskStats{}, nil, err
	}

	stats, userStats := Compute(tasks, usernames, time.Now())

	if err := os.WriteFile(g.taskReportPath, []byte(FormatTaskOverview(stats)), 0644); err != nil {
		return TaskStats{}, nil, fmt.Errorf("writing task overview: %w", err)
	}
	if err := os.WriteFile(g.userReportPath, []byte(FormatUserOverview(stats, userStats)), 0644); err != nil {
		return TaskStats{}, nil, fmt.Errorf("writing user overview: %w", err)
	}

	logger.AuditLogger.Info("Reports generated",
		zap.Int("total_tasks", stats.TotalTasks), zap.Int("total_users", len(userStats)))
	return stats, userStats, nil
}

// Read mengembalikan isi kedua file report. Jika salah satu belum
// ada, report di-generate lebih dulu.
func (g *Generator) Read() (taskOverview, userOverview string, err error) {
	if !g.reportsExist() {
		if _, _, err := g.Generate(); err != nil {
			return "", "", err
		}
	}
	taskBytes, err := os.ReadFile(g.taskReportPath)
	if err != nil {
		return "", "", fmt.Errorf("reading task overview: %w", err)
	}
	userBytes, err := os.ReadFile(g.userReportPath)
	if err != nil {
		return "", "", fmt.Errorf("reading user overview: %w", err)
	}
	return string(taskBytes), string(userBytes), nil
}

func (g *Generator) reportsExist() bool {
	if _, err := os.Stat(g.taskReportPath); err != nil {
		return false
	}
	if _, err := os.Stat(g.userReportPath); err != nil {
		return false
	}
	return true
}
