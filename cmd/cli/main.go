package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"taskman/configs"
	"taskman/internal/editor"
	"taskman/internal/models"
	"taskman/internal/report"
	"taskman/internal/store"
	"taskman/pkg/logger"
)

const banner = `
====================================
      WELCOME TO TASK MANAGER
====================================
`

const adminMenu = `
Please select one of the following options:
r   - Register user
a   - Add task
va  - View all tasks
vm  - View my tasks
vc  - View completed tasks
del - Delete a task
gr  - Generate reports
ds  - Display statistics
e   - Exit
`

const memberMenu = `
Please select one of the following options:
a  - Add task
va - View all tasks
vm - View my tasks
vc - View completed tasks
e  - Exit
`

// shell membungkus store, report generator, dan input interaktif
// untuk loop menu utama.
type shell struct {
	users   *store.CredentialStore
	tasks   *store.TaskStore
	reports *report.Generator
	in      *bufio.Scanner
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()

	cfg := configs.LoadConfig()
	users, err := store.OpenCredentialStore(cfg.UserPath())
	if err != nil {
		logger.ErrorLogger.Error("Cannot open credential store", zap.Error(err))
		fmt.Println("Cannot open user file:", err)
		return
	}
	tasks := store.NewTaskStore(cfg.TaskPath(), users)
	s := &shell{
		users:   users,
		tasks:   tasks,
		reports: report.NewGenerator(tasks, users, cfg.TaskReportPath(), cfg.UserReportPath()),
		in:      bufio.NewScanner(os.Stdin),
	}

	for {
		fmt.Print(banner)
		username, ok := s.login()
		if !ok {
			return
		}
		if !s.menuLoop(username) {
			return
		}
	}
}

// login meminta kredensial sampai valid. Password dibandingkan apa
// adanya dengan isi file.
func (s *shell) login() (string, bool) {
	for {
		username, ok := s.prompt("Username: ")
		if !ok {
			return "", false
		}
		password, ok := s.prompt("Password: ")
		if !ok {
			return "", false
		}
		valid, err := s.users.Authenticate(username, password)
		if err != nil {
			fmt.Println("Error reading user file:", err)
			continue
		}
		if valid {
			fmt.Printf("Welcome, %s!\n", username)
			logger.AuditLogger.Info("CLI login", zap.String("username", username))
			return username, true
		}
		fmt.Println("Invalid username or password. Please try again.")
		fmt.Println()
	}
}

// menuLoop menampilkan menu sesuai role sampai user keluar.
// Mengembalikan false jika input habis (program selesai).
func (s *shell) menuLoop(username string) bool {
	isAdmin := username == store.SeedAdminUser
	for {
		if isAdmin {
			fmt.Print(adminMenu)
		} else {
			fmt.Print(memberMenu)
		}
		choice, ok := s.prompt("Your choice: ")
		if !ok {
			return false
		}
		switch strings.ToLower(choice) {
		case "r":
			if isAdmin {
				s.registerUser()
				continue
			}
		case "a":
			s.addTask()
			continue
		case "va":
			s.viewAll()
			continue
		case "vm":
			ed := editor.NewWithScanner(s.tasks, s.users, s.in, os.Stdout)
			if err := ed.Run(username); err != nil {
				fmt.Println("Error:", err)
			}
			continue
		case "vc":
			s.viewCompleted()
			continue
		case "del":
			if isAdmin {
				s.deleteTask()
				continue
			}
		case "gr":
			if isAdmin {
				if _, _, err := s.reports.Generate(); err != nil {
					fmt.Println("Error generating reports:", err)
				} else {
					fmt.Println("Reports generated successfully.")
				}
				continue
			}
		case "ds":
			if isAdmin {
				s.displayStatistics()
				continue
			}
		case "e":
			fmt.Println("Goodbye!")
			fmt.Println()
			return true
		}
		fmt.Println("Invalid choice. Please try again.")
	}
}

// registerUser mendaftarkan user baru dengan konfirmasi password.
// 'e' membatalkan.
func (s *shell) registerUser() {
	for {
		newUser, ok := s.prompt("Enter new username (or 'e' to cancel): ")
		if !ok || strings.EqualFold(newUser, "e") {
			return
		}
		newPass, ok := s.prompt("Enter new password (or 'e' to cancel): ")
		if !ok || strings.EqualFold(newPass, "e") {
			return
		}
		confirm, ok := s.prompt("Confirm password: ")
		if !ok {
			return
		}
		if newPass != confirm {
			fmt.Println("Passwords do not match. Try again.")
			continue
		}
		switch err := s.users.Register(newUser, newPass); err {
		case nil:
			fmt.Println("User registered successfully.")
			return
		case store.ErrDuplicateUser:
			fmt.Println("This username already exists. Try another one.")
		case store.ErrBlankCredential:
			fmt.Println("Username and password must not be blank.")
		default:
			fmt.Println("Error registering user:", err)
			return
		}
	}
}

// addTask menambah task untuk user terdaftar manapun. 'e' membatalkan.
func (s *shell) addTask() {
	var taskUser string
	for {
		input, ok := s.prompt("Enter the username to assign the task (or 'e' to cancel): ")
		if !ok || strings.EqualFold(input, "e") {
			return
		}
		exists, err := s.users.Exists(input)
		if err != nil {
			fmt.Println("Error reading user file:", err)
			return
		}
		if !exists {
			fmt.Println("User does not exist. Please try again.")
			continue
		}
		taskUser = input
		break
	}

	title, ok := s.prompt("Enter task title: ")
	if !ok {
		return
	}
	description, ok := s.prompt("Enter task description: ")
	if !ok {
		return
	}

	var dueDate string
	for {
		input, ok := s.prompt("Enter due date (e.g., 25 Oct 2024): ")
		if !ok {
			return
		}
		if _, err := store.ParseDate(input); err != nil {
			fmt.Println("Incorrect format. Please use 'DD Mon YYYY' (e.g., 25 Oct 2024).")
			continue
		}
		dueDate = input
		break
	}

	completed, ok := s.prompt("Is the task completed? (Yes/No): ")
	if !ok {
		return
	}

	if _, err := s.tasks.Add(taskUser, title, description, dueDate, completed); err != nil {
		fmt.Println("Error adding task:", err)
		return
	}
	fmt.Println("Task added successfully.")
}

func printTask(t models.Task) {
	fmt.Printf(`
Task: %s
Assigned to: %s
Date Assigned: %s
Due Date: %s
Task Complete? %s
Description:
%s
`, t.Title, t.AssignedUser, t.AssignedDate, t.DueDate, t.Completed, t.Description)
}

func (s *shell) viewAll() {
	tasks, err := s.tasks.ListAll()
	if err != nil {
		fmt.Println("Error reading tasks:", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}
	for _, t := range tasks {
		printTask(t)
	}
}

func (s *shell) viewCompleted() {
	tasks, err := s.tasks.ListCompleted()
	if err != nil {
		fmt.Println("Error reading tasks:", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Println("No completed tasks found.")
		return
	}
	for _, t := range tasks {
		printTask(t)
	}
}

// deleteTask menampilkan semua task dengan nomornya lalu menghapus
// task yang dipilih. Nomor task setelahnya bergeser satu ke depan.
func (s *shell) deleteTask() {
	tasks, err := s.tasks.ListAll()
	if err != nil {
		fmt.Println("Error reading tasks:", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Printf("%d: Task: %s, Assigned to: %s, Due: %s, Completed: %s\n",
			t.Position, t.Title, t.AssignedUser, t.DueDate, t.Completed)
	}
	input, ok := s.prompt("Enter task number to delete: ")
	if !ok {
		return
	}
	number, err := strconv.Atoi(input)
	if err != nil {
		fmt.Println("Please enter a valid number.")
		return
	}
	if err := s.tasks.Delete(number); err != nil {
		if err == store.ErrTaskOutOfRange {
			fmt.Println("Invalid task number.")
		} else {
			fmt.Println("Error deleting task:", err)
		}
		return
	}
	fmt.Println("Task deleted.")
}

// displayStatistics mencetak isi kedua file report; jika belum ada,
// report di-generate lebih dulu.
func (s *shell) displayStatistics() {
	taskText, userText, err := s.reports.Read()
	if err != nil {
		fmt.Println("Error reading reports:", err)
		return
	}
	fmt.Println("\n--- Task Overview ---")
	fmt.Print(taskText)
	fmt.Println("\n--- User Overview ---")
	fmt.Print(userText)
}
