package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/internal/models"
	"taskman/internal/store"
	"taskman/internal/websocket"
	"taskman/pkg/logger"
)

// Task handlers
//
// Task tidak punya identifier stabil; parameter :pos adalah posisi
// 1-based baris task di dalam file, sama dengan nomor yang dipakai
// alur interaktif. Posisi bergeser setelah delete/update.

// publish mengirim event mutasi ke hub WebSocket jika hub aktif.
func publish(ev websocket.Event) {
	if config.Hub != nil {
		config.Hub.Publish(ev)
	}
}

// CreateTask membuat task baru yang di-append ke file task.
func CreateTask(c *fiber.Ctx) error {
	// struct TaskRequest menerima inputan dari user
	type TaskRequest struct {
		AssignedUser string `json:"assigned_user" validate:"required"`
		Title        string `json:"title" validate:"required"`
		Description  string `json:"description"`
		DueDate      string `json:"due_date" validate:"required"`
		Completed    string `json:"completed"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		// kembalikan error 400 jika inputan tidak valid
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	task, err := config.Tasks.Add(req.AssignedUser, req.Title, req.Description, req.DueDate, req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUnknownUser):
			// assigned_user harus user yang terdaftar
			return c.Status(400).JSON(fiber.Map{
				"message": "User does not exist",
				"success": false,
				"status":  400,
			})
		case errors.Is(err, store.ErrInvalidDateFormat):
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid due date, use DD Mon YYYY (e.g. 25 Oct 2024)",
				"success": false,
				"status":  400,
			})
		default:
			logger.ErrorLogger.Error("Error creating task", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error creating task",
				"success": false,
				"status":  500,
			})
		}
	}

	publish(websocket.Event{Event: "task_created", Task: task})

	// kembalikan respons sukses jika task berhasil dibuat
	logger.AuditLogger.Info("Task created successfully",
		zap.String("assigned_user", task.AssignedUser), zap.String("title", task.Title))
	return c.Status(201).JSON(fiber.Map{
		"message": "Task created successfully",
		"success": true,
		"status":  201,
		"data":    task,
	})
}

// ListTasks mengembalikan task dalam urutan file. Admin melihat semua
// task, member hanya task miliknya. Query ?completed=true memfilter
// task yang sudah selesai.
func ListTasks(c *fiber.Ctx) error {
	// ambil username dan role dari locals
	username := c.Locals("username").(string)
	role := c.Locals("role").(string)

	var tasks []models.Task
	var err error

	switch {
	case c.Query("completed") == "true":
		tasks, err = config.Tasks.ListCompleted()
		// member hanya boleh melihat task miliknya sendiri
		if err == nil && role != "admin" {
			var mine []models.Task
			for _, t := range tasks {
				if t.AssignedUser == username {
					mine = append(mine, t)
				}
			}
			tasks = mine
		}
	case role == "admin":
		tasks, err = config.Tasks.ListAll()
	default:
		tasks, err = config.Tasks.ListForUser(username)
	}

	if err != nil {
		// kembalikan error 500 jika terjadi kesalahan saat membaca file
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching tasks",
			"success": false,
			"status":  500,
		})
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	// kembalikan respons sukses jika task berhasil diambil
	logger.AuditLogger.Info("Tasks fetched successfully")
	return c.JSON(fiber.Map{
		"message": "Tasks fetched successfully",
		"success": true,
		"status":  200,
		"data":    tasks,
	})
}

// getTaskAt mengambil task pada posisi :pos dan memeriksa hak akses.
func getTaskAt(c *fiber.Ctx) (models.Task, bool) {
	username := c.Locals("username").(string)
	role := c.Locals("role").(string)

	pos, err := c.ParamsInt("pos")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task position", zap.Error(err))
		c.Status(400).JSON(fiber.Map{
			"message": "Invalid task position",
			"success": false,
			"status":  400,
		})
		return models.Task{}, false
	}

	task, err := config.Tasks.Get(pos)
	if err != nil {
		if errors.Is(err, store.ErrTaskOutOfRange) {
			c.Status(404).JSON(fiber.Map{
				"message": "Task not found",
				"success": false,
				"status":  404,
			})
			return models.Task{}, false
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		c.Status(500).JSON(fiber.Map{
			"message": "Error fetching task",
			"success": false,
			"status":  500,
		})
		return models.Task{}, false
	}

	// Periksa apakah user memiliki izin untuk mengakses task ini
	if role != "admin" && task.AssignedUser != username {
		logger.SecurityLogger.Warn("Forbidden", zap.String("role", role),
			zap.String("username", username), zap.Int("position", pos))
		c.Status(403).JSON(fiber.Map{
			"message": "Forbidden",
			"success": false,
			"status":  403,
		})
		return models.Task{}, false
	}
	return task, true
}

// GetTask mengembalikan satu task pada posisi :pos.
func GetTask(c *fiber.Ctx) error {
	task, ok := getTaskAt(c)
	if !ok {
		return nil
	}
	logger.AuditLogger.Info("Task found", zap.Int("position", task.Position))
	return c.JSON(fiber.Map{
		"message": "Task found",
		"success": true,
		"status":  200,
		"data":    task,
	})
}

// UpdateTask mengedit task pada posisi :pos. Task yang sudah selesai
// tidak boleh diedit. Field yang tidak dikirim tidak berubah.
func UpdateTask(c *fiber.Ctx) error {
	task, ok := getTaskAt(c)
	if !ok {
		return nil
	}

	if store.IsCompleted(task) {
		// task yang sudah selesai tidak boleh diedit
		return c.Status(409).JSON(fiber.Map{
			"message": "Task is already completed and cannot be edited",
			"success": false,
			"status":  409,
		})
	}

	// struktur request untuk mengupdate task
	// pointer (*) untuk menandakan bahwa field bisa kosong
	type UpdateTaskRequest struct {
		AssignedUser *string `json:"assigned_user"`
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		DueDate      *string `json:"due_date"`
		Completed    *string `json:"completed"`
	}

	// parsing body request ke dalam struct
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		// kembalikan error 400 jika body request tidak dapat diparsing
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if req.AssignedUser != nil {
		exists, err := config.Users.Exists(*req.AssignedUser)
		if err != nil {
			logger.ErrorLogger.Error("Error reading credential file", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error verifying user",
				"success": false,
				"status":  500,
			})
		}
		if !exists {
			// username tidak terdaftar: tolak, field lama dipertahankan
			return c.Status(400).JSON(fiber.Map{
				"message": "User does not exist",
				"success": false,
				"status":  400,
			})
		}
		task.AssignedUser = *req.AssignedUser
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		if _, err := store.ParseDate(*req.DueDate); err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid due date, use DD Mon YYYY (e.g. 25 Oct 2024)",
				"success": false,
				"status":  400,
			})
		}
		task.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		if *req.Completed != "Yes" && *req.Completed != "No" {
			return c.Status(400).JSON(fiber.Map{
				"message": "Completed must be Yes or No",
				"success": false,
				"status":  400,
			})
		}
		task.Completed = *req.Completed
	}

	if err := config.Tasks.Update(task.Position, task); err != nil {
		// kembalikan error 500 jika terjadi kesalahan saat menulis file
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating task",
			"success": false,
			"status":  500,
		})
	}

	publish(websocket.Event{Event: "task_updated", Position: task.Position, Task: task})

	// kembalikan respons sukses jika task berhasil diupdate
	logger.AuditLogger.Info("Task updated", zap.Int("position", task.Position))
	return c.Status(200).JSON(fiber.Map{
		"message": "Task updated successfully",
		"success": true,
		"status":  200,
		"data":    task,
	})
}

// CompleteTask menandai task pada posisi :pos sebagai selesai.
func CompleteTask(c *fiber.Ctx) error {
	task, ok := getTaskAt(c)
	if !ok {
		return nil
	}

	if err := config.Tasks.MarkComplete(task.Position); err != nil {
		if errors.Is(err, store.ErrTaskCompleted) {
			return c.Status(409).JSON(fiber.Map{
				"message": "Task is already completed",
				"success": false,
				"status":  409,
			})
		}
		logger.ErrorLogger.Error("Error completing task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error completing task",
			"success": false,
			"status":  500,
		})
	}
	task.Completed = "Yes"

	publish(websocket.Event{Event: "task_updated", Position: task.Position, Task: task})

	logger.AuditLogger.Info("Task marked as complete", zap.Int("position", task.Position))
	return c.Status(200).JSON(fiber.Map{
		"message": "Task marked as complete",
		"success": true,
		"status":  200,
		"data":    task,
	})
}

// DeleteTask menghapus task pada posisi :pos, hanya untuk admin.
// Posisi task setelahnya bergeser satu ke depan.
func DeleteTask(c *fiber.Ctx) error {
	role := c.Locals("role").(string)
	if role != "admin" {
		logger.SecurityLogger.Warn("Non-admin tried to delete a task", zap.String("role", role))
		return c.Status(403).JSON(fiber.Map{
			"message": "Forbidden",
			"success": false,
			"status":  403,
		})
	}

	pos, err := c.ParamsInt("pos")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task position", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid task position",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Tasks.Delete(pos); err != nil {
		if errors.Is(err, store.ErrTaskOutOfRange) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Task not found",
				"success": false,
				"status":  404,
			})
		}
		// kembalikan error 500 jika terjadi kesalahan saat menulis file
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting task",
			"success": false,
			"status":  500,
		})
	}

	publish(websocket.Event{Event: "task_deleted", Position: pos})

	// kembalikan respons sukses jika task berhasil dihapus
	logger.AuditLogger.Info("Task deleted", zap.Int("position", pos))
	return c.Status(200).JSON(fiber.Map{
		"message": "Task deleted successfully",
		"success": true,
		"status":  200,
	})
}
