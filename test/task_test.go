package test

import (
	"fmt"
	"testing"
	"time"
)

func TestCreateTask(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	memberToken, username := RegisterAndLogin(t, app)

	status, result := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
		"assigned_user": username,
		"title":         "Write report",
		"description":   "quarterly numbers",
		"due_date":      "01 Jan 2030",
		"completed":     "No",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d: %v", status, result)
	}
	data := result["data"].(map[string]interface{})
	if data["assigned_user"] != username {
		t.Errorf("Expected assigned_user %s, got %v", username, data["assigned_user"])
	}
	if data["assigned_date"] != time.Now().Format("02 Jan 2006") {
		t.Errorf("Expected assigned_date today, got %v", data["assigned_date"])
	}
	if data["completed"] != "No" {
		t.Errorf("Expected completed No, got %v", data["completed"])
	}
}

func TestCreateTaskValidation(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	memberToken, username := RegisterAndLogin(t, app)

	// assigned_user harus user terdaftar
	status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
		"assigned_user": "ghost",
		"title":         "t",
		"due_date":      "01 Jan 2030",
	})
	if status != 400 {
		t.Errorf("Expected status 400 for unknown user, got %d", status)
	}

	// due_date harus DD Mon YYYY
	status, _ = DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
		"assigned_user": username,
		"title":         "t",
		"due_date":      "2030-01-01",
	})
	if status != 400 {
		t.Errorf("Expected status 400 for bad date, got %d", status)
	}
}

func TestListTasksScopedByRole(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	adminToken := LoginAdmin(t, app)
	memberToken, username := RegisterAndLogin(t, app)
	otherToken, otherName := RegisterAndLogin(t, app)

	for token, name := range map[string]string{memberToken: username, otherToken: otherName} {
		status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", token, map[string]string{
			"assigned_user": name,
			"title":         "task for " + name,
			"due_date":      "01 Jan 2030",
		})
		if status != 201 {
			t.Fatalf("Expected status 201, got %d", status)
		}
	}

	// Member hanya melihat task miliknya
	status, result := DoJSON(t, app, "GET", "/api/v1/tasks/", memberToken, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("Expected exactly 1 task for member, got %d", len(data))
	}
	task := data[0].(map[string]interface{})
	if task["assigned_user"] != username {
		t.Errorf("Expected tasks for %s only, got %v", username, task["assigned_user"])
	}
	if task["due_date"] != "01 Jan 2030" {
		t.Errorf("Expected due_date 01 Jan 2030, got %v", task["due_date"])
	}

	// Admin melihat semua task
	status, result = DoJSON(t, app, "GET", "/api/v1/tasks/", adminToken, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if got := len(result["data"].([]interface{})); got != 2 {
		t.Errorf("Expected 2 tasks for admin, got %d", got)
	}
}

func TestListCompletedFilter(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	memberToken, username := RegisterAndLogin(t, app)

	for i, completed := range []string{"No", "Yes", "No"} {
		status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
			"assigned_user": username,
			"title":         fmt.Sprintf("task %d", i+1),
			"due_date":      "01 Jan 2030",
			"completed":     completed,
		})
		if status != 201 {
			t.Fatalf("Expected status 201, got %d", status)
		}
	}

	status, result := DoJSON(t, app, "GET", "/api/v1/tasks/?completed=true", memberToken, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("Expected 1 completed task, got %d", len(data))
	}
	if data[0].(map[string]interface{})["title"] != "task 2" {
		t.Errorf("Expected task 2, got %v", data[0])
	}
}

func TestUpdateTask(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	memberToken, username := RegisterAndLogin(t, app)

	status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
		"assigned_user": username,
		"title":         "before",
		"due_date":      "01 Jan 2030",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d", status)
	}

	// Update parsial: hanya due date yang berubah
	status, result := DoJSON(t, app, "PUT", "/api/v1/tasks/1", memberToken, map[string]string{
		"due_date": "05 Mar 2031",
	})
	if status != 200 {
		t.Fatalf("Expected status 200, got %d: %v", status, result)
	}
	data := result["data"].(map[string]interface{})
	if data["due_date"] != "05 Mar 2031" {
		t.Errorf("Expected new due date, got %v", data["due_date"])
	}
	if data["title"] != "before" {
		t.Errorf("Expected title unchanged, got %v", data["title"])
	}

	// Reassignment ke user tak dikenal ditolak
	status, _ = DoJSON(t, app, "PUT", "/api/v1/tasks/1", memberToken, map[string]string{
		"assigned_user": "ghost",
	})
	if status != 400 {
		t.Errorf("Expected status 400 for unknown user, got %d", status)
	}
}

func TestUpdateCompletedTaskRejected(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	memberToken, username := RegisterAndLogin(t, app)

	status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
		"assigned_user": username,
		"title":         "done",
		"due_date":      "01 Jan 2030",
		"completed":     "Yes",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d", status)
	}

	// Task yang sudah selesai tidak boleh diedit
	status, _ = DoJSON(t, app, "PUT", "/api/v1/tasks/1", memberToken, map[string]string{
		"title": "changed",
	})
	if status != 409 {
		t.Errorf("Expected status 409, got %d", status)
	}

	// Record tersimpan tidak berubah
	status, result := DoJSON(t, app, "GET", "/api/v1/tasks/1", memberToken, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if result["data"].(map[string]interface{})["title"] != "done" {
		t.Errorf("Expected title unchanged after rejected edit")
	}
}

func TestCompleteTask(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	memberToken, username := RegisterAndLogin(t, app)

	status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
		"assigned_user": username,
		"title":         "open",
		"due_date":      "01 Jan 2030",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d", status)
	}

	status, result := DoJSON(t, app, "PUT", "/api/v1/tasks/1/complete", memberToken, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d: %v", status, result)
	}
	if result["data"].(map[string]interface{})["completed"] != "Yes" {
		t.Errorf("Expected completed Yes")
	}

	// Menyelesaikan task yang sudah selesai ditolak
	status, _ = DoJSON(t, app, "PUT", "/api/v1/tasks/1/complete", memberToken, nil)
	if status != 409 {
		t.Errorf("Expected status 409 for already completed task, got %d", status)
	}
}

func TestTaskAccessControl(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	memberToken, username := RegisterAndLogin(t, app)
	otherToken, _ := RegisterAndLogin(t, app)

	status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
		"assigned_user": username,
		"title":         "private",
		"due_date":      "01 Jan 2030",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d", status)
	}

	// Member lain tidak boleh membaca atau mengubah task ini
	status, _ = DoJSON(t, app, "GET", "/api/v1/tasks/1", otherToken, nil)
	if status != 403 {
		t.Errorf("Expected status 403, got %d", status)
	}
	status, _ = DoJSON(t, app, "PUT", "/api/v1/tasks/1/complete", otherToken, nil)
	if status != 403 {
		t.Errorf("Expected status 403, got %d", status)
	}
}

func TestDeleteTask(t *testing.T) {
	app := CreateTestApp()
	ResetTasks(t)
	adminToken := LoginAdmin(t, app)
	memberToken, username := RegisterAndLogin(t, app)

	for i := 1; i <= 3; i++ {
		status, _ := DoJSON(t, app, "POST", "/api/v1/tasks/", memberToken, map[string]string{
			"assigned_user": username,
			"title":         fmt.Sprintf("task %d", i),
			"due_date":      "01 Jan 2030",
		})
		if status != 201 {
			t.Fatalf("Expected status 201, got %d", status)
		}
	}

	// Member tidak boleh menghapus
	status, _ := DoJSON(t, app, "DELETE", "/api/v1/tasks/2", memberToken, nil)
	if status != 403 {
		t.Errorf("Expected status 403 for member delete, got %d", status)
	}

	status, _ = DoJSON(t, app, "DELETE", "/api/v1/tasks/2", adminToken, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}

	// Tinggal 2 task, urutan relatif dipertahankan
	status, result := DoJSON(t, app, "GET", "/api/v1/tasks/", adminToken, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("Expected 2 tasks after delete, got %d", len(data))
	}
	if data[0].(map[string]interface{})["title"] != "task 1" ||
		data[1].(map[string]interface{})["title"] != "task 3" {
		t.Errorf("Expected task 1 and task 3 to remain in order")
	}

	// Posisi di luar range
	status, _ = DoJSON(t, app, "DELETE", "/api/v1/tasks/9", adminToken, nil)
	if status != 404 {
		t.Errorf("Expected status 404, got %d", status)
	}
}

func TestTasksRequireToken(t *testing.T) {
	app := CreateTestApp()

	status, _ := DoJSON(t, app, "GET", "/api/v1/tasks/", "", nil)
	if status != 401 {
		t.Errorf("Expected status 401, got %d", status)
	}
}
