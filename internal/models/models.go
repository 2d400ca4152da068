package models

// User merepresentasikan satu baris pada file kredensial.
// Password disimpan apa adanya (plain text), sesuai kontrak file.
type User struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// Task merepresentasikan satu baris pada file task.
// Position adalah urutan 1-based baris di dalam file; tidak ikut
// dipersist dan diisi ulang oleh setiap operasi listing.
type Task struct {
	Position     int    `json:"position,omitempty"`
	AssignedUser string `json:"assigned_user"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	AssignedDate string `json:"assigned_date"`
	DueDate      string `json:"due_date"`
	Completed    string `json:"completed"`
}
