package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/internal/store"
	"taskman/pkg/logger"
)

// roleFor menentukan role dari username. Satu-satunya administrator
// adalah user "admin" (record yang di-seed saat file dibuat).
func roleFor(username string) string {
	if username == store.SeedAdminUser {
		return "admin"
	}
	return "member"
}

// Auth handlers

// Register mendaftarkan user baru. Hanya admin yang boleh memanggil.
func Register(c *fiber.Ctx) error {
	// ambil role dari locals
	role := c.Locals("role").(string)
	if role != "admin" {
		logger.SecurityLogger.Warn("Non-admin tried to register a user", zap.String("role", role))
		return c.Status(403).JSON(fiber.Map{
			"message": "Only admin can register users",
			"success": false,
			"status":  403,
		})
	}

	// struct RegisterRequest menerima inputan dari user
	type RegisterRequest struct {
		Username string `json:"username" validate:"required,excludesall=@?"`
		Password string `json:"password" validate:"required"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	// Validasi dengan validator
	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// Simpan user baru ke file kredensial.
	// Jika username sudah ada, kembalikan response error 409.
	if err := config.Users.Register(req.Username, req.Password); err != nil {
		switch err {
		case store.ErrDuplicateUser:
			logger.SecurityLogger.Warn("Duplicate username", zap.String("username", req.Username))
			return c.Status(409).JSON(fiber.Map{
				"message": "Username already exists",
				"success": false,
				"status":  409,
			})
		case store.ErrBlankCredential:
			return c.Status(400).JSON(fiber.Map{
				"message": "Username and password must not be blank",
				"success": false,
				"status":  400,
			})
		default:
			logger.ErrorLogger.Error("Error creating user", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error creating user",
				"success": false,
				"status":  500,
			})
		}
	}

	logger.AuditLogger.Info("User registered successfully", zap.String("username", req.Username))
	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"success": true,
		"status":  201,
		"data": fiber.Map{
			"username": req.Username,
		},
	})
}

// Login memverifikasi kredensial dan mengembalikan JSON Web Token (JWT).
// Password dibandingkan apa adanya dengan isi file, tanpa hashing.
func Login(c *fiber.Ctx) error {
	// struct LoginRequest menerima inputan dari user
	type LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		// jika inputan tidak valid, maka akan dikembalikan response error 400
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		// jika inputan tidak valid, maka akan dikembalikan response error 400
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	ok, err := config.Users.Authenticate(req.Username, req.Password)
	if err != nil {
		logger.ErrorLogger.Error("Error reading credential file", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error verifying credentials",
			"success": false,
			"status":  500,
		})
	}
	if !ok {
		// error 401 jika username tidak ada atau password tidak cocok
		logger.SecurityLogger.Warn("Invalid credentials", zap.String("username", req.Username))
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid credentials",
			"success": false,
			"status":  401,
		})
	}

	role := roleFor(req.Username)

	// membuat token JWT dengan menggunakan secret key
	// token JWT ini akan berisi username, role, dan exp (expired time)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": req.Username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * 1).Unix(),
	})

	// token JWT di encode menjadi string
	tokenString, err := token.SignedString(config.SecretKey)
	if err != nil {
		// error 500, jika terjadi error saat mengencode token
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating token",
			"success": false,
			"status":  500,
		})
	}

	// kembalikan response success
	logger.AuditLogger.Info("Login success", zap.String("username", req.Username), zap.String("role", role))
	return c.JSON(fiber.Map{
		"message": "Login success",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"username": req.Username,
			"role":     role,
			"token":    tokenString,
		},
	})
}
