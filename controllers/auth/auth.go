package auth

import (
	"fmt"
	"os"
	"time"

	"ticket-booking/constants"
	"ticket-booking/logger"
	"ticket-booking/types"
	adminTypes "ticket-booking/types/admin"
	"ticket-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthController issues admin console tokens. Credentials come from the
// environment: ADMIN_USERNAME plus a bcrypt ADMIN_PASSWORD_HASH.
type AuthController struct {
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{loggerInstance: asyncLogger}
}

func (h *AuthController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)
}

func (h *AuthController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	h.logAPIRequest(c)
	return result
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Login verifies the admin credentials and returns a signed access token.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req adminTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return h.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return h.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	username := os.Getenv("ADMIN_USERNAME")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if username == "" || passwordHash == "" {
		logger.Error("Admin credentials are not configured", nil)
		return h.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Admin login is not configured",
			Data:    nil,
		})
	}

	if req.Username != username ||
		bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		logger.Warning(fmt.Sprintf("Failed admin login attempt for username %s", req.Username))
		return h.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid username or password",
			Data:    nil,
		})
	}

	token, expiresAt, err := h.issueToken(req.Username)
	if err != nil {
		logger.Error("Failed to sign admin token", err)
		return h.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue token",
			Data:    nil,
		})
	}

	h.setSecureCookie(c, "access", token, int(time.Until(expiresAt).Seconds()))
	logger.Success("Admin " + req.Username + " logged in")

	return h.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data: map[string]interface{}{
			"username":   req.Username,
			"expires_at": expiresAt,
		},
	})
}

// LogOut clears the access cookie.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1)
	return h.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out",
		Data:    nil,
	})
}

func (h *AuthController) issueToken(username string) (string, time.Time, error) {
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("ADMIN_JWT_SECRET is not configured")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"username":    username,
		"permissions": []string{constants.PermSuperAdminFull},
		"iat":         time.Now().Unix(),
		"exp":         expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
