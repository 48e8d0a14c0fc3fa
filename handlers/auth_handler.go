package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nilesh-dagdi/CampusMart/config"
	"github.com/nilesh-dagdi/CampusMart/internal/mailer"
	"github.com/nilesh-dagdi/CampusMart/internal/metrics"
	"github.com/nilesh-dagdi/CampusMart/internal/otp"
	"github.com/nilesh-dagdi/CampusMart/models"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	OTP      *otp.Service
	Mail     mailer.Sender
	TokenTTL time.Duration
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, otpSvc *otp.Service, mail mailer.Sender, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, OTP: otpSvc, Mail: mail, TokenTTL: tokenTTL}
}

// SignupRequest defines the payload for registration
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Year     string `json:"year"`
	Mobile   string `json:"mobile"`
	OTP      string `json:"otp"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// Signup - POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	// The code emailed in the send-otp step gates account creation.
	switch err := h.OTP.Verify(c.Context(), req.Email, req.OTP); {
	case errors.Is(err, otp.ErrNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "OTP not found. Please request a new one."})
	case errors.Is(err, otp.ErrMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid OTP"})
	case errors.Is(err, otp.ErrExpired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "OTP expired. Please request a new one."})
	case err != nil:
		log.Printf("Signup OTP check error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error during signup"})
	}

	if err := utils.ValidateName(req.Name); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateMobile(req.Mobile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateEmail(req.Email, h.Cfg.EmailDomain, h.Cfg.IsDevelopment()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashedPassword,
		Year:     req.Year,
		Mobile:   req.Mobile,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
	}

	token, err := utils.GenerateToken(h.Cfg.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not sign up"})
	}

	// The code is spent once the account exists.
	if err := h.OTP.Consume(c.Context(), req.Email); err != nil {
		log.Printf("Failed to delete OTP for %s: %v", req.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":     user.ID,
			"email":  user.Email,
			"name":   user.Name,
			"year":   user.Year,
			"mobile": user.Mobile,
		},
	})
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateToken(h.Cfg.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not login"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":     user.ID,
			"email":  user.Email,
			"name":   user.Name,
			"year":   user.Year,
			"mobile": user.Mobile,
		},
	})
}

// SendOTP - POST /api/auth/send-otp
// Issues a signup code; rejects emails that already have an account.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := utils.ValidateEmail(req.Email, h.Cfg.EmailDomain, h.Cfg.IsDevelopment()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
	}

	return h.issueAndMail(c, req.Email, "Your OTP for Sign Up")
}

// VerifyOTP - POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	switch err := h.OTP.Verify(c.Context(), req.Email, req.OTP); {
	case errors.Is(err, otp.ErrNotFound), errors.Is(err, otp.ErrMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid OTP"})
	case errors.Is(err, otp.ErrExpired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "OTP expired"})
	case err != nil:
		log.Printf("Verify OTP error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error verifying OTP"})
	}

	// Not consumed here: signup verifies again and deletes it.
	return c.JSON(fiber.Map{"message": "OTP verified successfully"})
}

// ForgotPassword - POST /api/auth/forgot-password
// Same OTP machinery as signup, but the account must exist.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User with this email does not exist"})
	}

	return h.issueAndMail(c, req.Email, "Reset Your Password - CampusMart")
}

// ResetPassword - POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	switch err := h.OTP.Verify(c.Context(), req.Email, req.OTP); {
	case errors.Is(err, otp.ErrNotFound), errors.Is(err, otp.ErrMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid OTP"})
	case errors.Is(err, otp.ErrExpired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "OTP expired. Please request a new one."})
	case err != nil:
		log.Printf("Reset password OTP check error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	res := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Update("password", hashedPassword)
	if res.Error != nil || res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User with this email does not exist"})
	}

	if err := h.OTP.Consume(c.Context(), req.Email); err != nil {
		log.Printf("Failed to delete OTP for %s: %v", req.Email, err)
	}

	return c.JSON(fiber.Map{"message": "Password reset successful. You can now login with your new password."})
}

func (h *AuthHandler) issueAndMail(c *fiber.Ctx, email, subject string) error {
	code, err := h.OTP.Issue(c.Context(), email)
	if err != nil {
		var cd *otp.CooldownError
		if errors.As(err, &cd) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Please wait %d seconds before requesting a new OTP.", cd.Seconds),
			})
		}
		log.Printf("OTP issue error for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error sending OTP"})
	}

	text := fmt.Sprintf("Your OTP is: %s. It expires in 10 minutes.", code)
	if err := h.Mail.Send(c.Context(), email, subject, text); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send OTP email. Please try again later."})
	}
	metrics.OTPEmailsSent.Inc()

	return c.JSON(fiber.Map{"message": "OTP sent to your email"})
}
