package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

type AuthHandler struct {
	accounts ports.AccountService
}

func NewAuthHandler(accounts ports.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type signupRequest struct {
	Email        string   `json:"email"        validate:"required,email"`
	Password     string   `json:"password"     validate:"required,min=6"`
	DisplayName  string   `json:"displayName"  validate:"required"`
	UserType     string   `json:"userType"     validate:"required"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	ZipCode      string   `json:"zipCode,omitempty"`
	ContactPhone string   `json:"contactPhone,omitempty"`
	ContactEmail string   `json:"contactEmail,omitempty"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Signup registers a new account and returns a token for it.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.accounts.Register(c.Request().Context(), ports.RegisterAccountInput{
		Email:        req.Email,
		Password:     req.Password,
		DisplayName:  req.DisplayName,
		UserType:     req.UserType,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Message: "account created",
		Token:   token,
		User:    user,
	})
}

// Signin authenticates an account and returns a token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.accounts.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "signed in",
		Token:   token,
		User:    user,
	})
}
