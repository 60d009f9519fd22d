package auth

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"chat-app-backend/internal/user"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	service *Service
	tokens  *TokenIssuer
	cookies CookiePolicy
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type onboardingRequest struct {
	Username string `json:"username"`
	Gender   string `json:"gender"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

func NewHandler(service *Service, tokens *TokenIssuer, cookies CookiePolicy) *Handler {
	return &Handler{service: service, tokens: tokens, cookies: cookies}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/auth/signup", h.signup)
	app.Post("/api/auth/login", h.login)
	app.Post("/api/auth/logout", h.logout)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/auth/onboarding", h.onboarding)
	app.Get("/api/auth/me", h.me)
}

func (h *Handler) signup(c *fiber.Ctx) error {
	payload := new(signupRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "All fields are required")
	}

	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		return fail(c, fiber.StatusBadRequest, "All fields are required")
	}
	if len(payload.Password) < 5 {
		return fail(c, fiber.StatusBadRequest, "Password must be at least 5 characters long")
	}
	if !emailPattern.MatchString(payload.Email) {
		return fail(c, fiber.StatusBadRequest, "Invalid email")
	}

	created, err := h.service.Signup(payload.Username, payload.Email, payload.Password, payload.Gender)
	if err != nil {
		if err == user.ErrEmailExists {
			return fail(c, fiber.StatusBadRequest, "User already exists")
		}
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.issueSession(c, created.ID); err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    sanitizeUser(created),
		"message": "User created successfully",
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "All fields are required")
	}

	if payload.Email == "" || payload.Password == "" {
		return fail(c, fiber.StatusBadRequest, "All fields are required")
	}

	u, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		// distinct statuses, same message: the body never reveals whether
		// the email exists.
		if err == user.ErrNotFound {
			return fail(c, fiber.StatusNotFound, "Invalid credentials")
		}
		if err == ErrInvalidCredentials {
			return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.issueSession(c, u.ID); err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    sanitizeUser(u),
		"message": "Login successful",
	})
}

// logout needs no session: clearing a cookie that does not exist is a no-op.
// The token itself stays valid until it expires, there is no revocation list.
func (h *Handler) logout(c *fiber.Ctx) error {
	c.Cookie(h.cookies.Expired())
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *Handler) onboarding(c *fiber.Ctx) error {
	userID, err := UserIDFromCtx(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(onboardingRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "All fields are required")
	}

	if missing := payload.missingFields(); len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":       false,
			"message":       "All fields are required",
			"missingFields": missing,
		})
	}

	updated, err := h.service.Onboard(userID, user.ProfileUpdate{
		Username: payload.Username,
		Gender:   payload.Gender,
		Bio:      payload.Bio,
		Location: payload.Location,
	})
	if err != nil {
		if err == user.ErrNotFound {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    sanitizeUser(updated),
		"message": "Onboarding successful",
	})
}

// me returns the caller's record so frontends can restore a session from the
// cookie alone.
func (h *Handler) me(c *fiber.Ctx) error {
	userID, err := UserIDFromCtx(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	u, err := h.service.GetByID(userID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    sanitizeUser(u),
	})
}

func (h *Handler) issueSession(c *fiber.Ctx, userID string) error {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		return err
	}
	c.Cookie(h.cookies.Session(token))
	return nil
}

func (r onboardingRequest) missingFields() []string {
	missing := make([]string, 0, 4)
	if r.Username == "" {
		missing = append(missing, "username")
	}
	if r.Gender == "" {
		missing = append(missing, "gender")
	}
	if r.Bio == "" {
		missing = append(missing, "bio")
	}
	if r.Location == "" {
		missing = append(missing, "location")
	}
	return missing
}

// UserIDFromCtx extracts the user_id claim from the JWT token stored in
// c.Locals("user") by the request middleware. The chat package needs the
// same lookup, so we export it here.
func UserIDFromCtx(c *fiber.Ctx) (string, error) {
	u := c.Locals("user")
	if u == nil {
		return "", fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func sanitizeUser(u user.User) user.User {
	u.Password = ""
	return u
}
