package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const flashCookie = "inkwell_flash"

// Flash is a one-shot notice carried to the next page view.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// generateJTI creates a unique token ID to prevent replay.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// currentUser returns the authenticated principal, or nil when anonymous.
func currentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("currentUser").(*models.User); ok {
		return user
	}
	return nil
}

// isAuthenticated reports whether the request carries a valid session.
func isAuthenticated(c *fiber.Ctx) bool {
	return currentUser(c) != nil
}

// flash queues a one-shot message for the next rendered page. Messages
// accumulate within a request and survive exactly one redirect.
func (s *Server) flash(c *fiber.Ctx, category, message string) {
	flashes, _ := c.Locals("pendingFlashes").([]Flash)
	flashes = append(flashes, Flash{Category: category, Message: message})
	c.Locals("pendingFlashes", flashes)

	payload, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearFlashCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlashes consumes the queued flash messages, clearing the cookie.
func (s *Server) popFlashes(c *fiber.Ctx) []Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}

	s.clearFlashCookie(c)

	payload, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}

// render draws a view inside the main layout with the session state bound in.
func (s *Server) render(c *fiber.Ctx, view string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["CurrentUser"] = currentUser(c)

	// Flashes from the previous request arrive in the cookie; flashes queued
	// during this request sit in locals. popFlashes clears the cookie either
	// way, so a same-request flash renders once and is not carried forward.
	flashes := s.popFlashes(c)
	if pending, ok := c.Locals("pendingFlashes").([]Flash); ok && len(pending) > 0 {
		flashes = append(flashes, pending...)
		s.clearFlashCookie(c)
	}
	bind["Flashes"] = flashes
	return c.Render(view, bind)
}

// renderNotFound draws the shared 404 page. Authorization rejections land
// here too, so a probe cannot tell a hidden route from a missing row.
func (s *Server) renderNotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return s.render(c, "404", fiber.Map{"Title": "Not Found"})
}

// setSessionCookie establishes the browser session for the given user.
func (s *Server) setSessionCookie(c *fiber.Ctx, userID uint) error {
	token, err := s.generateToken(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// clearSessionCookie ends the browser session unconditionally.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// itoa formats an entity ID for use in redirect targets.
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// parseID extracts a route parameter as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
