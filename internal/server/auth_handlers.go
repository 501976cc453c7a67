package server

import (
	"errors"

	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ShowRegister handles GET /register.
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{"Title": "Register"})
}

// Register handles POST /register.
//
// Duplicate email redirects to the login page; duplicate name re-renders the
// form. A successful registration establishes the session immediately.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `form:"name"`
		Email    string `form:"email"`
		Password string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		s.flash(c, "warning", "Invalid form submission.")
		return s.render(c, "register", fiber.Map{"Title": "Register"})
	}

	if err := validateRegistration(req.Name, req.Email, req.Password); err != nil {
		s.flash(c, "warning", err.Error())
		return s.render(c, "register", fiber.Map{
			"Title": "Register",
			"Name":  req.Name,
			"Email": req.Email,
		})
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		s.flash(c, "warning", err.Error())
		return c.Redirect("/login", fiber.StatusSeeOther)
	case errors.Is(err, service.ErrNameTaken):
		s.flash(c, "warning", err.Error())
		return s.render(c, "register", fiber.Map{
			"Title": "Register",
			"Name":  req.Name,
			"Email": req.Email,
		})
	case err != nil:
		s.flash(c, "danger", "Something went wrong, please try again.")
		return s.render(c, "register", fiber.Map{"Title": "Register"})
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		s.flash(c, "danger", "Something went wrong, please try again.")
		return s.render(c, "register", fiber.Map{"Title": "Register"})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func validateRegistration(name, email, password string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	return validation.ValidatePassword(password)
}

// ShowLogin handles GET /login.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return s.render(c, "login", fiber.Map{"Title": "Log In"})
}

// Login handles POST /login. Unknown email and wrong password produce the
// same flash so accounts cannot be enumerated.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `form:"email"`
		Password string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		s.flash(c, "warning", "Invalid form submission.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	user, err := s.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			s.flash(c, "warning", err.Error())
		} else {
			s.flash(c, "danger", "Something went wrong, please try again.")
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		s.flash(c, "danger", "Something went wrong, please try again.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles GET /logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
