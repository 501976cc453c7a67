package server

import (
	"log/slog"

	"inkwell/internal/mail"
	"inkwell/internal/middleware"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ShowAbout handles GET /about.
func (s *Server) ShowAbout(c *fiber.Ctx) error {
	return s.render(c, "about", fiber.Map{"Title": "About"})
}

// ShowContact handles GET /contact.
func (s *Server) ShowContact(c *fiber.Ctx) error {
	return s.render(c, "contact", fiber.Map{"Title": "Contact"})
}

// SubmitContact handles POST /contact. The message is relayed synchronously
// through the SMTP mailer; a transport failure is caught, flashed and the
// contact form re-rendered with the submitted values intact.
func (s *Server) SubmitContact(c *fiber.Ctx) error {
	var req struct {
		Name    string `form:"name"`
		Email   string `form:"email"`
		Message string `form:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		s.flash(c, "warning", "Invalid form submission.")
		return s.render(c, "contact", fiber.Map{"Title": "Contact"})
	}

	if err := validateContact(req.Name, req.Email, req.Message); err != nil {
		s.flash(c, "warning", err.Error())
		return s.render(c, "contact", fiber.Map{
			"Title":   "Contact",
			"Name":    req.Name,
			"Email":   req.Email,
			"Message": req.Message,
		})
	}

	err := s.mailer.Send(c.Context(), mail.Message{
		Name:  req.Name,
		Email: req.Email,
		Body:  req.Message,
	})
	if err != nil {
		middleware.MailSendFailures.Inc()
		middleware.Logger.ErrorContext(c.UserContext(), "contact mail delivery failed",
			slog.String("error", err.Error()))
		s.flash(c, "danger", "Sending your message failed, please try again later.")
		return s.render(c, "contact", fiber.Map{
			"Title":   "Contact",
			"Name":    req.Name,
			"Email":   req.Email,
			"Message": req.Message,
		})
	}

	middleware.MailSendTotal.Inc()
	s.flash(c, "success", "Your message was sent successfully!")
	return c.Redirect("/contact", fiber.StatusSeeOther)
}

func validateContact(name, email, message string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	return validation.ValidateRequired("message", message)
}
