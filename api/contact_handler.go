package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/models"
	"github.com/rpupo63/folio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	contactPath       = "/contact/"
	contactSuccessMsg = "Your message has been sent successfully!"
	contactMissingMsg = "Please fill in all fields."
	maxContactBody    = 64 * 1024
	notifyTimeout     = 20 * time.Second
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	repo      *database.ContactMessageRepo
	flashes   *flashStore
	notifier  services.Notifier
}

func newContactHandler(repo *database.ContactMessageRepo, flashes *flashStore, notifier services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		repo:      repo,
		flashes:   flashes,
		notifier:  notifier,
	}
}

// contactForm returns the pending flash messages of the contact page
// @Summary Contact page
// @Tags Contact
// @Produce json
// @Success 200 {object} ContactContext
// @Router /contact/ [get]
func (h contactHandler) contactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, ContactContext{Messages: h.flashes.pop(r)})
	}
}

// submitContact stores a contact message
// @Summary Submit the contact form
// @Description Form encoded name, email, subject and message. Always redirects back to the contact page with a flash message; nothing is stored when a field is missing.
// @Tags Contact
// @Accept x-www-form-urlencoded
// @Success 303 "Redirect to /contact/"
// @Router /contact/ [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)
		if err := r.ParseForm(); err != nil {
			h.logger.Warn().Err(err).Msg("unreadable contact form")
		}

		// Fields are stored trimmed; a field holding only whitespace is missing.
		msg := models.ContactMessage{
			Name:    strings.TrimSpace(r.PostForm.Get("name")),
			Email:   strings.TrimSpace(r.PostForm.Get("email")),
			Subject: strings.TrimSpace(r.PostForm.Get("subject")),
			Message: strings.TrimSpace(r.PostForm.Get("message")),
		}

		if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
			h.flashes.add(w, r, FlashError, contactMissingMsg)
			http.Redirect(w, r, contactPath, http.StatusSeeOther)
			return
		}

		if err := h.repo.Add(r.Context(), &msg); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact message", err))
			return
		}

		h.notify(msg)
		h.flashes.add(w, r, FlashSuccess, contactSuccessMsg)
		http.Redirect(w, r, contactPath, http.StatusSeeOther)
	}
}

// notify tells the site owner about a new message without holding up the
// response. Delivery failures are only logged.
func (h contactHandler) notify(msg models.ContactMessage) {
	if h.notifier == nil {
		return
	}

	subject := fmt.Sprintf("New contact message: %s", msg.Subject)
	body := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := h.notifier.Notify(ctx, subject, body); err != nil {
			h.logger.Error().Err(err).Str("messageId", msg.ID.String()).Msg("failed to send contact notification")
		}
	}()
}
