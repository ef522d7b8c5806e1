package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/internal/domain"
	"github.com/talkincode/foodhub/internal/mailer"
	"github.com/talkincode/foodhub/internal/repository"
	"github.com/talkincode/foodhub/internal/webserver"
	"go.uber.org/zap"
)

// HeaderIdempotencyKey lets a client retry a contact submission without
// storing it twice
const HeaderIdempotencyKey = "Idempotency-Key"

type contactPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	About    string `json:"about" validate:"required"`
}

func registerContactRoutes() {
	webserver.POST("/api/contact", submitContact)
}

// submitContact stores the message, then mails an acknowledgment to the sender.
//
// The two writes are not atomic. When the mail fails the stored record is
// kept and the client gets a 500. A retry carrying the same Idempotency-Key
// reuses the stored record and only resends the mail; a retry without it
// stores a second copy.
func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&payload); err != nil {
		return message(c, http.StatusBadRequest, "All fields are required!")
	}

	key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
	if len(key) > domain.ContactIDMaxLen {
		return message(c, http.StatusBadRequest, "Idempotency-Key is too long")
	}

	ctx := detached(c)
	appCtx := GetAppContext(c)
	contacts := appCtx.Contacts()

	msg := domain.ContactMessage{
		ID:       key,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		About:    payload.About,
	}

	stored := false
	if msg.ID != "" {
		if _, err := contacts.GetByID(ctx, msg.ID); err == nil {
			stored = true
		} else if !errors.Is(err, repository.ErrNotFound) {
			zap.L().Error("query contact message failed", zap.String("id", msg.ID), zap.Error(err))
			return message(c, http.StatusInternalServerError, "Server error")
		}
	}
	if !stored {
		if err := contacts.Create(ctx, &msg); err != nil && !errors.Is(err, repository.ErrConflict) {
			zap.L().Error("save contact message failed", zap.Error(err))
			return message(c, http.StatusInternalServerError, "Server error")
		}
	}

	ack := mailer.ContactAcknowledgement(msg.Email, msg.Name, msg.About, appCtx.Config().Mail.Signature)
	if err := appCtx.Mailer().Send(ctx, ack); err != nil {
		zap.L().Error("send contact acknowledgment failed",
			zap.String("id", msg.ID),
			zap.String("to", msg.Email),
			zap.Error(err))
		return message(c, http.StatusInternalServerError, "Server error")
	}

	return message(c, http.StatusOK, "Contact saved & email sent!")
}
