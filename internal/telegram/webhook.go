package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

	maxUpdateBytes = 1 << 20
	openAppLabel   = "Открыть FitCoach"
)

type WebhookHandler struct {
	miniAppURL  string
	secretToken string
}

// NewWebhookHandler answers bot updates. An empty secretToken disables the
// secret header check.
func NewWebhookHandler(miniAppURL, secretToken string) *WebhookHandler {
	return &WebhookHandler{
		miniAppURL:  miniAppURL,
		secretToken: secretToken,
	}
}

func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.telegram.webhook")
	defer span.End()

	if h.secretToken != "" && r.Header.Get(SecretTokenHeader) != h.secretToken {
		log.Warnf("telegram webhook: wrong secret token from %s", r.RemoteAddr)
		pkg.WriteError(w, http.StatusUnauthorized, "invalid_secret")
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUpdateBytes)).Decode(&update); err != nil {
		log.Errorf("telegram webhook: decode update: %s", err)
		pkg.WriteError(w, http.StatusBadRequest, "invalid_update")
		return
	}
	span.SetAttributes(attribute.Int("telegram.update_id", update.UpdateID))

	msg := update.Message
	if msg == nil {
		log.WithField("update_id", update.UpdateID).Debug("telegram webhook: update without message")
		w.WriteHeader(http.StatusOK)
		return
	}

	log.WithFields(log.Fields{
		"update_id": update.UpdateID,
		"chat_id":   msg.Chat.ID,
		"from":      senderID(msg),
		"command":   msg.Command(),
	}).Info("telegram webhook: message received")

	if msg.Command() != "start" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := tgbotapi.WriteToHTTPResponse(w, h.startReply(msg)); err != nil {
		log.Errorf("telegram webhook: write /start reply to chat %d: %s", msg.Chat.ID, err)
	}
}

func (h *WebhookHandler) startReply(msg *tgbotapi.Message) tgbotapi.MessageConfig {
	reply := tgbotapi.NewMessage(msg.Chat.ID, greeting(msg.From))
	if h.miniAppURL != "" {
		reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL(openAppLabel, h.miniAppURL),
			),
		)
	}
	return reply
}

func greeting(from *tgbotapi.User) string {
	name := ""
	if from != nil {
		name = strings.TrimSpace(from.FirstName)
	}
	if name == "" {
		return "Привет! Тренировки, питание и прогресс в приложении."
	}
	return fmt.Sprintf("Привет, %s! Тренировки, питание и прогресс в приложении.", name)
}

func senderID(msg *tgbotapi.Message) int64 {
	if msg.From == nil {
		return 0
	}
	return msg.From.ID
}
