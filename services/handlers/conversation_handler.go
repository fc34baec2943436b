package handlers

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

type ConversationHandler struct {
	conversationService ConversationServiceInterface
}

func NewConversationHandler(conversationService ConversationServiceInterface) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// SendMessage godoc
// @Summary Send a message
// @Description Starts or continues a conversation. A context with mode=onboarding runs the onboarding flow.
// @Description With stream=true the reply is sent as server-sent events: "chunk" events carry text and a final "done" event carries the turn.
// @Tags conversations
// @Accept json
// @Produce json
// @Produce text/event-stream
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {object} shared.Response{data=dto.ConversationTurn}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/conversations/messages [post]
func (h *ConversationHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	process := dto.ProcessMessageRequest{
		ConversationID: req.ConversationID,
		UserID:         currentUser(c),
		Message:        req.Message,
		InitialContext: req.Context,
	}

	if !req.Stream {
		turn, err := h.conversationService.ProcessMessage(c.UserContext(), process, nil)
		if err != nil {
			return err
		}
		return shared.ResponseJSON(c, fiber.StatusOK, "Success", turn)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// The stream writer outlives the handler, so it gets its own context.
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		onChunk := func(text string) {
			if err := writeEvent(w, "chunk", map[string]string{"text": text}); err != nil {
				cancel()
			}
		}

		turn, err := h.conversationService.ProcessMessage(ctx, process, onChunk)
		if err != nil {
			message := "Internal Server Error"
			if appErr, ok := shared.GetAppError(err); ok {
				message = appErr.Message
			}
			log.WithFields(log.Fields{"conversation_id": process.ConversationID, "error": err}).Warn("Streamed message failed")
			_ = writeEvent(w, "error", map[string]string{"message": message})
			return
		}
		_ = writeEvent(w, "done", turn)
	})
	return nil
}

func writeEvent(w *bufio.Writer, event string, data interface{}) error {
	body, err := shared.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, body); err != nil {
		return err
	}
	return w.Flush()
}

// ListConversations godoc
// @Summary List conversations
// @Tags conversations
// @Produce json
// @Security Bearer
// @Param limit query int false "Max rows" default(20)
// @Success 200 {object} shared.Response{data=[]dto.ConversationSummary}
// @Router /api/v1/conversations [get]
func (h *ConversationHandler) ListConversations(c *fiber.Ctx) error {
	list, err := h.conversationService.ListConversations(c.UserContext(), currentUser(c), queryLimit(c, 20, 100))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", list)
}

// GetConversation godoc
// @Summary Get a conversation
// @Description Anonymous conversations are readable without a token until they expire.
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} shared.Response{data=dto.ConversationResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/conversations/{id} [get]
func (h *ConversationHandler) GetConversation(c *fiber.Ctx) error {
	conv, err := h.conversationService.GetConversation(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", conv)
}

// DeleteConversation godoc
// @Summary Delete a conversation
// @Tags conversations
// @Produce json
// @Security Bearer
// @Param id path string true "Conversation ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/conversations/{id} [delete]
func (h *ConversationHandler) DeleteConversation(c *fiber.Ctx) error {
	if err := h.conversationService.DeleteConversation(c.UserContext(), currentUser(c), c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// AttachConversation godoc
// @Summary Attach an anonymous conversation to the caller
// @Description Completed onboarding conversations save the collected profile on attach.
// @Tags conversations
// @Produce json
// @Security Bearer
// @Param id path string true "Conversation ID"
// @Success 200 {object} shared.Response{data=dto.ConversationResponse}
// @Router /api/v1/conversations/{id}/attach [post]
func (h *ConversationHandler) AttachConversation(c *fiber.Ctx) error {
	conv, err := h.conversationService.AttachConversation(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", conv)
}

// ExportConversation godoc
// @Summary Export a conversation transcript
// @Description Uploads the transcript to object storage and returns a presigned link.
// @Tags conversations
// @Produce json
// @Security Bearer
// @Param id path string true "Conversation ID"
// @Success 200 {object} shared.Response{data=dto.ExportResponse}
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/conversations/{id}/export [post]
func (h *ConversationHandler) ExportConversation(c *fiber.Ctx) error {
	export, err := h.conversationService.ExportConversation(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", export)
}
