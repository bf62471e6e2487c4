package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"baartal/internal/services/notification"
	"baartal/internal/utils"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications with the unread count.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	p := utils.GetPagination(c)
	notifications, total, err := h.notificationService.List(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return utils.Error(c, err)
	}

	unread, err := h.notificationService.UnreadCount(c.Context(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, fiber.Map{
		"notifications": notifications,
		"unreadCount":   unread,
		"pagination":    p,
	})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid notification id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	if err := h.notificationService.MarkRead(c.Context(), claims.UserID, id); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "notification marked read"})
}
