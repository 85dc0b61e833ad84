// Package handlers exposes the welcome email pipeline over HTTP.
package handlers

import (
	"net/http"

	"github.com/dmitrymomot/mailforge/internal"
	"github.com/dmitrymomot/mailforge/internal/welcome"
)

// Email serves POST /email/preview and POST /email/send.
type Email struct {
	svc *welcome.Service
}

// NewEmail creates the email handler.
func NewEmail(svc *welcome.Service) *Email {
	return &Email{svc: svc}
}

// Routes implements internal.Handler.
func (h *Email) Routes(r internal.Router) {
	r.POST("/email/preview", h.preview)
	r.POST("/email/send", h.send)
}

type previewResponse struct {
	HTML string `json:"html"`
}

type sendData struct {
	ID string `json:"id"`
}

type sendResponse struct {
	Message string   `json:"message"`
	Data    sendData `json:"data"`
}

func (h *Email) preview(c internal.Context) error {
	var req welcome.PreviewRequest
	ve, err := c.BindJSON(&req)
	if err != nil {
		return err
	}
	if ve != nil {
		return ve
	}

	r, err := h.svc.Preview(c, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, previewResponse{HTML: r.HTML})
}

func (h *Email) send(c internal.Context) error {
	var req welcome.SendRequest
	ve, err := c.BindJSON(&req)
	if err != nil {
		return err
	}
	if ve != nil {
		return ve
	}

	out, err := h.svc.Send(c, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sendResponse{
		Message: "Email sent successfully",
		Data:    sendData{ID: out.MessageID},
	})
}
