package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/garage/internal/api/dto"
	"github.com/martijn/garage/internal/core/domain"
	"github.com/martijn/garage/internal/core/service"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// CreateClient handles POST /api/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req.ToPatch())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toClientResponse(client))
}

// GetClient handles GET /api/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// ListClients handles GET /api/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.ClientResponse, len(clients))
	for i, client := range clients {
		response[i] = toClientResponse(client)
	}

	c.JSON(http.StatusOK, response)
}

// UpdateClient handles PUT and PATCH /api/clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// DeleteClient handles DELETE /api/clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toClientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:             client.ID,
		LastName:       client.LastName,
		FirstName:      client.FirstName,
		Email:          client.Email,
		Phone:          client.Phone,
		PostalAddress:  client.PostalAddress,
		Vehicle:        client.Vehicle,
		Quote:          client.Quote,
		Preferences:    client.Preferences,
		AttachmentName: client.AttachmentName,
		CreatedAt:      client.CreatedAt,
		UpdatedAt:      client.UpdatedAt,
	}
}

// writeError answers with the status carried by a ServiceError, 500 otherwise.
func writeError(c *gin.Context, err error) {
	var serr *service.ServiceError
	if errors.As(err, &serr) {
		c.JSON(serr.Code, dto.ErrorResponse{
			Error:   http.StatusText(serr.Code),
			Message: serr.Message,
			Code:    serr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal Server Error",
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
