package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/calendar/internal/helpers"
	"github.com/joshua-takyi/calendar/internal/models"
	"github.com/joshua-takyi/calendar/internal/services"
)

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Event with id %d not found", id)
}

// respondError writes 400/404 for known failures. Everything else is handed to
// the ErrorHandler middleware so the client only sees a generic 500.
func respondError(c *gin.Context, id int64, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, helpers.ValidationErrorResponse(vErr.Violations))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, helpers.ErrorResponse(notFoundMessage(id)))
	default:
		_ = c.Error(err)
	}
}

func bindEventInput(c *gin.Context) (*models.EventInput, bool) {
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		res := helpers.ErrorResponse("Invalid request body")
		res.Message = err.Error()
		c.JSON(http.StatusBadRequest, res)
		return nil, false
	}
	return &input, true
}

func bindEventID(c *gin.Context) (int64, bool) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid event ID format"))
		return 0, false
	}
	return id, true
}

func CreateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := bindEventInput(c)
		if !ok {
			return
		}

		event, err := e.CreateEvent(c.Request.Context(), input)
		if err != nil {
			respondError(c, 0, err)
			return
		}

		c.JSON(http.StatusCreated, models.ToResponse(event))
	}
}

func ListEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := e.ListEvents(c.Request.Context())
		if err != nil {
			respondError(c, 0, err)
			return
		}

		c.JSON(http.StatusOK, models.ToResponses(events))
	}
}

func GetEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bindEventID(c)
		if !ok {
			return
		}

		event, err := e.GetEvent(c.Request.Context(), id)
		if err != nil {
			respondError(c, id, err)
			return
		}
		if event == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse(notFoundMessage(id)))
			return
		}

		c.JSON(http.StatusOK, models.ToResponse(event))
	}
}

func UpdateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bindEventID(c)
		if !ok {
			return
		}
		input, ok := bindEventInput(c)
		if !ok {
			return
		}

		event, err := e.UpdateEvent(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, id, err)
			return
		}

		c.JSON(http.StatusOK, models.ToResponse(event))
	}
}

func DeleteEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bindEventID(c)
		if !ok {
			return
		}

		if err := e.DeleteEvent(c.Request.Context(), id); err != nil {
			respondError(c, id, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
