package handler

import "github.com/eventhub/event-server/internal/core/ports"

type createEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location"`
}

// toEventInput maps the HTTP request to the service DTO.
func toEventInput(r createEventRequest) ports.EventInput {
	return ports.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
	}
}
