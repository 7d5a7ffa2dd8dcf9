package handler

import (
	"paidvine/backend/internal/appeal"
	"paidvine/backend/internal/eventhub"
	"paidvine/backend/internal/rewards"
	"paidvine/backend/internal/storage"
	"paidvine/backend/internal/survey"
)

// Handler holds the services behind the HTTP API.
type Handler struct {
	Appeals   *appeal.Service
	Surveys   *survey.Service
	Rewards   *rewards.Service
	Storage   storage.Storage
	Hub       *eventhub.Manager
	JWTSecret []byte
}

func NewHandler(appeals *appeal.Service, surveys *survey.Service, rw *rewards.Service, s storage.Storage, hub *eventhub.Manager, jwtSecret []byte) *Handler {
	return &Handler{
		Appeals:   appeals,
		Surveys:   surveys,
		Rewards:   rw,
		Storage:   s,
		Hub:       hub,
		JWTSecret: jwtSecret,
	}
}
