package handler

import (
	drawdomain "secret-santa-go/internal/domain/draw"
	eventdomain "secret-santa-go/internal/domain/event"
	giftsdomain "secret-santa-go/internal/domain/gifts"
	participantdomain "secret-santa-go/internal/domain/participant"
	"secret-santa-go/pkg/logger"
)

type Handlers struct {
	Participants *participantdomain.Service
	Gifts        *giftsdomain.Service
	Events       *eventdomain.Service
	Draw         *drawdomain.Engine

	log logger.Logger
}

func New(participants *participantdomain.Service, gifts *giftsdomain.Service, events *eventdomain.Service, draw *drawdomain.Engine, log logger.Logger) *Handlers {
	return &Handlers{
		Participants: participants,
		Gifts:        gifts,
		Events:       events,
		Draw:         draw,
		log:          log,
	}
}
