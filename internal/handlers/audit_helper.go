package handlers

import (
	"strconv"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	"github.com/BruksfildServices01/booking-panel/internal/session"
)

func writeAudit(
	d *audit.Dispatcher,
	s *session.Session,
	action string,
	entity string,
	entityID int64,
	meta any,
) {
	ev := audit.Event{
		Action:   action,
		Entity:   entity,
		Metadata: meta,
	}
	if entityID > 0 {
		ev.EntityID = &entityID
	}
	if s != nil {
		ev.Actor = strconv.FormatInt(s.UserID, 10)
		ev.Role = string(s.Role)
	}

	d.Dispatch(ev)
}
