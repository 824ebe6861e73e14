package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/appointment"
	redisclient "github.com/profbkmurage/physiocare/internal/redis"
)

const watchHeartbeat = 25 * time.Second

// watchAppointmentsHandler streams appointment changes over Server-Sent
// Events. The stream opens with a snapshot of the caller's current
// appointments, then forwards every change event until the client
// disconnects. Admins see the full collection; everyone else only the
// appointments they own.
func watchAppointmentsHandler(svc *appointment.Service, bus redisclient.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming_unsupported", "response writer cannot stream")
			return
		}

		if bus == nil {
			writeError(w, http.StatusServiceUnavailable, "watch_unavailable", "live updates are not enabled")
			return
		}

		ctx := r.Context()
		admin := ident.Role.Privileged()

		// Subscribe before the snapshot so no change slips between the two.
		events, err := bus.Subscribe(ctx, appointment.Collection)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "watch_unavailable", err.Error())
			return
		}

		var snapshot []appointment.Appointment
		if admin {
			snapshot, err = svc.ListAll(ctx, "")
		} else {
			snapshot, err = svc.ListForUser(ctx, ident.ID)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		writeSSE(w, "snapshot", toAppointmentList(snapshot))
		flusher.Flush()

		heartbeat := time.NewTicker(watchHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case ev, ok := <-events:
				if !ok {
					return
				}
				if !admin && !eventForWatcher(ctx, svc, ident.ID, ev) {
					continue
				}
				writeSSE(w, ev.Type, ev)
				flusher.Flush()
			}
		}
	}
}

// eventForWatcher reports whether a non-admin watcher should see the event.
// Events carry the owner's id so deletes still reach the owner after the
// record is gone; a fetch is the fallback for events from older publishers
// that lack it.
func eventForWatcher(ctx context.Context, svc *appointment.Service, userID uuid.UUID, ev redisclient.Event) bool {
	if ev.UserID != "" {
		return ev.UserID == userID.String()
	}
	id, err := uuid.Parse(ev.RecordID)
	if err != nil {
		return false
	}
	appt, err := svc.Get(ctx, id)
	if err != nil {
		return false
	}
	return appt.UserID == userID
}

func writeSSE(w http.ResponseWriter, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
