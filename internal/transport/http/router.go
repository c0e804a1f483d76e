package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"

	"github.com/TaslimOwolarafe/JoyRoom/internal/service"
	httpmw "github.com/TaslimOwolarafe/JoyRoom/internal/transport/http/middleware"
	"github.com/TaslimOwolarafe/JoyRoom/internal/transport/ws"
)

func NewRouter(h *Handler, memberSvc *service.MemberService, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(httpmw.LoggingMiddleware)

	// WS endpoint: room association happens via join-room events on the socket.
	r.Get("/ws", wsServer.HandleWS)

	r.Group(func(pr chi.Router) {
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/rooms", func(rm chi.Router) {
			rm.Post("/", h.CreateRoom)
			rm.Get("/", h.ListRooms)

			rm.Route("/{roomName}", func(rr chi.Router) {
				// Opening a room moves the caller's read marker. Deliberately not
				// applied to unread-count, which has to read the marker first.
				rr.With(httpmw.LastAccessedMiddleware(memberSvc)).Get("/", h.GetRoom)
				rr.Get("/participants", h.ListParticipants)
				rr.Post("/participants", h.AddParticipant)
				rr.Delete("/participants", h.RemoveParticipant)
				rr.Get("/messages", h.GetMessages)
				rr.Post("/messages", h.PostMessage)
				rr.Get("/unread-count", h.UnreadCount)
				rr.Post("/mark-read", h.MarkRead)
				rr.Post("/update-last-accessed", h.UpdateLastAccessed)
			})
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
