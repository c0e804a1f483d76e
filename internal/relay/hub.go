package relay

// Hub multiplexes outbound events across the connections of a room. Membership is
// derived from the Registry at call time; delivery is best-effort, a failed Send
// never aborts the fan-out.
type Hub struct {
	reg *Registry
}

func NewHub(reg *Registry) *Hub {
	return &Hub{reg: reg}
}

// Broadcast delivers msg to every connection currently in the room, sender included.
func (h *Hub) Broadcast(roomID string, msg Outbound) {
	for _, c := range h.reg.Connections(roomID) {
		_ = c.Send(msg)
	}
}

// BroadcastExcept delivers msg to everyone in the room but the excluded connection.
func (h *Hub) BroadcastExcept(roomID, exceptID string, msg Outbound) {
	for _, c := range h.reg.Connections(roomID) {
		if c.ID() == exceptID {
			continue
		}
		_ = c.Send(msg)
	}
}

// Unicast delivers msg to exactly one connection.
func (h *Hub) Unicast(c Conn, msg Outbound) {
	_ = c.Send(msg)
}
