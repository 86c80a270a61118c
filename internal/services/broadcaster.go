package services

// Broadcaster publishes service events to connected websocket clients.
// Satisfied by *websocket.Hub; services treat it as optional and skip
// publishing when none is attached.
type Broadcaster interface {
	BroadcastUpdate(updateType, subtype, action string, data interface{})
	BroadcastProgress(step string, progress int, message string)
	BroadcastCalcComplete(calcName string, outputs map[string]float64)
}
