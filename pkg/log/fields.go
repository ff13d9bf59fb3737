package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor
	FieldUserID   = "user_id"
	FieldClientID = "client_id"

	// Canvas
	FieldRoomID    = "room_id"
	FieldShapeType = "shape_type"
	FieldMsgType   = "msg_type"

	// Service
	FieldService = "service"
)
