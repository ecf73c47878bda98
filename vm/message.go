package vm

type MessageType int

const (
	_ MessageType = iota
	MsgDebug
	MsgError
	MsgWarning
	MsgHalt
	MsgScreen
	MsgReset
)

func (mt MessageType) String() string {
	switch mt {
	case MsgDebug:
		return "Debug"
	case MsgError:
		return "Error"
	case MsgWarning:
		return "Warning"
	case MsgHalt:
		return "Halt"
	case MsgScreen:
		return "Screen"
	case MsgReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

type Message struct {
	Type    MessageType
	PC      uint16 // Program counter when the message was emitted.
	Message string
}

func NewMessage(mt MessageType, pc uint16, msg string) Message {
	return Message{
		Type:    mt,
		PC:      pc,
		Message: msg,
	}
}
