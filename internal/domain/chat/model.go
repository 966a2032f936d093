package chat

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrQuotaExceeded = errors.New("daily question quota exceeded")
	ErrNotFound      = errors.New("session not found")
)

// Role identifica al emisor del mensaje.
// @Enum user, assistant
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message es una entrada de la conversación. La secuencia es append-only.
type Message struct {
	ID        string
	Content   string
	Role      Role
	Timestamp time.Time
}

// Limits es la cuota diaria de la sesión. QuestionsUsed incrementa por
// respuesta entregada y nunca se resetea (vive lo que viva el proceso).
type Limits struct {
	DailyQuestions int
	QuestionsUsed  int
	PlanName       string
}

// Remaining devuelve cuántas consultas quedan hoy.
func (l Limits) Remaining() int {
	if r := l.DailyQuestions - l.QuestionsUsed; r > 0 {
		return r
	}
	return 0
}

// Session es la conversación de un usuario con WaggiBot.
type Session struct {
	UserID   string
	Messages []Message
	Limits   Limits
}

// Greeting es el primer mensaje de toda sesión nueva.
const Greeting = "¡Hola! Soy WaggiBot, tu asistente virtual para el cuidado de mascotas. ¿En qué puedo ayudarte hoy?"

// CannedResponses son los cinco consejos fijos entre los que se sortea
// la respuesta del asistente.
var CannedResponses = []string{
	"Para el cuidado de tu mascota, te recomiendo mantener una rutina de ejercicio regular y una alimentación balanceada.",
	"Es importante llevar a tu mascota al veterinario regularmente para chequeos preventivos.",
	"El cepillado regular ayuda a mantener el pelaje de tu mascota saludable y reduce la caída de pelo.",
	"Asegúrate de que tu mascota tenga acceso constante a agua fresca y limpia.",
	"La socialización temprana es clave para el desarrollo saludable de tu mascota.",
}
