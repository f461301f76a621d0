package email

import "context"

// Message es un correo saliente ya compuesto (cuerpo HTML).
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender envía correos. Un fallo de envío nunca es fatal para el
// llamador: se registra y se sigue.
type Sender interface {
	Send(ctx context.Context, m Message) error
}
