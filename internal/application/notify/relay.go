// Package notify implementa el relé de avisos: mensajes de éxito o error
// que desaparecen solos al cumplirse un tiempo fijo.
package notify

import (
	"time"

	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

// DefaultTTL duración por defecto de un aviso.
const DefaultTTL = 3 * time.Second

// Relay crea avisos con vencimiento y filtra los vencidos.
type Relay struct {
	ttl time.Duration
	now func() time.Time
}

// NewRelay construye el relé. ttl <= 0 usa DefaultTTL.
func NewRelay(ttl time.Duration) *Relay {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Relay{ttl: ttl, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (r *Relay) WithClock(now func() time.Time) *Relay {
	r.now = now
	return r
}

// TTL duración fija de cada aviso.
func (r *Relay) TTL() time.Duration { return r.ttl }

// Now hora actual según el reloj del relé.
func (r *Relay) Now() time.Time { return r.now() }

// Success aviso de éxito.
func (r *Relay) Success(msg string) *entity.Notification {
	return r.build(msg, entity.NotificationSuccess)
}

// Error aviso de error.
func (r *Relay) Error(msg string) *entity.Notification {
	return r.build(msg, entity.NotificationError)
}

// Visible devuelve el aviso si sigue vigente; nil si venció o no hay aviso.
func (r *Relay) Visible(n *entity.Notification) *entity.Notification {
	if n == nil || n.Expired(r.now()) {
		return nil
	}
	return n
}

func (r *Relay) build(msg string, kind entity.NotificationKind) *entity.Notification {
	return &entity.Notification{
		Message:   msg,
		Kind:      kind,
		ExpiresAt: r.now().Add(r.ttl),
	}
}
