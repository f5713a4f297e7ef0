package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrilink-web/internal/application/notify"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestRelay_AvisoVenceSinAccionDelUsuario(t *testing.T) {
	c := &clock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	r := notify.NewRelay(3 * time.Second).WithClock(c.now)

	n := r.Success("Login successful!")
	require.NotNil(t, r.Visible(n))
	assert.Equal(t, entity.NotificationSuccess, n.Kind)

	c.t = c.t.Add(2999 * time.Millisecond)
	assert.NotNil(t, r.Visible(n), "aún vigente antes del TTL")

	c.t = c.t.Add(time.Millisecond)
	assert.Nil(t, r.Visible(n), "desaparece al cumplirse el TTL")
}

func TestRelay_Error(t *testing.T) {
	r := notify.NewRelay(0)
	n := r.Error("Login failed. Check email and password.")

	assert.Equal(t, entity.NotificationError, n.Kind)
	assert.Equal(t, notify.DefaultTTL, r.TTL())
	assert.Nil(t, r.Visible(nil))
}
