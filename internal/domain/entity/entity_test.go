package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

func TestParseScreen_SoloCuatroPantallas(t *testing.T) {
	cases := map[string]entity.Screen{
		"landing":   entity.ScreenLanding,
		"login":     entity.ScreenLogin,
		"signup":    entity.ScreenSignUp,
		"dashboard": entity.ScreenDashboard,
		"":          entity.ScreenLanding,
		"admin":     entity.ScreenLanding,
		"LOGIN":     entity.ScreenLanding,
		"../etc":    entity.ScreenLanding,
	}
	for in, want := range cases {
		got := entity.ParseScreen(in)
		assert.Equal(t, want, got, "entrada %q", in)
		assert.Contains(t, entity.Screens, got)
	}
}

func TestParseRole(t *testing.T) {
	r, err := entity.ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleFarmer, r, "vacío usa el rol por defecto")

	r, err = entity.ParseRole(" Aggregator ")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAggregator, r)

	_, err = entity.ParseRole("buyer")
	assert.True(t, errors.Is(err, domain.ErrInvalidRole))
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Farmer", entity.RoleFarmer.Label())
	assert.Equal(t, "Aggregator", entity.RoleAggregator.Label())
	assert.Equal(t, "Admin", entity.RoleAdmin.Label())
}

func TestCredentialForm_MissingFields(t *testing.T) {
	f := entity.CredentialForm{Email: "  ", Password: ""}
	assert.Equal(t, []string{"email", "password"}, f.MissingFields(entity.FormLogin))
	assert.Equal(t, []string{"name", "email", "password"}, f.MissingFields(entity.FormSignUp))

	ok := entity.CredentialForm{Name: "Ada", Email: "a@b.com", Password: "pw123456"}
	assert.Empty(t, ok.MissingFields(entity.FormSignUp))
	assert.Empty(t, ok.Sanitized().Password)
	assert.Equal(t, "a@b.com", ok.Sanitized().Email)
}

func TestUserProfile_Record(t *testing.T) {
	p := entity.UserProfile{
		UID: "u1", Name: "Ada", Email: "a@b.com", Role: entity.RoleAdmin,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	rec := p.Record()
	assert.Equal(t, "u1", rec["uid"])
	assert.Equal(t, "admin", rec["role"])
	assert.Equal(t, "2024-05-01T10:00:00Z", rec["createdAt"])
	assert.Equal(t, "users/u1", entity.ProfilePath("/users/", "u1"))
}

func TestNotification_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n := entity.Notification{Message: "ok", Kind: entity.NotificationSuccess, ExpiresAt: now.Add(3 * time.Second)}

	assert.False(t, n.Expired(now))
	assert.Equal(t, 3*time.Second, n.Remaining(now))
	assert.True(t, n.Expired(now.Add(3*time.Second)))
	assert.Zero(t, n.Remaining(now.Add(time.Minute)))
}
