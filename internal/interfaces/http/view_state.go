package http

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/agrilink-web/internal/application/view"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

// ViewCookieName cookie del estado de vista (pantalla, formulario, aviso).
const ViewCookieName = "agrilink_view"

// Claves dentro de la sesión de fiber. Solo tipos básicos: el storage los serializa con gob.
const (
	keyScreen     = "screen"
	keyFormName   = "form_name"
	keyFormEmail  = "form_email"
	keyFormRole   = "form_role"
	keyNoticeMsg  = "notice_msg"
	keyNoticeKind = "notice_kind"
	keyNoticeExp  = "notice_exp"
)

// NewViewStore sesión en memoria para el estado de vista. No se persiste.
func NewViewStore(secure bool) *session.Store {
	return session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + ViewCookieName,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})
}

func loadState(sess *session.Session) view.State {
	st := view.State{
		Screen: entity.ParseScreen(getString(sess, keyScreen)),
		Form: entity.CredentialForm{
			Name:  getString(sess, keyFormName),
			Email: getString(sess, keyFormEmail),
			Role:  getString(sess, keyFormRole),
		},
	}
	if msg := getString(sess, keyNoticeMsg); msg != "" {
		exp, _ := sess.Get(keyNoticeExp).(int64)
		st.Notice = &entity.Notification{
			Message:   msg,
			Kind:      entity.NotificationKind(getString(sess, keyNoticeKind)),
			ExpiresAt: time.Unix(0, exp),
		}
	}
	return st
}

func saveState(sess *session.Session, st view.State) error {
	sess.Set(keyScreen, string(st.Screen))
	// La contraseña nunca sale de la petición.
	sess.Set(keyFormName, st.Form.Name)
	sess.Set(keyFormEmail, st.Form.Email)
	sess.Set(keyFormRole, st.Form.Role)
	if st.Notice != nil {
		sess.Set(keyNoticeMsg, st.Notice.Message)
		sess.Set(keyNoticeKind, string(st.Notice.Kind))
		sess.Set(keyNoticeExp, st.Notice.ExpiresAt.UnixNano())
	} else {
		sess.Delete(keyNoticeMsg)
		sess.Delete(keyNoticeKind)
		sess.Delete(keyNoticeExp)
	}
	return sess.Save()
}

func getString(sess *session.Session, key string) string {
	s, _ := sess.Get(key).(string)
	return s
}
