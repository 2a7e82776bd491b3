package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2/middleware/session"
)

// KeyFlash holds pending flash messages, newline-joined so the session value
// stays a plain string.
const KeyFlash = "flash"

// AddFlash queues a flash message in the session. The caller saves the
// session.
func AddFlash(sess *session.Session, message string) {
	pending, _ := sess.Get(KeyFlash).(string)
	if pending == "" {
		sess.Set(KeyFlash, message)
		return
	}
	sess.Set(KeyFlash, pending+"\n"+message)
}

// DrainFlash removes and returns all pending flash messages. The caller saves
// the session.
func DrainFlash(sess *session.Session) []string {
	pending, _ := sess.Get(KeyFlash).(string)
	if pending == "" {
		return nil
	}
	sess.Delete(KeyFlash)
	return strings.Split(pending, "\n")
}
