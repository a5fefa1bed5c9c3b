package journey

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/ouruniverse/internal/dom"
)

var ErrBadCredentials = errors.New("bad credentials")

const loginErrorText = "That doesn’t feel like our secret… try again, my rabbit."

// Credentials is the single username/password pair that opens the journey.
// The password is kept only as a bcrypt hash.
type Credentials struct {
	username string
	hash     []byte
}

func NewCredentials(username, password string) (Credentials, error) {
	return newCredentials(username, password, bcrypt.DefaultCost)
}

func newCredentials(username, password string, cost int) (Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hashing password: %w", err)
	}
	return Credentials{username: username, hash: hash}, nil
}

func (c Credentials) Match(username, password string) bool {
	if len(c.hash) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	return userOK && passOK
}

// Effects are the decorative side effects of a successful step.
type Effects interface {
	StartMusic()
	FireConfetti()
}

// Gate checks the login form and lets the visitor in.
type Gate struct {
	doc    *dom.Document
	router *Router
	creds  Credentials
	fx     Effects
}

func NewGate(doc *dom.Document, router *Router, creds Credentials, fx Effects) *Gate {
	return &Gate{doc: doc, router: router, creds: creds, fx: fx}
}

// AttemptLogin compares the trimmed inputs with the credentials. On success
// it clears any previous error and shows the intro screen. On failure it
// shows the error line and leaves the current screen alone. Retries are
// unlimited.
func (g *Gate) AttemptLogin(username, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if g.creds.Match(username, password) {
		dom.Remove(g.doc.ByID("login-error"))
		if err := g.router.Show(StepIntro); err != nil {
			return err
		}
		if g.fx != nil {
			g.fx.StartMusic()
			g.fx.FireConfetti()
		}
		return nil
	}

	if form := g.doc.ByID("login-form"); form != nil {
		msg := g.doc.ByID("login-error")
		if msg == nil {
			msg = dom.El("p", dom.ID("login-error"))
			form.AppendChild(msg)
		}
		dom.SetText(msg, loginErrorText)
	}
	return ErrBadCredentials
}
