package store

import (
	"context"
	"time"
)

// Session is a weak reference to the authenticated account. Only the id is
// stored; callers resolve it against the users collection on every use.
type Session struct {
	UserID     string    `json:"userId"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

type SessionStore struct {
	db DB
}

func NewSessionStore(db DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Get(ctx context.Context) (Session, bool, error) {
	var session Session
	found, err := loadJSON(ctx, s.db, KeyCurrentUser, &session)
	if err != nil {
		return Session{}, false, err
	}
	if !found || session.UserID == "" {
		return Session{}, false, nil
	}
	return session, true, nil
}

func (s *SessionStore) Save(ctx context.Context, tx Execer, session Session) error {
	return saveJSON(ctx, tx, KeyCurrentUser, session)
}

func (s *SessionStore) Clear(ctx context.Context, tx Execer) error {
	return deleteKey(ctx, tx, KeyCurrentUser)
}
