package web

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/evcraddock/realty-site/internal/catalog"
	"github.com/evcraddock/realty-site/internal/category"
)

const sessionCookie = "rs_session"

// session is one visitor's catalog view: their own criteria, filtered
// listings and highlighted category over the shared canonical set.
type session struct {
	mu       sync.Mutex
	store    *catalog.Store
	resolver *category.Resolver
	version  uint64
}

func newSession() *session {
	store := catalog.NewStore()
	return &session{store: store, resolver: category.NewResolver(store)}
}

// refresh re-initializes the store when the shared catalog has moved on.
// Criteria and the highlighted category survive. Callers hold mu.
func (sess *session) refresh(c Catalog) {
	records, version := c.Records()
	if version == sess.version && version != 0 {
		return
	}
	sess.store.Initialize(records)
	sess.version = version
}

// session returns the caller's session, creating one and setting the
// cookie when the request has none or it has expired. The returned session
// is locked and synced with the catalog; callers must unlock it.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	var sess *session
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			if item := s.sessions.Get(c.Value); item != nil && !item.Expired() {
				item.Extend(s.sessionTTL)
				sess = item.Value()
			}
		}
	}

	if sess == nil {
		id := uuid.NewString()
		sess = newSession()
		s.sessions.Set(id, sess, s.sessionTTL)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(s.sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	sess.mu.Lock()
	sess.refresh(s.catalog)
	return sess
}
