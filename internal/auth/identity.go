package auth

import "net/http"

// Sessions is what request handlers use: it resolves the caller from the
// session cookie and establishes or tears down sessions at login/logout.
type Sessions struct {
	codec   *Codec
	cookies Cookies
}

func NewSessions(codec *Codec, cookies Cookies) *Sessions {
	return &Sessions{codec: codec, cookies: cookies}
}

// Resolve returns the identity asserted by the request's session cookie.
// A missing cookie and an invalid token both yield ok == false; neither is
// an error. No database lookup is made.
func (s *Sessions) Resolve(r *http.Request) (Identity, bool) {
	token, ok := s.cookies.Read(r)
	if !ok {
		return Identity{}, false
	}
	claims, ok := s.codec.Verify(token)
	if !ok {
		return Identity{}, false
	}
	return claims.Identity(), true
}

// Issue signs a token for id and attaches it to the response.
func (s *Sessions) Issue(w http.ResponseWriter, id Identity) error {
	token, err := s.codec.Issue(id)
	if err != nil {
		return err
	}
	s.cookies.Attach(w, token)
	return nil
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	s.cookies.Detach(w)
}
