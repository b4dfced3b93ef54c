package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName adalah nama cookie yang menyimpan snapshot auth.
const CookieName = "auth-storage"

// Persister menyimpan snapshot auth di antara request.
type Persister interface {
	Load() (Snapshot, bool)
	Save(snap Snapshot) error
	Clear() error
}

// CookiePersister menyimpan snapshot sebagai token paseto di cookie auth-storage.
type CookiePersister struct {
	c      *gin.Context
	codec  *Codec
	secure bool
	token  string
}

func NewCookiePersister(c *gin.Context, codec *Codec, secure bool) *CookiePersister {
	return &CookiePersister{c: c, codec: codec, secure: secure}
}

// TokenFromRequest mengambil token dari header Authorization atau cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (p *CookiePersister) Load() (Snapshot, bool) {
	token := TokenFromRequest(p.c.Request)
	if token == "" {
		return Snapshot{}, false
	}
	snap, err := p.codec.Decode(token)
	if err != nil {
		return Snapshot{}, false
	}
	p.token = token
	return snap, true
}

func (p *CookiePersister) Save(snap Snapshot) error {
	token, _, err := p.codec.Encode(snap)
	if err != nil {
		return err
	}
	p.token = token
	p.c.SetSameSite(http.SameSiteLaxMode)
	p.c.SetCookie(CookieName, token, int(p.codec.TTL().Seconds()), "/", "", p.secure, true)
	return nil
}

func (p *CookiePersister) Clear() error {
	p.token = ""
	p.c.SetSameSite(http.SameSiteLaxMode)
	p.c.SetCookie(CookieName, "", -1, "/", "", p.secure, true)
	return nil
}

// Token adalah token terakhir yang dimuat atau disimpan, untuk klien API.
func (p *CookiePersister) Token() string {
	return p.token
}
