package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// claimTTL bounds how long an unfinished request holds its key.
	claimTTL = 60 * time.Second
	// maxClockSkew is the accepted distance between X-Request-At and now.
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second

	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderRequestAt      = "X-Request-At"
	HeaderUserID         = "X-User-Id"
)

// storedResponse is what a key maps to: a claim while the handler runs,
// then the final response.
type storedResponse struct {
	Pending     bool      `json:"pending"`
	Status      int       `json:"status"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body,omitempty"`
	BodySHA256  string    `json:"body_sha256"`
	RequestAtMS int64     `json:"request_at_ms"`
	StoredAt    time.Time `json:"stored_at"`
}

type requestMeta struct {
	key       string
	bodyHash  string
	requestAt time.Time
}

// Idempotency replays the stored response for a repeated (user, route, key)
// and refuses a key reused with a different body. 5xx responses are not
// stored: the transaction behind them rolled back, so a retry is safe.
type Idempotency struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewIdempotency(rdb *redis.Client, ttl time.Duration) *Idempotency {
	return &Idempotency{rdb: rdb, ttl: ttl, now: nowUTC}
}

// IdempotencyMiddleware is NewIdempotency(rdb, ttl).Middleware().
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return NewIdempotency(rdb, ttl).Middleware()
}

func (m *Idempotency) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			meta, err := m.readRequest(c)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
			defer cancel()

			claimed, err := claim(ctx, m.rdb, meta.key, storedResponse{
				Pending:     true,
				BodySHA256:  meta.bodyHash,
				RequestAtMS: meta.requestAt.UnixMilli(),
				StoredAt:    m.now(),
			})
			if err != nil {
				log.Error().Err(err).Str("key", meta.key).Msg("idempotency store unavailable")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !claimed {
				return m.replay(ctx, c, meta)
			}
			return m.record(c, next, meta)
		}
	}
}

// readRequest validates the headers and buffers the body so the handler can
// still read it.
func (m *Idempotency) readRequest(c echo.Context) (requestMeta, error) {
	req := c.Request()

	reqKey := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
	if reqKey == "" {
		return requestMeta{}, errors.New("missing " + HeaderIdempotencyKey)
	}
	if !validReqID(reqKey) {
		return requestMeta{}, errors.New("invalid " + HeaderIdempotencyKey + " format")
	}

	at, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
	if err != nil {
		return requestMeta{}, err
	}
	now := m.now()
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return requestMeta{}, errors.New(HeaderRequestAt + " too skewed")
	}

	user := strings.TrimSpace(req.Header.Get(HeaderUserID))
	if user == "" {
		return requestMeta{}, errors.New("missing " + HeaderUserID)
	}
	if !validUserID(user) {
		return requestMeta{}, errors.New("invalid " + HeaderUserID)
	}

	var body []byte
	if req.Body != nil {
		if body, err = io.ReadAll(req.Body); err != nil {
			return requestMeta{}, errors.New("unreadable body")
		}
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	return requestMeta{
		key:       buildKey(req.Method, c.Path(), user, reqKey),
		bodyHash:  bodyHash(body),
		requestAt: at,
	}, nil
}

func (m *Idempotency) replay(ctx context.Context, c echo.Context, meta requestMeta) error {
	cur, err := load(ctx, m.rdb, meta.key)
	if err != nil {
		log.Warn().Err(err).Str("key", meta.key).Msg("idempotency entry load failed")
		return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
	}
	if cur.BodySHA256 != meta.bodyHash {
		return c.JSON(http.StatusConflict, map[string]string{"error": HeaderIdempotencyKey + " reused with different body"})
	}
	if cur.Pending || cur.Status == 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
	}
	log.Debug().Str("key", meta.key).Int("status", cur.Status).Msg("idempotent replay")
	if len(cur.Body) == 0 {
		return c.NoContent(cur.Status)
	}
	ct := cur.ContentType
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	return c.Blob(cur.Status, ct, cur.Body)
}

func (m *Idempotency) record(c echo.Context, next echo.HandlerFunc, meta requestMeta) error {
	rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
	c.Response().Writer = rec
	if err := next(c); err != nil {
		c.Error(err)
	}

	// detached: the client may already be gone
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if rec.code >= http.StatusInternalServerError {
		if err := m.rdb.Del(ctx, meta.key).Err(); err != nil {
			log.Warn().Err(err).Str("key", meta.key).Msg("idempotency claim release failed")
		}
		return nil
	}
	final := storedResponse{
		Status:      rec.code,
		ContentType: c.Response().Header().Get(echo.HeaderContentType),
		Body:        rec.buf.Bytes(),
		BodySHA256:  meta.bodyHash,
		RequestAtMS: meta.requestAt.UnixMilli(),
		StoredAt:    m.now(),
	}
	if err := store(ctx, m.rdb, meta.key, final, m.ttl); err != nil {
		log.Warn().Err(err).Str("key", meta.key).Msg("idempotency entry save failed")
	}
	return nil
}

// respRecorder tees the response into buf and remembers the status.
type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }
