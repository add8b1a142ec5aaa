package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"modmail/internal/app/thread"
	"modmail/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRelayService struct {
	err       error
	lastStaff StaffMessage
	lastUser  UserMessage
}

func (f *fakeRelayService) RelayStaffMessage(_ context.Context, msg StaffMessage) (*Delivery, error) {
	f.lastStaff = msg
	if f.err != nil {
		return nil, f.err
	}
	return &Delivery{ID: "d1", RecipientID: "U1", ChannelID: msg.ChannelID, Anonymous: msg.Anonymous, SentAt: time.Now()}, nil
}

func (f *fakeRelayService) RelayUserMessage(_ context.Context, msg UserMessage) (*Delivery, error) {
	f.lastUser = msg
	if f.err != nil {
		return nil, f.err
	}
	return &Delivery{ID: "d2", RecipientID: "C1", ChannelID: "C1", SentAt: time.Now()}, nil
}

func newHandlerFixture(t *testing.T, svc Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	translator, err := i18n.NewTranslator("en", zap.NewNop())
	require.NoError(t, err)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), NewHandler(svc, translator, zap.NewNop()))
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func decodeKey(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Key
}

func TestReplyEndpointSuccess(t *testing.T) {
	svc := &fakeRelayService{}
	engine := newHandlerFixture(t, svc)

	w := postJSON(engine, "/api/guilds/G1/channels/C1/reply",
		`{"invoker_id":"S1","invoker_name":"Moderator","content":"hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, i18n.KeyMessageSent, decodeKey(t, w))
	assert.Equal(t, "C1", svc.lastStaff.ChannelID)
	assert.False(t, svc.lastStaff.Anonymous)
}

func TestReplyAnonymousEndpointSetsFlag(t *testing.T) {
	svc := &fakeRelayService{}
	engine := newHandlerFixture(t, svc)

	// The body cannot opt into anonymity; only the endpoint can.
	w := postJSON(engine, "/api/guilds/G1/channels/C1/reply/anonymous",
		`{"invoker_id":"S1","content":"hello","anonymous":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.lastStaff.Anonymous)
}

func TestReplyEndpointErrorKeys(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		key    string
	}{
		{"no open thread", thread.ErrNoOpenThread, http.StatusNotFound, i18n.KeyNoThread},
		{"not own message", ErrNotOwnContent, http.StatusForbidden, i18n.KeyNotOwnMessage},
		{"member gone", ErrRecipientUnresolvable, http.StatusNotFound, i18n.KeyNoMember},
		{"empty content", ErrEmptyContent, http.StatusBadRequest, i18n.KeyNoContent},
		{"delivery failed", ErrDeliveryFailed, http.StatusBadGateway, i18n.KeyDeliveryFailed},
		{"unknown failure", fmt.Errorf("db down"), http.StatusInternalServerError, i18n.KeyUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newHandlerFixture(t, &fakeRelayService{err: tc.err})

			w := postJSON(engine, "/api/guilds/G1/channels/C1/reply",
				`{"invoker_id":"S1","content":"hello"}`)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.key, decodeKey(t, w))
		})
	}
}

func TestInboundEndpoint(t *testing.T) {
	svc := &fakeRelayService{}
	engine := newHandlerFixture(t, svc)

	w := postJSON(engine, "/api/users/U1/messages",
		`{"user_name":"user-one","content":"I need help"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, i18n.KeyMessageSent, decodeKey(t, w))
	assert.Equal(t, "U1", svc.lastUser.UserID)

	engine = newHandlerFixture(t, &fakeRelayService{err: thread.ErrNoOpenThread})
	w = postJSON(engine, "/api/users/U1/messages", `{"content":"hello"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, i18n.KeyNoThread, decodeKey(t, w))
}
