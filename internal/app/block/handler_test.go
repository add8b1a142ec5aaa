package block

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
	"modmail/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBlockService struct {
	err  error
	last BlockRequest
}

func (f *fakeBlockService) BlockUser(_ context.Context, req BlockRequest) (*Block, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now()
	return &Block{ID: 1, UserID: "U1", GuildID: req.GuildID, Reason: req.Reason, CreatedAt: now, UpdatedAt: now}, nil
}

func (f *fakeBlockService) IsBlocked(_ context.Context, _, _ string) (bool, error) {
	return false, nil
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

func postBlock(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/guilds/G1/channels/C1/block", strings.NewReader(body))
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

func TestBlockEndpointSuccess(t *testing.T) {
	svc := &fakeBlockService{}
	engine := newHandlerFixture(t, svc)

	w := postBlock(engine, `{"invoker_id":"S1","reason":"spam","duration":"2d"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, i18n.KeyBlocked, decodeKey(t, w))
	assert.Equal(t, "G1", svc.last.GuildID)
	assert.Equal(t, "C1", svc.last.ChannelID)
	assert.Equal(t, "spam", svc.last.Reason)
}

func TestBlockEndpointErrorKeys(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		key    string
	}{
		{"no open thread", thread.ErrNoOpenThread, http.StatusNotFound, i18n.KeyNoThread},
		{"reason required", ErrReasonRequired, http.StatusBadRequest, i18n.KeyReasonRequired},
		{"invalid duration", utils.ErrInvalidDuration, http.StatusBadRequest, i18n.KeyInvalidTime},
		{"user deleted", ErrUserUnresolvable, http.StatusNotFound, i18n.KeyUserDeleted},
		{"unknown failure", fmt.Errorf("db down"), http.StatusInternalServerError, i18n.KeyUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newHandlerFixture(t, &fakeBlockService{err: tc.err})

			w := postBlock(engine, `{"invoker_id":"S1","reason":"spam"}`)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.key, decodeKey(t, w))
		})
	}
}

func TestBlockEndpointRejectsMissingInvoker(t *testing.T) {
	svc := &fakeBlockService{}
	engine := newHandlerFixture(t, svc)

	w := postBlock(engine, `{"reason":"spam"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.last.ChannelID, "service must not be called on a bad body")
}
