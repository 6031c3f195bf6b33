package telegram_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/example/jiobot/internal/adapters/telegram"
)

type apiCall struct {
	Method string
	Form   url.Values
}

// fakeBotAPI is a minimal Bot API server. Responses can be overridden per method.
type fakeBotAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	responses map[string]string
}

const okTrue = `{"ok":true,"result":true}`

func newFakeBotAPI(t *testing.T) (*fakeBotAPI, *tgbotapi.BotAPI) {
	t.Helper()
	api := &fakeBotAPI{responses: map[string]string{
		"getMe": `{"ok":true,"result":{"id":99,"is_bot":true,"first_name":"Jio Bot",` +
			`"username":"supperjio_bot","can_join_groups":true,"supports_inline_queries":true}}`,
		"sendMessage": `{"ok":true,"result":{"message_id":42,"date":0,"chat":{"id":-1001,"type":"group"}}}`,
	}}

	server := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(server.Close)

	bot, err := telegram.NewBot("TOKEN", server.URL+"/bot%s/%s", false, nil)
	require.NoError(t, err)
	return api, bot
}

func (a *fakeBotAPI) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	a.mu.Lock()
	a.calls = append(a.calls, apiCall{Method: method, Form: r.PostForm})
	resp, ok := a.responses[method]
	a.mu.Unlock()

	if !ok {
		resp = okTrue
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

func (a *fakeBotAPI) respond(method, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method] = body
}

// last returns the most recent call to method.
func (a *fakeBotAPI) last(t *testing.T, method string) apiCall {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.calls) - 1; i >= 0; i-- {
		if a.calls[i].Method == method {
			return a.calls[i]
		}
	}
	t.Fatalf("no %s call recorded", method)
	return apiCall{}
}

func decodeField(t *testing.T, form url.Values, field string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(form.Get(field)), v), "field %s = %q", field, form.Get(field))
}
