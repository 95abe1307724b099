package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"
	"github.com/Adsharma18/AiCareerCoachClean/internal/service"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/chat"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/coachapi"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// fakeBackend fails the first chat call when failFirst is set
func fakeBackend(t *testing.T, failFirst bool) (*httptest.Server, *map[string]any) {
	var calls int32
	exported := map[string]any{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 && failFirst {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"detail":"Coach is napping"}`))
			return
		}
		_, _ = w.Write([]byte(`{"reply":"Month 1: learn Python. Month 2: build a roadmap project."}`))
	})
	mux.HandleFunc("/api/export-pdf", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&exported))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &exported
}

func newTestREPL(t *testing.T, baseURL, input string) (*REPL, *bytes.Buffer, map[string][]byte) {
	client := coachapi.NewClient(baseURL, 2*time.Second)
	coordinator := service.NewSessionCoordinator(chat.NewConversation(), client, client, logger.NewNopLogger())

	out := &bytes.Buffer{}
	repl := NewREPL(coordinator, strings.NewReader(input), out)

	written := map[string][]byte{}
	repl.WriteFile = func(name string, data []byte, perm os.FileMode) error {
		written[name] = data
		return nil
	}
	return repl, out, written
}

func TestREPL_ChatAndExport(t *testing.T) {
	srv, exported := fakeBackend(t, false)
	repl, out, written := newTestREPL(t, srv.URL, "/goal Data Scientist\nHow do I start?\n/pdf\n/quit\n")

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Career goal set: Data Scientist")
	assert.Contains(t, text, "Coach: Month 1: learn Python.")
	assert.Contains(t, text, "Roadmap ready. Type /pdf to download it.")
	assert.Contains(t, text, "Roadmap saved to Career_Roadmap.pdf")

	assert.Equal(t, []byte("%PDF-1.4 fake"), written[defaultPDFPath])
	assert.Equal(t, exportTitle, (*exported)["title"])
	assert.Equal(t, exportFilename, (*exported)["filename"])
	assert.Equal(t, "Data Scientist", (*exported)["goal"])
}

func TestREPL_FailureThenRetry(t *testing.T) {
	srv, _ := fakeBackend(t, true)
	repl, out, _ := newTestREPL(t, srv.URL, "Help me\n/retry\n")

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "❌ Error: Coach is napping")
	assert.Contains(t, text, "Type /retry to try again.")
	assert.Contains(t, text, "Retrying...")
	assert.Contains(t, text, "Coach: Month 1: learn Python.")
}

func TestREPL_PDFBeforeRoadmap(t *testing.T) {
	srv, _ := fakeBackend(t, false)
	repl, out, written := newTestREPL(t, srv.URL, "/pdf\n/retry\n/unknown\n")

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Ask for a roadmap first, then use /pdf.")
	assert.Contains(t, text, "Nothing to retry yet.")
	assert.NotContains(t, text, "Retrying...")
	assert.Contains(t, text, "Unknown command /unknown.")
	assert.Empty(t, written)
}

func TestREPL_Reset(t *testing.T) {
	srv, _ := fakeBackend(t, false)
	repl, out, _ := newTestREPL(t, srv.URL, "hi\n/reset\n/pdf\n")

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "Started a new conversation.")
	assert.Contains(t, out.String(), "Ask for a roadmap first, then use /pdf.")
	assert.Equal(t, 0, repl.coordinator.Conversation().Len())
}
