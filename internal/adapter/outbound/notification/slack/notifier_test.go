package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	slackapi "github.com/slack-go/slack"

	"github.com/jonny/ranobe-bot/internal/adapter/outbound/notification/slack"
	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
)

type postedMessage struct {
	channel string
	text    string
	blocks  string
}

func newSlackServer(t *testing.T, ok bool) (*httptest.Server, *[]postedMessage, *sync.Mutex) {
	t.Helper()
	var (
		mu     sync.Mutex
		posted []postedMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat.postMessage") {
			http.NotFound(w, r)
			return
		}
		_ = r.ParseForm()
		mu.Lock()
		posted = append(posted, postedMessage{
			channel: r.FormValue("channel"),
			text:    r.FormValue("text"),
			blocks:  r.FormValue("blocks"),
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &posted, &mu
}

func TestNotifier_ReportDroppedFollowUp(t *testing.T) {
	srv, posted, mu := newSlackServer(t, true)
	n := slack.NewNotifier(slack.Config{BotToken: "xoxb-test", Channel: "#ranobe-ops", APIURL: srv.URL + "/"})

	err := n.ReportDroppedFollowUp(context.Background(), outbound.DroppedFollowUp{
		TaskID:        "task-1",
		InteractionID: "int-9",
		Kind:          "search",
		Mode:          "create",
		Err:           "discord follow-up create: HTTP 401",
	})
	if err != nil {
		t.Fatalf("ReportDroppedFollowUp: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(*posted) != 1 {
		t.Fatalf("posted = %d, want 1", len(*posted))
	}
	msg := (*posted)[0]
	if msg.channel != "#ranobe-ops" {
		t.Errorf("channel = %q", msg.channel)
	}
	if !strings.Contains(msg.text, "int-9") {
		t.Errorf("text = %q", msg.text)
	}
	if !strings.Contains(msg.blocks, "task-1") {
		t.Errorf("blocks missing task id: %s", msg.blocks)
	}
}

func TestNotifier_SendMessageError(t *testing.T) {
	srv, _, _ := newSlackServer(t, false)
	n := slack.NewNotifier(slack.Config{BotToken: "xoxb-test", Channel: "#missing", APIURL: srv.URL + "/"})

	if err := n.SendMessage(context.Background(), "ranobe-bot started", outbound.NotificationInfo); err == nil {
		t.Fatal("expected error when slack reports ok=false")
	}
}

func TestBuildDroppedFollowUpBlocks(t *testing.T) {
	blocks := slack.BuildDroppedFollowUpBlocks(outbound.DroppedFollowUp{
		TaskID:        "task-2",
		InteractionID: "int-2",
		Kind:          "select",
		Mode:          "update_original",
		Err:           "boom",
	})
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}

	header, ok := blocks[0].(*slackapi.SectionBlock)
	if !ok {
		t.Fatalf("expected SectionBlock, got %T", blocks[0])
	}
	if !strings.Contains(header.Text.Text, "Follow-up dropped") {
		t.Errorf("header = %q", header.Text.Text)
	}

	fields, ok := blocks[1].(*slackapi.SectionBlock)
	if !ok || len(fields.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %+v", blocks[1])
	}
	if _, ok := blocks[2].(*slackapi.ContextBlock); !ok {
		t.Errorf("expected ContextBlock, got %T", blocks[2])
	}
}
