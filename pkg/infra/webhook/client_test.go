package webhook_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/infra/webhook"
	"github.com/m-mizutani/gt"
)

func TestClient_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("posts JSON with agent parameter", func(t *testing.T) {
		var gotMethod, gotContentType, gotAgent, gotSecret string
		var gotBody []byte

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			gotAgent = r.URL.Query().Get("agent")
			gotSecret = r.URL.Query().Get("secret")
			gotBody, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"result":"ok"}`))
		}))
		defer srv.Close()

		client := webhook.New()
		event := &model.DeployEvent{
			DedupID:      "d-1",
			DeployNumber: "42",
			Service:      "jenkins:app",
			Environment:  "Production",
		}

		respBody, err := client.Publish(ctx, types.WebhookURL(srv.URL+"/integrations/deploy/1?secret=abc"), event)
		gt.NoError(t, err)
		gt.Value(t, respBody).Equal(`{"result":"ok"}`)

		gt.Value(t, gotMethod).Equal(http.MethodPost)
		gt.Value(t, gotContentType).Equal("application/json; charset=utf-8")
		gt.Value(t, gotAgent).Equal(types.AgentName + "-" + types.Version)
		gt.Value(t, gotSecret).Equal("abc")
		gt.String(t, string(gotBody)).Contains(`"dedup_id":"d-1"`)
		gt.String(t, string(gotBody)).Contains(`"service":"jenkins:app"`)
	})

	t.Run("error response still counts as delivered", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"result":"unauthorized"}`))
		}))
		defer srv.Close()

		client := webhook.New()
		respBody, err := client.Publish(ctx, types.WebhookURL(srv.URL), &model.DeployEvent{DedupID: "d-2"})
		gt.NoError(t, err)
		gt.Value(t, respBody).Equal(`{"result":"unauthorized"}`)
	})

	t.Run("unreachable endpoint fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := webhook.New()
		_, err := client.Publish(ctx, types.WebhookURL(srv.URL), &model.DeployEvent{DedupID: "d-3"})
		gt.Error(t, err)
	})

	t.Run("unparsable URL fails", func(t *testing.T) {
		client := webhook.New()
		_, err := client.Publish(ctx, types.WebhookURL("://missing-scheme"), &model.DeployEvent{DedupID: "d-4"})
		gt.Error(t, err)
	})
}
