package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestDeployEvent_JSON(t *testing.T) {
	t.Run("sub-objects omitted entirely when absent", func(t *testing.T) {
		event := model.DeployEvent{
			DedupID:      "d-1",
			DeployNumber: "42",
			DeployURL:    "http://jenkins.example.com/job/app/42/",
			DeployedAt:   "2024-05-01T12:00:00Z",
			Description:  "Jenkins Deploy #42",
			Environment:  "Production",
			Service:      "jenkins:app",
		}

		raw, err := json.Marshal(event)
		gt.NoError(t, err)

		body := string(raw)
		gt.True(t, !strings.Contains(body, "deployer"))
		gt.True(t, !strings.Contains(body, "commit"))
	})

	t.Run("empty commit message still serializes", func(t *testing.T) {
		msg := ""
		event := model.DeployEvent{
			DedupID: "d-2",
			Commit:  &model.Commit{SHA: "abc123", Message: &msg},
		}

		raw, err := json.Marshal(event)
		gt.NoError(t, err)

		body := string(raw)
		gt.String(t, body).Contains(`"commit":{"sha":"abc123","message":""}`)
		gt.True(t, !strings.Contains(body, "branch"))
	})

	t.Run("field order matches the wire contract", func(t *testing.T) {
		id := "1a9f841f"
		name := "Michael Scott"
		branch := "master"
		msg := "fix tax rate"
		event := model.DeployEvent{
			DedupID:      "d-3",
			DeployNumber: "7",
			DeployURL:    "http://jenkins.example.com/job/app/7/",
			DeployedAt:   "2024-05-01T12:00:00Z",
			Description:  "release",
			Environment:  "Staging",
			Service:      "jenkins:app",
			Deployer:     &model.Deployer{ID: &id, Name: &name},
			Commit:       &model.Commit{SHA: "abc123", Branch: &branch, Message: &msg},
		}

		raw, err := json.Marshal(event)
		gt.NoError(t, err)

		gt.Value(t, string(raw)).Equal(`{` +
			`"dedup_id":"d-3",` +
			`"deploy_number":"7",` +
			`"deploy_url":"http://jenkins.example.com/job/app/7/",` +
			`"deployed_at":"2024-05-01T12:00:00Z",` +
			`"description":"release",` +
			`"environment":"Staging",` +
			`"service":"jenkins:app",` +
			`"deployer":{"id":"1a9f841f","name":"Michael Scott"},` +
			`"commit":{"sha":"abc123","branch":"master","message":"fix tax rate"}` +
			`}`)
	})
}

func TestDeployer_IsZero(t *testing.T) {
	email := "mscott@example.com"

	var nilDeployer *model.Deployer
	gt.True(t, nilDeployer.IsZero())
	gt.True(t, (&model.Deployer{}).IsZero())
	gt.True(t, !(&model.Deployer{Email: &email}).IsZero())
}
