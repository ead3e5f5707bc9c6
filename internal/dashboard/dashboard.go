// Package dashboard holds the state behind the company and employee
// dashboards: loading, action outcomes and the messages shown for them.
package dashboard

import (
	"context"
	"strings"

	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/pkg/client"
)

// Level is the severity of a message
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one transient notice shown after an action
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Outcome is the classified result of a user action
type Outcome struct {
	OK      bool    `json:"ok"`
	Message Message `json:"message"`
}

func success(text string) Outcome {
	return Outcome{OK: true, Message: Message{Level: LevelSuccess, Text: text}}
}

func warning(text string) Outcome {
	return Outcome{Message: Message{Level: LevelWarning, Text: text}}
}

func failed(text string) Outcome {
	return Outcome{Message: Message{Level: LevelError, Text: text}}
}

// EmployeeAPI is the part of the backend the employee dashboard uses
type EmployeeAPI interface {
	ListAvailable(ctx context.Context, userID int64) client.Result[[]models.Challenge]
	ListAccepted(ctx context.Context, userID int64) client.Result[[]models.Challenge]
	Accept(ctx context.Context, userID, challengeID int64) client.Result[client.Body]
	Complete(ctx context.Context, userID, challengeID int64) client.Result[client.Body]
	Stats(ctx context.Context, userID int64) client.Result[models.EmployeeStats]
}

// CompanyAPI is the part of the backend the company dashboard uses
type CompanyAPI interface {
	ListByCompany(ctx context.Context, companyID int64) client.Result[[]models.Challenge]
	Create(ctx context.Context, req client.CreateChallengeRequest) client.Result[client.Body]
	Update(ctx context.Context, req client.UpdateChallengeRequest) client.Result[client.Body]
	Delete(ctx context.Context, challengeID int64) client.Result[client.Body]
}

var alreadyMarkers = []string{"already", "já aceito", "já concluído"}

// isAlready reports whether a backend error says the action was done
// before
func isAlready(msg string) bool {
	msg = strings.ToLower(msg)
	for _, m := range alreadyMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// acceptedStatus reports a 2xx status the dashboards treat as done
func acceptedStatus(status int, allowed ...int) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}
	return false
}
