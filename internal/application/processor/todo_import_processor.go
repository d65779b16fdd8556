package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// TodoImportProcessor creates the todos of a bulk import message on behalf of its user
type TodoImportProcessor struct {
	todoUseCase todo.UseCase
}

func NewTodoImportProcessor(todoUseCase todo.UseCase) *TodoImportProcessor {
	return &TodoImportProcessor{
		todoUseCase: todoUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface. A returned error keeps the
// message in the queue so it is delivered again.
func (p *TodoImportProcessor) HandleMessage(ctx context.Context, message *types.Message) error {
	if message == nil || message.Body == nil {
		return errors.New("received nil message or message body")
	}
	messageID := ""
	if message.MessageId != nil {
		messageID = *message.MessageId
	}

	var importMessage model.TodoImportMessage
	if err := json.Unmarshal([]byte(*message.Body), &importMessage); err != nil {
		return errors.New(msg.GetMessage("todo.import.error.invalid-body", messageID, err))
	}
	if importMessage.UserID == "" {
		return errors.New(msg.GetMessage("todo.import.error.missing-user", messageID))
	}

	log.Info(msg.GetMessage("todo.import.start", len(importMessage.Todos), importMessage.UserID, messageID))

	ctx = model.WithCaller(ctx, model.Caller{UserID: importMessage.UserID, Role: model.RoleUser})
	response := p.todoUseCase.CreateMany(ctx, importMessage.Todos)
	if response.HasErrors() {
		return errors.New(msg.GetMessage("todo.import.error.rejected", importMessage.UserID, describe(response.Errors)))
	}

	log.Info(msg.GetMessage("todo.import.end", len(response.Todos), importMessage.UserID))
	return nil
}

func describe(fieldErrors []model.FieldError) string {
	parts := make([]string, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Message))
	}
	return strings.Join(parts, "; ")
}
