package aws

import (
	"context"
	"testing"
	"todo-api/internal/domain/gateway/queue"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSenderAPI struct {
	sent    []string
	reject  map[string]bool
	batches int
}

func (f *fakeSenderAPI) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("http://localhost/" + *params.QueueName)}, nil
}

func (f *fakeSenderAPI) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.sent = append(f.sent, *params.MessageBody)
	return &sqs.SendMessageOutput{}, nil
}

func (f *fakeSenderAPI) SendMessageBatch(_ context.Context, params *sqs.SendMessageBatchInput, _ ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error) {
	f.batches++
	output := &sqs.SendMessageBatchOutput{}
	for _, entry := range params.Entries {
		if f.reject[*entry.Id] {
			output.Failed = append(output.Failed, types.BatchResultErrorEntry{Id: entry.Id, Code: aws.String("InvalidMessageContents")})
			continue
		}
		output.Successful = append(output.Successful, types.SendMessageBatchResultEntry{Id: entry.Id})
	}
	return output, nil
}

func TestSQSSenderAdapter_SendMessage(t *testing.T) {
	client := &fakeSenderAPI{}
	adapter := NewSQSSenderAdapter(client)

	require.NoError(t, adapter.SendMessage(context.Background(), "todo-events", map[string]string{"type": "created"}))
	assert.Equal(t, []string{`{"type":"created"}`}, client.sent)
}

func TestSQSSenderAdapter_SendMessageBatch(t *testing.T) {
	client := &fakeSenderAPI{reject: map[string]bool{"b": true}}
	adapter := NewSQSSenderAdapter(client)

	result, err := adapter.SendMessageBatch(context.Background(), "todo-events", []queue.BatchMessage{
		{MessageID: "a", Body: "first"},
		{MessageID: "b", Body: "second"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Successful)
	assert.Equal(t, []string{"b"}, result.Failed)
	assert.Equal(t, 1, client.batches)
}
