package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu          sync.Mutex
	sent        []string
	batchCalls  int
	urlCalls    int
	receiveErr  error
	pending     []types.Message
	deleted     []string
	failBatchID string
}

func (f *fakeClient) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlCalls++
	if aws.ToString(params.QueueName) == "missing" {
		return nil, errors.New("queue does not exist")
	}
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("http://localhost/queue/" + aws.ToString(params.QueueName))}, nil
}

func (f *fakeClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, aws.ToString(params.MessageBody))
	return &sqs.SendMessageOutput{}, nil
}

func (f *fakeClient) SendMessageBatch(_ context.Context, params *sqs.SendMessageBatchInput, _ ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	output := &sqs.SendMessageBatchOutput{}
	for _, entry := range params.Entries {
		if aws.ToString(entry.Id) == f.failBatchID {
			output.Failed = append(output.Failed, types.BatchResultErrorEntry{Id: entry.Id})
			continue
		}
		output.Successful = append(output.Successful, types.SendMessageBatchResultEntry{Id: entry.Id})
	}
	return output, nil
}

func (f *fakeClient) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	if f.receiveErr != nil {
		err := f.receiveErr
		f.mu.Unlock()
		return nil, err
	}
	if len(f.pending) > 0 {
		messages := f.pending
		f.pending = nil
		f.mu.Unlock()
		return &sqs.ReceiveMessageOutput{Messages: messages}, nil
	}
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Millisecond):
		return &sqs.ReceiveMessageOutput{}, nil
	}
}

func (f *fakeClient) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeClient) deletedHandles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func TestSender_SendMessage(t *testing.T) {
	client := &fakeClient{}
	sender := NewSender(client)

	require.NoError(t, sender.SendMessage(context.Background(), "todo-events", map[string]string{"type": "created"}))
	require.NoError(t, sender.SendMessage(context.Background(), "todo-events", map[string]string{"type": "deleted"}))

	assert.Equal(t, 1, client.urlCalls)
	require.Len(t, client.sent, 2)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(client.sent[0]), &body))
	assert.Equal(t, "created", body["type"])
}

func TestSender_SendMessage_UnknownQueue(t *testing.T) {
	sender := NewSender(&fakeClient{})

	err := sender.SendMessage(context.Background(), "missing", "body")

	assert.ErrorContains(t, err, "failed to get queue URL for missing")
}

func TestSender_SendMessageBatch(t *testing.T) {
	client := &fakeClient{failBatchID: "m-3"}
	sender := NewSender(client)

	messages := make([]BatchMessage, 0, 12)
	for i := range 12 {
		messages = append(messages, BatchMessage{MessageID: "m-" + string(rune('a'+i)), Body: i})
	}
	messages[3].MessageID = "m-3"
	messages = append(messages, BatchMessage{MessageID: "bad", Body: make(chan int)})

	result, err := sender.SendMessageBatch(context.Background(), "todo-import", messages)

	require.NoError(t, err)
	assert.Equal(t, 2, client.batchCalls)
	assert.Len(t, result.Successful, 11)
	assert.ElementsMatch(t, []string{"m-3", "bad"}, result.Failed)
}

func TestSender_SendMessageBatch_Empty(t *testing.T) {
	client := &fakeClient{}

	result, err := NewSender(client).SendMessageBatch(context.Background(), "todo-import", nil)

	require.NoError(t, err)
	assert.Empty(t, result.Successful)
	assert.Zero(t, client.urlCalls)
}

func TestNewWorker_Validation(t *testing.T) {
	handler := HandlerFunc(func(context.Context, *types.Message) error { return nil })
	client := &fakeClient{}

	_, err := NewWorker(context.Background(), client, "q", handler, &WorkerConfig{MaxNumberOfMessages: 11})
	assert.Error(t, err)

	_, err = NewWorker(context.Background(), client, "q", handler, &WorkerConfig{WaitTimeSeconds: 21})
	assert.Error(t, err)

	_, err = NewWorker(context.Background(), client, "q", handler, &WorkerConfig{PoolSize: -1})
	assert.Error(t, err)

	_, err = NewWorker(context.Background(), client, "q", nil, nil)
	assert.Error(t, err)

	_, err = NewWorker(context.Background(), client, "missing", handler, nil)
	assert.ErrorContains(t, err, "unable to get queue URL")
}

func TestWorker_DeletesOnlyHandledMessages(t *testing.T) {
	client := &fakeClient{pending: []types.Message{
		{MessageId: aws.String("1"), ReceiptHandle: aws.String("r-ok"), Body: aws.String("ok")},
		{MessageId: aws.String("2"), ReceiptHandle: aws.String("r-fail"), Body: aws.String("fail")},
	}}
	handler := HandlerFunc(func(_ context.Context, msg *types.Message) error {
		if aws.ToString(msg.Body) == "fail" {
			return errors.New("boom")
		}
		return nil
	})

	worker, err := NewWorker(context.Background(), client, "todo-import", handler, &WorkerConfig{WaitTimeSeconds: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(client.deletedHandles()) == 1 && worker.failed.Load() == 1
	}, time.Second, 5*time.Millisecond)
	health := worker.HealthCheck()
	assert.Equal(t, StatusUp, health.Status)
	assert.Equal(t, "1", health.Details["processed"])
	assert.Equal(t, "1", health.Details["failed"])

	cancel()
	<-done
	assert.Equal(t, []string{"r-ok"}, client.deletedHandles())
	assert.Equal(t, StatusDown, worker.HealthCheck().Status)
}

func TestWorker_HealthDownOnReceiveFailure(t *testing.T) {
	client := &fakeClient{receiveErr: errors.New("connection refused")}
	handler := HandlerFunc(func(context.Context, *types.Message) error { return nil })

	worker, err := NewWorker(context.Background(), client, "todo-import", handler, &WorkerConfig{ErrorBackoff: time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	require.Eventually(t, func() bool { return worker.lastReceiveFailed.Load() }, time.Second, time.Millisecond)
	assert.Equal(t, StatusDown, worker.HealthCheck().Status)
}
