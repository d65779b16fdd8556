package session

import (
	"testing"
	"todo-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSession(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    *model.Caller
		wantErr bool
	}{
		{name: "string user", data: `{"userId":"u1","role":"admin"}`, want: &model.Caller{UserID: "u1", Role: model.RoleAdmin}},
		{name: "numeric user defaults role", data: `{"cookie":{},"userId":42}`, want: &model.Caller{UserID: "42", Role: model.RoleUser}},
		{name: "anonymous session", data: `{"cookie":{}}`, want: nil},
		{name: "null user", data: `{"userId":null}`, want: nil},
		{name: "invalid user", data: `{"userId":{"id":1}}`, wantErr: true},
		{name: "invalid json", data: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSession("sid", []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
