package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid transcript",
			body: `{"messages":[{"role":"user","content":"hi"}]}`,
		},
		{
			name:    "missing messages",
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "empty messages",
			body:    `{"messages":[]}`,
			wantErr: true,
		},
		{
			name:    "unknown role",
			body:    `{"messages":[{"role":"tool","content":"hi"}]}`,
			wantErr: true,
		},
		{
			name: "client-side fields are ignored",
			body: `{"messages":[{"id":"1","role":"assistant","content":"Hello","timestamp":"2024-01-01T00:00:00Z"},{"role":"user","content":"hi"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ChatRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChatRequest_NonArrayMessagesFailsToDecode(t *testing.T) {
	var req ChatRequest
	err := json.Unmarshal([]byte(`{"messages":"hello"}`), &req)
	assert.Error(t, err)
}

func TestChatRequest_ReasoningEnabled(t *testing.T) {
	var req ChatRequest
	assert.True(t, req.ReasoningEnabled())

	off := false
	req.UseReasoning = &off
	assert.False(t, req.ReasoningEnabled())
}

func TestChatResponse_NullJSONData(t *testing.T) {
	data, err := json.Marshal(ChatResponse{Message: "hi", Role: RoleAssistant})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi","json_data":null,"role":"assistant"}`, string(data))
}

func TestDownloadRequest_Validate(t *testing.T) {
	req := DownloadRequest{}
	assert.Error(t, req.Validate())

	req.Markdown = "# Jane"
	assert.NoError(t, req.Validate())
}
