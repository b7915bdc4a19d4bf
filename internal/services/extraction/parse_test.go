package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walmartReply = `{"Company Name": "Walmart", "Stock Symbol": "WMT", "Revenue": "12.34 million", "Net Income": "34.78 million", "EPS": "2.1 $"}`

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"EPS":"2.3 $"}`,
			want:  `{"EPS":"2.3 $"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"EPS\":\"2.3 $\"}\n```",
			want:  `{"EPS":"2.3 $"}`,
		},
		{
			name:  "tag is case insensitive",
			input: "```JSON\n{\"EPS\":\"2.3 $\"}\n```",
			want:  `{"EPS":"2.3 $"}`,
		},
		{
			name:  "mixed case tag and extra whitespace",
			input: "\n  ```Json   \n\n  {\"EPS\":\"2.3 $\"}  \n\n```  \n",
			want:  `{"EPS":"2.3 $"}`,
		},
		{
			name:  "strips untagged fence",
			input: "```\n{\"EPS\":\"2.3 $\"}\n```",
			want:  `{"EPS":"2.3 $"}`,
		},
		{
			name:  "single line fence",
			input: "```json {\"EPS\":\"2.3 $\"}```",
			want:  `{"EPS":"2.3 $"}`,
		},
		{
			name:  "multi line object keeps inner layout",
			input: "```json\n{\n  \"EPS\": \"2.3 $\"\n}\n```",
			want:  "{\n  \"EPS\": \"2.3 $\"\n}",
		},
		{
			name:  "prose is left alone",
			input: "Sorry, I cannot find this information.",
			want:  "Sorry, I cannot find this information.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.input))
		})
	}
}

func TestParseReply_Object(t *testing.T) {
	got := ParseReply(walmartReply)

	require.Equal(t, OutcomeParsed, got.Outcome)
	assert.Equal(t, ReasonNone, got.Reason)
	assert.Equal(t, []Field{
		{Key: "Company Name", Value: "Walmart"},
		{Key: "Stock Symbol", Value: "WMT"},
		{Key: "Revenue", Value: "12.34 million"},
		{Key: "Net Income", Value: "34.78 million"},
		{Key: "EPS", Value: "2.1 $"},
	}, got.Fields)
}

func TestParseReply_FencedObject(t *testing.T) {
	got := ParseReply("```json\n" + walmartReply + "\n```")

	require.Equal(t, OutcomeParsed, got.Outcome)
	require.Len(t, got.Fields, 5)
	assert.Equal(t, "Walmart", got.Fields[0].Value)
}

func TestParseReply_KeepsDocumentOrder(t *testing.T) {
	got := ParseReply(`{"EPS": "1", "Company Name": "Acme", "Revenue": ""}`)

	require.Equal(t, OutcomeParsed, got.Outcome)
	assert.Equal(t, []Field{
		{Key: "EPS", Value: "1"},
		{Key: "Company Name", Value: "Acme"},
		{Key: "Revenue", Value: ""},
	}, got.Fields)
}

func TestParseReply_NonStringValues(t *testing.T) {
	got := ParseReply(`{"EPS": 2.1, "Profitable": true, "Revenue": null, "Segments": {"auto": "20"}, "Tags": ["a", "b"], "Name": "A \"quoted\" co"}`)

	require.Equal(t, OutcomeParsed, got.Outcome)
	assert.Equal(t, []Field{
		{Key: "EPS", Value: "2.1"},
		{Key: "Profitable", Value: "true"},
		{Key: "Revenue", Value: ""},
		{Key: "Segments", Value: `{"auto": "20"}`},
		{Key: "Tags", Value: `["a", "b"]`},
		{Key: "Name", Value: `A "quoted" co`},
	}, got.Fields)
}

func TestParseReply_DuplicateKeys(t *testing.T) {
	got := ParseReply(`{"EPS": "1", "Revenue": "2", "EPS": "3"}`)

	require.Equal(t, OutcomeParsed, got.Outcome)
	assert.Equal(t, []Field{
		{Key: "EPS", Value: "3"},
		{Key: "Revenue", Value: "2"},
	}, got.Fields)
}

func TestParseReply_EmptyObject(t *testing.T) {
	got := ParseReply(`{}`)

	assert.Equal(t, OutcomeParsed, got.Outcome)
	assert.Empty(t, got.Fields)
}

func TestParseReply_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		reason FallbackReason
	}{
		{"prose", "Sorry, I cannot find this information.", ReasonMalformed},
		{"empty reply", "", ReasonMalformed},
		{"truncated object", `{"Company Name": "Walmart", "EPS": `, ReasonMalformed},
		{"fenced prose", "```json\nnot json\n```", ReasonMalformed},
		{"array", "[1,2,3]", ReasonNotAnObject},
		{"number", "42", ReasonNotAnObject},
		{"string", `"Walmart"`, ReasonNotAnObject},
		{"null", "null", ReasonNotAnObject},
		{"bool", "true", ReasonNotAnObject},
		{"fenced array", "```json\n[{\"EPS\": \"1\"}]\n```", ReasonNotAnObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReply(tt.reply)
			assert.Equal(t, OutcomeFallback, got.Outcome)
			assert.Equal(t, tt.reason, got.Reason)
			assert.Nil(t, got.Fields)
		})
	}
}
