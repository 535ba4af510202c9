package encoding_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/effective-security/flownodes/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type model struct {
	ModelID   string   `json:"modelId"`
	MaxTokens int      `json:"maxTokens,omitempty"`
	TopP      *float64 `json:"topP,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

func TestEncoders(t *testing.T) {
	topP := 0.9
	v := model{ModelID: "amazon.nova-pro", MaxTokens: 2000, TopP: &topP, Tags: []string{"a", "b"}}

	tcases := []struct {
		mode encoding.Mode
		exp  string
	}{
		{
			mode: encoding.ModeJSON,
			exp: `{
  "modelId": "amazon.nova-pro",
  "maxTokens": 2000,
  "topP": 0.9,
  "tags": [
    "a",
    "b"
  ]
}`,
		},
		{
			mode: encoding.ModeYAML,
			exp: `maxTokens: 2000
modelId: amazon.nova-pro
tags:
- a
- b
topP: 0.9
`,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.mode, func(t *testing.T) {
			enc, err := encoding.New(tc.mode)
			require.NoError(t, err)

			bs, err := enc.Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, string(bs))

			var res model
			require.NoError(t, enc.Unmarshal(bs, &res))
			assert.Equal(t, v, res)
		})
	}
}

func TestTOML(t *testing.T) {
	enc, err := encoding.New("TOML")
	require.NoError(t, err)

	bs, err := enc.Marshal(model{ModelID: "amazon.nova-pro-v1:0", MaxTokens: 2000})
	require.NoError(t, err)
	assert.Contains(t, string(bs), `modelId = "amazon.nova-pro-v1:0"`)
	assert.Contains(t, string(bs), "maxTokens = 2000\n")

	var res model
	require.NoError(t, enc.Unmarshal(bs, &res))
	assert.Equal(t, "amazon.nova-pro-v1:0", res.ModelID)
	assert.Equal(t, 2000, res.MaxTokens)

	_, err = enc.Marshal([]string{"not", "a", "table"})
	assert.ErrorContains(t, err, "TOML document must be a table")
}

func TestUnmarshalReply(t *testing.T) {
	enc, err := encoding.New(encoding.ModeJSON)
	require.NoError(t, err)

	var res model
	err = enc.Unmarshal([]byte("Sure, here you go:\n```json\n{\"modelId\": \"meta.llama3-8b-instruct-v1:0\"}\n```\nAnything else?"), &res)
	require.NoError(t, err)
	assert.Equal(t, "meta.llama3-8b-instruct-v1:0", res.ModelID)

	enc, err = encoding.New(encoding.ModeYAML)
	require.NoError(t, err)
	res = model{}
	err = enc.Unmarshal([]byte("```yaml\nmodelId: amazon.titan-text-express-v1\nmaxTokens: 10\n```"), &res)
	require.NoError(t, err)
	assert.Equal(t, "amazon.titan-text-express-v1", res.ModelID)
	assert.Equal(t, 10, res.MaxTokens)
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"items.json", "items.yaml", "items.yml", "items.toml", "ITEMS.JSON"} {
		_, err := encoding.ForFile(name)
		assert.NoError(t, err, name)
	}

	_, err := encoding.ForFile("items.xml")
	assert.EqualError(t, err, "unsupported format: xml")
	_, err = encoding.ForFile("items")
	assert.EqualError(t, err, "unsupported file: items")
	_, err = encoding.New("csv")
	assert.EqualError(t, err, "unsupported format: csv")
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"items.json": `{"items": [{"model": "a"}, {"model": "b"}]}`,
		"items.yaml": "items:\n- model: a\n- model: b\n",
		"items.toml": "[[items]]\nmodel = \"a\"\n\n[[items]]\nmodel = \"b\"\n",
	}
	for name, content := range files {
		file := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

		var data struct {
			Items []map[string]any `json:"items"`
		}
		require.NoError(t, encoding.DecodeFile(file, &data), name)
		require.Len(t, data.Items, 2, name)
		assert.Equal(t, "b", data.Items[1]["model"], name)
	}

	var data map[string]any
	err := encoding.DecodeFile(filepath.Join(dir, "missing.json"), &data)
	assert.Error(t, err)

	file := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("items: [\n"), 0o600))
	err = encoding.DecodeFile(file, &data)
	assert.ErrorContains(t, err, "failed to decode")
}
