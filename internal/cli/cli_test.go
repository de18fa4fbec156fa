package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolanti/rfqflow/internal/app"
	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/data/store"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/rfq"
	"github.com/akolanti/rfqflow/internal/rfq/delivery"
	"github.com/akolanti/rfqflow/internal/rfq/fields"
	"github.com/akolanti/rfqflow/internal/rfq/render"
	"github.com/akolanti/rfqflow/internal/rfq/textextract"
	"github.com/akolanti/rfqflow/internal/testutil"
)

// execute runs rootCmd with args and restores global command state afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		configPath = ""
		_ = renderCmd.Flags().Set("output", "")
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// stubService swaps the pipeline builder for one backed by a canned model answer.
func stubService(t *testing.T, mailer delivery.Mailer) *testutil.MockProvider {
	t.Helper()
	provider := &testutil.MockProvider{
		OnComplete: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return `{"quantities": "50", "timeline": "March 1"}`, nil
		},
	}
	original := newService
	newService = func(ctx context.Context, cfg *config.Config, opts app.Options) (rfq.Service, error) {
		return rfq.NewService(rfq.Dependencies{
			TextExtractor:  textextract.New(),
			FieldExtractor: fields.NewExtractor(provider, time.Second),
			Renderer:       render.New(),
			Mailer:         mailer,
			RunStore:       store.InitInMemoryRunStore(time.Hour),
			Delivery:       cfg.Delivery,
		}), nil
	}
	t.Cleanup(func() { newService = original })
	return provider
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commandNames := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "text")
	assert.Contains(t, commandNames, "extract")
	assert.Contains(t, commandNames, "render")
	assert.Contains(t, commandNames, "send")
	assert.Contains(t, commandNames, "mcp")
}

func TestTextCmd(t *testing.T) {
	t.Run("prints docx paragraphs", func(t *testing.T) {
		path := writeFile(t, "request.docx", testutil.DOCX("Need 50 widgets", "by March 1"))

		out, err := execute(t, "text", path)

		require.NoError(t, err)
		assert.Equal(t, "Need 50 widgets\nby March 1\n", out)
	})

	t.Run("rejects unsupported format", func(t *testing.T) {
		path := writeFile(t, "notes.txt", []byte("Need 50 widgets"))

		_, err := execute(t, "text", path)

		require.Error(t, err)
		assert.ErrorIs(t, err, rfqModel.ErrUnsupportedFormat)
	})

	t.Run("requires exactly one arg", func(t *testing.T) {
		_, err := execute(t, "text")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 1 arg(s)")
	})
}

func TestRenderCmd(t *testing.T) {
	t.Run("renders to stdout", func(t *testing.T) {
		path := writeFile(t, "fields.json", []byte(`{"quantities": "10 units"}`))

		out, err := execute(t, "render", path)

		require.NoError(t, err)
		assert.Contains(t, out, "REQUEST FOR QUOTE\n")
		assert.Contains(t, out, "Quantities: 10 units\n")
		assert.Contains(t, out, "Timeline: N/A\n")
	})

	t.Run("writes the draft file", func(t *testing.T) {
		path := writeFile(t, "fields.json", []byte(`{"timeline": "Q3"}`))
		output := filepath.Join(t.TempDir(), "rfq_draft.txt")

		_, err := execute(t, "render", path, "-o", output)

		require.NoError(t, err)
		body, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Timeline: Q3\n")
	})

	t.Run("rejects non-JSON payloads", func(t *testing.T) {
		path := writeFile(t, "fields.txt", []byte(`{'quantities': '10 units'}`))

		_, err := execute(t, "render", path)

		require.Error(t, err)
		assert.ErrorIs(t, err, rfqModel.ErrRenderFailed)
	})
}

func TestExtractCmd(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	provider := stubService(t, delivery.NewLogMailer())
	path := writeFile(t, "request.docx", testutil.DOCX("Need 50 widgets by March 1"))

	out, err := execute(t, "extract", path)

	require.NoError(t, err)
	assert.Contains(t, out, `"quantities": "50"`)
	assert.Contains(t, out, `"timeline": "March 1"`)
	assert.Equal(t, 1, provider.Calls)
}

func TestExtractCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	stubService(t, delivery.NewLogMailer())
	path := writeFile(t, "request.docx", testutil.DOCX("Need 50 widgets"))

	_, err := execute(t, "extract", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestSendCmd(t *testing.T) {
	mailer := delivery.NewLogMailer()
	stubService(t, mailer)
	configFile := writeFile(t, "rfqflow.toml", []byte(`
[llm]
api_key = "sk-test"

[delivery]
dry_run = true
from = "rfq-bot@yourcompany.com"
`))
	fieldsFile := writeFile(t, "fields.json", []byte(`{"quantities": "10 units"}`))

	out, err := execute(t, "send", fieldsFile, "--config", configFile)

	require.NoError(t, err)
	assert.Contains(t, out, "Sent rfq_draft.txt to procurement@yourcompany.com")
	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Attachment.Body, "Quantities: 10 units\n")
}
