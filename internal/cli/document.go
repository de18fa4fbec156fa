package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akolanti/rfqflow/internal/app"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/rfq/fields"
	"github.com/akolanti/rfqflow/internal/rfq/render"
	"github.com/akolanti/rfqflow/internal/rfq/textextract"
)

var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Print the plain text of a PDF or DOCX document",
	Args:  cobra.ExactArgs(1),
	RunE:  runText,
}

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract RFQ fields from a PDF or DOCX document",
	Long: `Extract RFQ fields from a PDF or DOCX document and print them as JSON.

The output can be edited and passed to "rfqctl render" or "rfqctl send".`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var renderCmd = &cobra.Command{
	Use:   "render [fields.json]",
	Short: "Render RFQ fields into the draft without sending it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var sendCmd = &cobra.Command{
	Use:   "send [fields.json]",
	Short: "Render RFQ fields and email the draft to the reviewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "write the draft to this file instead of stdout")
	rootCmd.AddCommand(textCmd, extractCmd, renderCmd, sendCmd)
}

func readDocument(path string) (rfqModel.SourceDocument, error) {
	format, err := rfqModel.DetectFormat(path)
	if err != nil {
		return rfqModel.SourceDocument{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return rfqModel.SourceDocument{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return rfqModel.SourceDocument{Filename: filepath.Base(path), Content: content, Format: format}, nil
}

func runText(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	text, err := textextract.New().Extract(cmd.Context(), doc.Content, doc.Format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	service, err := buildService(cmd, app.Options{})
	if err != nil {
		return err
	}

	result, err := service.ProcessDocument(cmd.Context(), doc)
	if err != nil {
		return err
	}
	compact, err := fields.MarshalFields(result.Fields)
	if err != nil {
		return err
	}
	var pretty map[string]json.RawMessage
	if err := json.Unmarshal(compact, &pretty); err != nil {
		return err
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(pretty)
}

func runRender(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	parsed, _, err := fields.ParsePayload(payload)
	if err != nil {
		return rfqModel.NewStageError(rfqModel.StageRender, rfqModel.ErrRenderFailed, err)
	}
	doc, err := render.New().Render(parsed)
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("getting output flag: %w", err)
	}
	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), doc.Body)
		return nil
	}
	if err := os.WriteFile(output, []byte(doc.Body), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	service, err := buildService(cmd, app.Options{SendMail: true})
	if err != nil {
		return err
	}

	result, err := service.GenerateRFQ(cmd.Context(), payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s (run %s)\n", result.Document.Filename, result.Recipient, result.RunId)
	return nil
}
