package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
)

func (a *App) newTranscribeCommand() *cobra.Command {
	var (
		model  string
		extras = newExtrasValue()
	)

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.TranscribeAudio(cmd.Context(), args[0], model, extras.Extras())
				if err != nil {
					return err
				}
				if !a.jsonOutput {
					if text, ok := res.Field("text"); ok {
						fmt.Fprintln(a.stdout, text)
						return nil
					}
				}
				return a.printResult(res)
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "transcription model (required)")
	cmd.Flags().Var(extras, "set", "extra form field, repeatable (e.g. --set language=fr)")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func (a *App) newParseCommand() *cobra.Command {
	extras := newExtrasValue()

	cmd := &cobra.Command{
		Use:   "parse <pdf-file>",
		Short: "Parse a PDF document into text or markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.ParseDocument(cmd.Context(), args[0], extras.Extras())
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	cmd.Flags().Var(extras, "set", "extra form field, repeatable (e.g. --set output_format=markdown)")
	return cmd
}

func (a *App) newOCRCommand() *cobra.Command {
	var (
		model  string
		extras = newExtrasValue()
	)

	cmd := &cobra.Command{
		Use:   "ocr <pdf-file>",
		Short: "Run OCR on a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.OCRDocument(cmd.Context(), args[0], model, extras.Extras())
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "OCR model (required)")
	cmd.Flags().Var(extras, "set", "extra form field, repeatable (e.g. --set dpi=300)")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
