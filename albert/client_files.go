package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// TranscribeAudio transcribes an audio file. Extra fields such as language
// or response_format are sent as form fields.
func (c *Client) TranscribeAudio(ctx context.Context, path, model string, extra core.Extras) (*core.Result, error) {
	form := core.NewPayload().Set("model", model).Merge(extra)
	return c.d.Do(ctx, epTranscribe, dispatch.Call{
		Form: form,
		File: &dispatch.FileSpec{Path: path, ContentType: dispatch.ContentTypeAudio},
	})
}

// ParseDocument extracts the content of a PDF. Extra fields such as
// output_format or force_ocr are sent as form fields.
func (c *Client) ParseDocument(ctx context.Context, path string, extra core.Extras) (*core.Result, error) {
	form := core.NewPayload().Merge(extra)
	return c.d.Do(ctx, epParse, dispatch.Call{
		Form: form,
		File: &dispatch.FileSpec{Path: path, ContentType: dispatch.ContentTypePDF},
	})
}

// OCRDocument extracts text from a PDF with an OCR model. Extra fields such
// as dpi or prompt are sent as form fields.
func (c *Client) OCRDocument(ctx context.Context, path, model string, extra core.Extras) (*core.Result, error) {
	form := core.NewPayload().Set("model", model).Merge(extra)
	return c.d.Do(ctx, epOCR, dispatch.Call{
		Form: form,
		File: &dispatch.FileSpec{Path: path, ContentType: dispatch.ContentTypePDF},
	})
}
