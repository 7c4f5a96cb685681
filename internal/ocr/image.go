package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// imageText runs Tesseract over an image file and returns the recognized
// text plus an average word confidence in [0,100].
func (r *Reader) imageText(ctx context.Context, path string) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	if err := client.SetImage(path); err != nil {
		return "", 0, fmt.Errorf("set image: %w", err)
	}
	if err := client.SetLanguage(r.cfg.TesseractLang); err != nil {
		return "", 0, fmt.Errorf("set language: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("recognize text: %w", err)
	}
	text = strings.TrimSpace(text)

	conf := wordConfidence(client)
	if conf == 0 {
		conf = heuristicConfidence(text)
	}
	return text, conf, nil
}

// wordConfidence averages Tesseract's per-word confidences.
// Returns 0 when no word boxes are available.
func wordConfidence(client *gosseract.Client) int {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return int(sum / float64(len(boxes)))
}
