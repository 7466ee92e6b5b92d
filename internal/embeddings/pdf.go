package embeddings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
)

// extractPages writes pdfBytes to a scratch file and pulls per-page text
// content out with pdfcpu, which has no direct text-extraction call of its
// own so content streams are extracted to disk and read back per page.
func extractPages(pdfBytes []byte, log arbor.ILogger) (map[int]string, error) {
	tempDir := filepath.Join(os.TempDir(), "esg-embeddings")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("pdf: create temp dir: %w", err)
	}

	tempFile := filepath.Join(tempDir, fmt.Sprintf("doc_%d.pdf", os.Getpid()))
	if err := os.WriteFile(tempFile, pdfBytes, 0644); err != nil {
		return nil, fmt.Errorf("pdf: write temp file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return nil, fmt.Errorf("pdf: read context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(tempDir, fmt.Sprintf("pages_%d", os.Getpid()))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("pdf: create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	pages := make(map[int]string, pageCount)
	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		log.Warn().Err(err).Msg("embeddings: pdf content extraction failed, pages left blank")
		for p := 1; p <= pageCount; p++ {
			pages[p] = ""
		}
		return pages, nil
	}

	files, _ := os.ReadDir(outDir)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, f.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, serr := fmt.Sscanf(f.Name(), "Content_page_%d", &pageNum); serr != nil {
			if _, serr := fmt.Sscanf(f.Name(), "page_%d", &pageNum); serr != nil {
				continue
			}
		}
		pages[pageNum] = string(content)
	}
	for p := 1; p <= pageCount; p++ {
		if _, ok := pages[p]; !ok {
			pages[p] = ""
		}
	}
	return pages, nil
}
