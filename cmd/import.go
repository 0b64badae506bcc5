/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	adapterrepo "github.com/eslsoft/vocdrill/internal/adapter/repository"
	"github.com/eslsoft/vocdrill/internal/entity"
	"github.com/eslsoft/vocdrill/internal/infrastructure/config"
	"github.com/eslsoft/vocdrill/internal/infrastructure/database"
	"github.com/eslsoft/vocdrill/internal/repository"
)

type importItem struct {
	Word               string `json:"word"`
	Translation        string `json:"translation"`
	ExampleSentence    string `json:"example_sentence"`
	ExampleTranslation string `json:"example_translation"`
	AudioURL           string `json:"audio_url"`
	MaxErrors          int32  `json:"max_errors"`
}

type importSet struct {
	Name          string       `json:"name"`
	Language      string       `json:"language"`
	TargetMastery float64      `json:"target_mastery"`
	Items         []importItem `json:"items"`
}

// importCmd loads vocabulary sets from a JSON document
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import vocabulary sets from a JSON file",
	Long:  "Reads one vocabulary set (or an array of sets) from a JSON document and stores it. Use - to read from standard input; .gz input is decompressed automatically.",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inputPath, _ := cmd.Flags().GetString("input")
		gzipEnabled, _ := cmd.Flags().GetBool("gzip")

		if inputPath == "" {
			return fmt.Errorf("--input is required (use - for standard input)")
		}
		if !gzipEnabled && inputPath != "-" && strings.HasSuffix(strings.ToLower(inputPath), ".gz") {
			gzipEnabled = true
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		var (
			reader  io.Reader = cmd.InOrStdin()
			closers []func() error
		)
		if inputPath != "-" {
			file, openErr := os.Open(filepath.Clean(inputPath))
			if openErr != nil {
				return fmt.Errorf("open input file: %w", openErr)
			}
			reader = file
			closers = append(closers, file.Close)
		}
		if gzipEnabled {
			gzr, gzErr := gzip.NewReader(reader)
			if gzErr != nil {
				return fmt.Errorf("create gzip reader: %w", gzErr)
			}
			reader = gzr
			closers = append([]func() error{gzr.Close}, closers...)
		}
		defer func() {
			for _, closer := range closers {
				if cerr := closer(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}()

		sets, err := decodeImportSets(reader)
		if err != nil {
			return fmt.Errorf("decode input: %w", err)
		}

		repo := adapterrepo.NewVocabSetRepository(db)
		for _, set := range sets {
			created, importErr := importOneSet(cmd.Context(), repo, set)
			if importErr != nil {
				return fmt.Errorf("import set %q: %w", set.Name, importErr)
			}
			cmd.Printf("imported set %q (id=%d, %d items)\n", created.Name, created.ID, len(set.Items))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "JSON file path, or - for standard input")
	importCmd.Flags().Bool("gzip", false, "input is gzip compressed")
}

// decodeImportSets accepts either a single set object or an array of sets.
func decodeImportSets(r io.Reader) ([]importSet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var sets []importSet
		if err := json.Unmarshal(raw, &sets); err != nil {
			return nil, err
		}
		return sets, nil
	}

	var set importSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return []importSet{set}, nil
}

func importOneSet(ctx context.Context, repo repository.VocabSetRepository, in importSet) (*entity.VocabularySet, error) {
	if len(in.Items) == 0 {
		return nil, entity.ErrEmptyVocabularySet
	}

	now := time.Now()
	newSet := entity.VocabularySet{
		Name:          in.Name,
		Language:      in.Language,
		TargetMastery: in.TargetMastery,
	}
	newSet.Normalize(now)
	set, err := repo.CreateSet(ctx, &newSet)
	if err != nil {
		return nil, err
	}

	items := make([]entity.VocabularyItem, 0, len(in.Items))
	for i, raw := range in.Items {
		item := entity.VocabularyItem{
			SetID:              set.ID,
			Word:               raw.Word,
			Translation:        raw.Translation,
			ExampleSentence:    raw.ExampleSentence,
			ExampleTranslation: raw.ExampleTranslation,
			AudioURL:           raw.AudioURL,
			MaxErrors:          raw.MaxErrors,
			Position:           int32(i + 1),
		}
		item.Normalize(now)
		items = append(items, item)
	}
	if err := repo.CreateItems(ctx, items); err != nil {
		return nil, err
	}
	return set, nil
}
