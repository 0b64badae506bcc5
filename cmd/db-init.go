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
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	adapterrepo "github.com/eslsoft/vocdrill/internal/adapter/repository"
	"github.com/eslsoft/vocdrill/internal/entity"
	"github.com/eslsoft/vocdrill/internal/infrastructure/config"
	"github.com/eslsoft/vocdrill/internal/infrastructure/database"
)

// dbInitCmd creates the database schema and optionally seeds a small sample set
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Create the database schema",
	Long:  "Runs the schema migration for the configured database. Use --with-sample to seed a small vocabulary set for manual testing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		withSample, _ := cmd.Flags().GetBool("with-sample")

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
		cmd.Println("schema ready")

		if !withSample {
			return nil
		}
		if err := seedSampleSet(cmd.Context(), db); err != nil {
			return fmt.Errorf("seed sample set: %w", err)
		}
		cmd.Println("sample set seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Bool("with-sample", false, "seed a small sample vocabulary set after migrating")
}

func seedSampleSet(ctx context.Context, db *sqlx.DB) error {
	now := time.Now()
	sets := adapterrepo.NewVocabSetRepository(db)

	sample := entity.VocabularySet{
		Name:          "Starter English",
		Language:      "en",
		TargetMastery: 0.8,
	}
	sample.Normalize(now)
	set, err := sets.CreateSet(ctx, &sample)
	if err != nil {
		return err
	}

	samples := []struct {
		word, translation, sentence, sentenceTranslation string
	}{
		{"apple", "苹果", "She ate a red apple for breakfast", "她早餐吃了一个红苹果"},
		{"river", "河流", "The river flows through the old town", "河流穿过老城区"},
		{"bright", "明亮的", "The moon was bright last night", "昨晚的月亮很明亮"},
		{"travel", "旅行", "They travel to a new country every year", "他们每年去一个新的国家旅行"},
		{"quiet", "安静的", "Please keep quiet in the library", "请在图书馆保持安静"},
	}

	items := make([]entity.VocabularyItem, 0, len(samples))
	for i, s := range samples {
		item := entity.VocabularyItem{
			SetID:              set.ID,
			Word:               s.word,
			Translation:        s.translation,
			ExampleSentence:    s.sentence,
			ExampleTranslation: s.sentenceTranslation,
			Position:           int32(i + 1),
		}
		item.Normalize(now)
		items = append(items, item)
	}
	return sets.CreateItems(ctx, items)
}
